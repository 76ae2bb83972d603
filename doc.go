// Package sarkit 是一个 SAR（Simple Algorithm for Recommendation）工具包：
// 基于物品协同过滤，从隐式反馈交互日志为每个用户产出 Top-K 未见物品。
//
// 设计要点：
// - Fit 一次、Recommend 多次：拟合产出的索引/亲和度/相似度矩阵只读，可并发打分
// - 稀疏优先：亲和度、共现、相似度矩阵全程稀疏表示（sparse 包）
// - 可插拔外围：存储（store）、配置加载（config）、数据切分（dataset）、
//   结果过滤（filter）、离线指标（eval）都围绕核心模型独立成包
package sarkit

import (
	"github.com/rushteam/sarkit/core"
	"github.com/rushteam/sarkit/sar"
)

// 轻量 facade：便于用户直接 import "sarkit" 使用核心抽象。
type Model = sar.Model
type Config = sar.Config
type Metric = sar.Metric
type Snapshot = sar.Snapshot
type Interaction = core.Interaction
type Recommendation = core.Recommendation

const (
	MetricCount   = sar.MetricCount
	MetricCosine  = sar.MetricCosine
	MetricJaccard = sar.MetricJaccard
	MetricLift    = sar.MetricLift
)

var (
	New           = sar.New
	DefaultConfig = sar.DefaultConfig
	FromSnapshot  = sar.FromSnapshot
)
