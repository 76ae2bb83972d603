package sar

import (
	"fmt"

	"github.com/rushteam/sarkit/core"
)

// Metric 是物品相似度的归一化方式。
type Metric string

const (
	// MetricCount 直接使用共现计数，不做归一化
	MetricCount Metric = "count"
	// MetricCosine 余弦：C[i][j] / sqrt(d_i * d_j)，对角线为 1
	MetricCosine Metric = "cosine"
	// MetricJaccard 杰卡德：C[i][j] / (d_i + d_j - C[i][j])，对角线为 1
	MetricJaccard Metric = "jaccard"
	// MetricLift 提升度：C[i][j] / (d_i * d_j)，对角线不保证为 1，惩罚热门物品
	MetricLift Metric = "lift"
)

// Config 是模型的全部配置。每个 Model 实例持有自己的一份，没有进程级可变状态。
type Config struct {
	// Metric 相似度度量；空值按 cosine 处理
	Metric Metric `yaml:"metric" json:"metric"`

	// TimeDecay 是否启用时间衰减；启用时每条交互按
	// rating * 2^(-(t_ref - t)/HalfLifeDays) 折算贡献
	TimeDecay bool `yaml:"time_decay" json:"time_decay"`

	// HalfLifeDays 衰减半衰期（天）；TimeDecay 为 true 时必须为正
	HalfLifeDays float64 `yaml:"half_life_days" json:"half_life_days"`

	// Normalize 是否对亲和度矩阵做行 L2 归一化；零范数行保持全零
	Normalize bool `yaml:"normalize" json:"normalize"`

	// FreshDecayReference 打分时是否用查询集自己的最大时间戳作为衰减参考时刻。
	// 默认 false：参考时刻冻结为 Fit 时训练集的最大时间戳
	FreshDecayReference bool `yaml:"fresh_decay_reference" json:"fresh_decay_reference"`

	// StrictUnknowns 查询中出现训练时未见过的用户/物品 ID 时：
	// true 返回 UNKNOWN_ENTITY 错误；false（默认）静默跳过该条记录
	StrictUnknowns bool `yaml:"strict_unknowns" json:"strict_unknowns"`

	// Parallelism 内部行分片并行度；<= 0 表示 GOMAXPROCS。
	// 只影响共现计算与打分的内部调度，不改变任何对外契约
	Parallelism int `yaml:"parallelism" json:"parallelism"`
}

// DefaultConfig 返回默认配置：cosine、无衰减、不归一化、宽松未知实体处理。
func DefaultConfig() Config {
	return Config{
		Metric:       MetricCosine,
		HalfLifeDays: 30,
	}
}

// Validate 校验配置；不合法时返回 INVALID_CONFIG 领域错误。
func (c Config) Validate() error {
	switch c.Metric {
	case MetricCount, MetricCosine, MetricJaccard, MetricLift:
	default:
		return core.NewConfigurationError(core.ModuleSAR,
			fmt.Sprintf("sar: unknown similarity metric %q (supported: count, cosine, jaccard, lift)", c.Metric))
	}
	if c.TimeDecay && c.HalfLifeDays <= 0 {
		return core.NewConfigurationError(core.ModuleSAR,
			fmt.Sprintf("sar: time decay enabled but half life is %v (must be > 0)", c.HalfLifeDays))
	}
	return nil
}
