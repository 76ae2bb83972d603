// Package dataset 提供模型外围的数据协作件：松散记录行到交互记录的映射、
// 时间戳归一化、以及按用户分层的训练/测试切分。
package dataset

import (
	"fmt"

	"github.com/rushteam/sarkit/core"
	"github.com/rushteam/sarkit/pkg/conv"
)

// Schema 是字段选择器配置：把松散类型的记录行（map[string]any）
// 映射到 core.Interaction 的各个字段。配置一次、校验一次，
// 之后对所有行生效（原始实现按动态列名取值，这里换成显式选择器）。
type Schema struct {
	// User / Item 必填：用户列名与物品列名
	User string `yaml:"user" json:"user"`
	Item string `yaml:"item" json:"item"`

	// Rating 可选：为空时所有交互按强度 1 处理（纯隐式反馈）
	Rating string `yaml:"rating" json:"rating"`

	// Timestamp 可选：为空时记录不带时间信息（不能启用时间衰减）
	Timestamp string `yaml:"timestamp" json:"timestamp"`
}

// Validate 校验选择器配置；User/Item 缺失返回 INVALID_CONFIG。
func (s Schema) Validate() error {
	if s.User == "" {
		return core.NewConfigurationError(core.ModuleDataset, "dataset: schema missing user column selector")
	}
	if s.Item == "" {
		return core.NewConfigurationError(core.ModuleDataset, "dataset: schema missing item column selector")
	}
	return nil
}

// Record 把单行记录映射为交互记录。
// 选择器指向的列在行中缺失或类型不符时返回 INVALID_CONFIG。
func (s Schema) Record(row map[string]any) (core.Interaction, error) {
	userID, ok := conv.ToString(row[s.User])
	if !ok || userID == "" {
		return core.Interaction{}, core.NewConfigurationError(core.ModuleDataset,
			fmt.Sprintf("dataset: row has no string value for user column %q", s.User))
	}
	itemID, ok := conv.ToString(row[s.Item])
	if !ok || itemID == "" {
		return core.Interaction{}, core.NewConfigurationError(core.ModuleDataset,
			fmt.Sprintf("dataset: row has no string value for item column %q", s.Item))
	}

	rec := core.Interaction{UserID: userID, ItemID: itemID, Rating: 1}
	if s.Rating != "" {
		rating, ok := conv.ToFloat64(row[s.Rating])
		if !ok {
			return core.Interaction{}, core.NewConfigurationError(core.ModuleDataset,
				fmt.Sprintf("dataset: row has no numeric value for rating column %q", s.Rating))
		}
		rec.Rating = rating
	}
	if s.Timestamp != "" {
		ts, err := ParseTimestamp(row[s.Timestamp])
		if err != nil {
			return core.Interaction{}, core.NewConfigurationError(core.ModuleDataset,
				fmt.Sprintf("dataset: timestamp column %q: %v", s.Timestamp, err))
		}
		rec.Timestamp = ts
	}
	return rec, nil
}

// FromRows 批量映射记录行；任何一行失败整体失败（配置错误不做部分成功）。
func FromRows(s Schema, rows []map[string]any) ([]core.Interaction, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	out := make([]core.Interaction, 0, len(rows))
	for i, row := range rows {
		rec, err := s.Record(row)
		if err != nil {
			return nil, fmt.Errorf("dataset: row %d: %w", i, err)
		}
		out = append(out, rec)
	}
	return out, nil
}
