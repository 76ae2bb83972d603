package sar

import (
	"fmt"
	"math"
	"time"

	"github.com/rushteam/sarkit/core"
	"github.com/rushteam/sarkit/sparse"
)

// validateRecord 校验单条交互记录；Fit 与 Recommend 共用。
// 字段缺失/非法属于配置错误（INVALID_CONFIG），调用当场失败，不重试。
func validateRecord(cfg Config, rec core.Interaction) error {
	if rec.UserID == "" {
		return core.NewConfigurationError(core.ModuleSAR, "sar: interaction record has empty user id")
	}
	if rec.ItemID == "" {
		return core.NewConfigurationError(core.ModuleSAR, "sar: interaction record has empty item id")
	}
	if rec.Rating < 0 {
		return core.NewConfigurationError(core.ModuleSAR,
			fmt.Sprintf("sar: interaction (%s, %s) has negative rating %v", rec.UserID, rec.ItemID, rec.Rating))
	}
	if cfg.TimeDecay && rec.Timestamp.IsZero() {
		return core.NewConfigurationError(core.ModuleSAR,
			fmt.Sprintf("sar: time decay enabled but interaction (%s, %s) has no timestamp", rec.UserID, rec.ItemID))
	}
	return nil
}

// maxTimestamp 返回记录集中最大的时间戳（衰减参考时刻 t_ref，按数据集取，不按用户）。
func maxTimestamp(records []core.Interaction) time.Time {
	var max time.Time
	for _, rec := range records {
		if rec.Timestamp.After(max) {
			max = rec.Timestamp
		}
	}
	return max
}

// decayWeight 计算指数时间衰减权重 2^(-Δdays/halfLife)。
// 半衰期即 halfLife 天：比参考时刻早 halfLife 天的交互贡献减半。
// 晚于参考时刻的交互权重大于 1（冻结参考时刻下查询集可能更新），属于预期行为。
func decayWeight(halfLife float64, ref, t time.Time) float64 {
	days := ref.Sub(t).Hours() / 24
	return math.Exp2(-days / halfLife)
}

// buildAffinity 在给定的用户/物品索引上，把交互记录聚合成稀疏亲和度矩阵。
//
// 聚合规则：
//   - 同一 (user, item) 对的多条记录按贡献求和
//   - 衰减关闭时贡献 = rating；开启时贡献 = rating * decayWeight(halfLife, decayRef, t)
//   - rating 为 0 的记录合法但贡献为零，不产生矩阵项（不计入共现 presence）
//   - Normalize 开启时对每行做 L2 归一化，零范数行保持全零
//
// 索引中不存在的 ID：strict 为 true 时返回 UNKNOWN_ENTITY 错误，
// 否则静默跳过该条记录（不会污染输出）。
func buildAffinity(
	cfg Config,
	users, items *Index,
	records []core.Interaction,
	decayRef time.Time,
	strict bool,
) (*sparse.Matrix, error) {
	rows := make([]map[int]float64, users.Len())

	for _, rec := range records {
		if err := validateRecord(cfg, rec); err != nil {
			return nil, err
		}

		u, ok := users.Lookup(rec.UserID)
		if !ok {
			if strict {
				return nil, core.NewUnknownEntityError(core.ModuleSAR,
					fmt.Sprintf("sar: unknown user id %q", rec.UserID))
			}
			continue
		}
		i, ok := items.Lookup(rec.ItemID)
		if !ok {
			if strict {
				return nil, core.NewUnknownEntityError(core.ModuleSAR,
					fmt.Sprintf("sar: unknown item id %q", rec.ItemID))
			}
			continue
		}

		weight := rec.Rating
		if cfg.TimeDecay {
			weight *= decayWeight(cfg.HalfLifeDays, decayRef, rec.Timestamp)
		}
		// 零权重不入矩阵：共现与 remove-seen 都以 A 的非零模式为准，
		// 显式存 0 会把无效交互算成 presence
		if weight == 0 {
			continue
		}

		if rows[u] == nil {
			rows[u] = make(map[int]float64)
		}
		rows[u][i] += weight
	}

	m := sparse.NewMatrix(users.Len(), items.Len())
	for u, row := range rows {
		if len(row) == 0 {
			continue
		}
		m.SetRow(u, sparse.VectorFromMap(row))
	}

	if cfg.Normalize {
		m.NormalizeRowsL2()
	}
	return m, nil
}
