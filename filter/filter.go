// Package filter 提供打分之后的推荐结果过滤：黑名单、CEL 表达式等。
// 已交互物品的剔除在模型打分内部完成，这里是业务侧的后处理钩子。
package filter

import (
	"context"

	"github.com/rushteam/sarkit/core"
)

// Filter 是过滤器的抽象接口，用于判断一条推荐结果是否应该被过滤掉。
// rank 是该结果在所属用户列表内的排名（从 0 开始）。
// 返回 true 表示应该过滤（移除），false 表示保留。
type Filter interface {
	// Name 返回过滤器名称
	Name() string

	// ShouldFilter 判断推荐结果是否应该被过滤
	ShouldFilter(ctx context.Context, rec core.Recommendation, rank int) (bool, error)
}

// Apply 依次用多个过滤器处理扁平推荐列表（同一用户的结果连续排列）。
// 任何一个过滤器返回 true，该条结果就被移除。
func Apply(ctx context.Context, recs []core.Recommendation, filters ...Filter) ([]core.Recommendation, error) {
	if len(filters) == 0 || len(recs) == 0 {
		return recs, nil
	}

	out := make([]core.Recommendation, 0, len(recs))
	rank := 0
	var curUser string

	for _, rec := range recs {
		if rec.UserID != curUser {
			curUser = rec.UserID
			rank = 0
		} else {
			rank++
		}

		keep := true
		for _, f := range filters {
			drop, err := f.ShouldFilter(ctx, rec, rank)
			if err != nil {
				return nil, err
			}
			if drop {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, rec)
		}
	}
	return out, nil
}
