package sar

import (
	"context"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/sarkit/core"
	"github.com/rushteam/sarkit/sparse"
)

// score 计算 R = A_q·S 并做 Top-K 截断。
//
// 按用户行分片并行：每个 goroutine 只读共享的 S，工作缓冲与输出槽位都是
// 行私有的，最后按用户索引下标顺序拼接，保证输出确定。
func (m *Model) score(
	ctx context.Context,
	queryAffinity *sparse.Matrix,
	topK int,
	removeSeen bool,
) ([]core.Recommendation, error) {
	perUser := make([][]core.Recommendation, queryAffinity.Rows())

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(resolveParallelism(m.cfg.Parallelism))

	for u := 0; u < queryAffinity.Rows(); u++ {
		u := u
		row := queryAffinity.Row(u)
		// 查询中没有任何有效交互的用户不产出结果
		if row.Len() == 0 {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			scores := m.similarity.MulVecRow(row)
			if removeSeen {
				row.ForEach(func(i int, _ float64) {
					scores[i] = math.Inf(-1)
				})
			}
			perUser[u] = m.selectTopK(u, scores, topK)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]core.Recommendation, 0, queryAffinity.Rows()*topK)
	for _, recs := range perUser {
		out = append(out, recs...)
	}
	return out, nil
}

// selectTopK 从稠密得分里取前 k 个候选：得分降序，同分按物品下标升序。
// 被标记为 -Inf 的已见物品不参与候选。
func (m *Model) selectTopK(userRow int, scores []float64, k int) []core.Recommendation {
	candidates := make([]int, 0, len(scores))
	for i, s := range scores {
		if math.IsInf(s, -1) {
			continue
		}
		candidates = append(candidates, i)
	}

	sort.Slice(candidates, func(a, b int) bool {
		ia, ib := candidates[a], candidates[b]
		if scores[ia] != scores[ib] {
			return scores[ia] > scores[ib]
		}
		return ia < ib
	})

	if len(candidates) > k {
		candidates = candidates[:k]
	}

	userID := m.users.ID(userRow)
	recs := make([]core.Recommendation, 0, len(candidates))
	for _, i := range candidates {
		recs = append(recs, core.Recommendation{
			UserID: userID,
			ItemID: m.items.ID(i),
			Score:  scores[i],
		})
	}
	return recs
}
