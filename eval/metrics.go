// Package eval 提供离线排序指标：precision@k、recall@k、NDCG@k。
// 输入是 Recommend 的输出与留出集构成的相关物品集合，用于模型/参数对比。
package eval

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/rushteam/sarkit/core"
)

// Relevance 是每个用户的相关物品集合（通常来自留出的测试集）。
type Relevance map[string]map[string]struct{}

// RelevanceFromInteractions 从交互记录构建相关集合。
func RelevanceFromInteractions(records []core.Interaction) Relevance {
	rel := make(Relevance)
	for _, rec := range records {
		if rel[rec.UserID] == nil {
			rel[rec.UserID] = make(map[string]struct{})
		}
		rel[rec.UserID][rec.ItemID] = struct{}{}
	}
	return rel
}

// groupByUser 把扁平推荐列表按用户分组，保留每个用户内部的排名顺序。
func groupByUser(recs []core.Recommendation) map[string][]core.Recommendation {
	byUser := make(map[string][]core.Recommendation)
	for _, rec := range recs {
		byUser[rec.UserID] = append(byUser[rec.UserID], rec)
	}
	return byUser
}

// perUserMean 对相关集合中的每个用户计算指标后取平均。
// 没有任何推荐结果的用户按 0 计；用户按字典序遍历保证结果确定。
func perUserMean(recs []core.Recommendation, rel Relevance, metric func(recs []core.Recommendation, relevant map[string]struct{}) float64) float64 {
	if len(rel) == 0 {
		return 0
	}
	byUser := groupByUser(recs)

	users := make([]string, 0, len(rel))
	for userID := range rel {
		users = append(users, userID)
	}
	sort.Strings(users)

	values := make([]float64, 0, len(users))
	for _, userID := range users {
		values = append(values, metric(byUser[userID], rel[userID]))
	}
	return stat.Mean(values, nil)
}

func truncate(recs []core.Recommendation, k int) []core.Recommendation {
	if len(recs) > k {
		return recs[:k]
	}
	return recs
}

func hits(recs []core.Recommendation, relevant map[string]struct{}) int {
	n := 0
	for _, rec := range recs {
		if _, ok := relevant[rec.ItemID]; ok {
			n++
		}
	}
	return n
}

// PrecisionAt 计算 precision@k：前 k 条推荐中命中相关物品的比例，按用户平均。
func PrecisionAt(recs []core.Recommendation, rel Relevance, k int) float64 {
	return perUserMean(recs, rel, func(userRecs []core.Recommendation, relevant map[string]struct{}) float64 {
		if k <= 0 {
			return 0
		}
		return float64(hits(truncate(userRecs, k), relevant)) / float64(k)
	})
}

// RecallAt 计算 recall@k：前 k 条推荐覆盖相关物品集合的比例，按用户平均。
func RecallAt(recs []core.Recommendation, rel Relevance, k int) float64 {
	return perUserMean(recs, rel, func(userRecs []core.Recommendation, relevant map[string]struct{}) float64 {
		if len(relevant) == 0 {
			return 0
		}
		return float64(hits(truncate(userRecs, k), relevant)) / float64(len(relevant))
	})
}

// NDCGAt 计算二值增益的 NDCG@k，按用户平均。
func NDCGAt(recs []core.Recommendation, rel Relevance, k int) float64 {
	return perUserMean(recs, rel, func(userRecs []core.Recommendation, relevant map[string]struct{}) float64 {
		userRecs = truncate(userRecs, k)

		dcg := 0.0
		for pos, rec := range userRecs {
			if _, ok := relevant[rec.ItemID]; ok {
				dcg += 1 / math.Log2(float64(pos)+2)
			}
		}

		ideal := len(relevant)
		if ideal > k {
			ideal = k
		}
		idcg := 0.0
		for pos := 0; pos < ideal; pos++ {
			idcg += 1 / math.Log2(float64(pos)+2)
		}
		if idcg == 0 {
			return 0
		}
		return dcg / idcg
	})
}
