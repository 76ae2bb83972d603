package sar

import (
	"math"

	"github.com/rushteam/sarkit/sparse"
)

// similarityFrom 把共现矩阵按配置的度量重缩放为相似度矩阵。
//
// 记 d_i = C[i][i]（物品 i 的边际用户数）：
//   - count:   S[i][j] = C[i][j]
//   - cosine:  S[i][j] = C[i][j] / sqrt(d_i * d_j)
//   - jaccard: S[i][j] = C[i][j] / (d_i + d_j - C[i][j])
//   - lift:    S[i][j] = C[i][j] / (d_i * d_j)
//
// 分母为零时取 0（稀疏隐式反馈中的正常情况，不是错误）。
// S 继承 C 的对称性；cosine/jaccard 下 d_i > 0 的物品自相似度为 1，
// lift 的对角线不保证为 1，调用方不应依赖。
func similarityFrom(c *sparse.Matrix, metric Metric) *sparse.Matrix {
	if metric == MetricCount {
		return c
	}

	diag := c.Diagonal()
	n := c.Rows()
	s := sparse.NewMatrix(n, n)

	for i := 0; i < n; i++ {
		row := c.Row(i)
		if row.Len() == 0 {
			continue
		}
		indices := make([]int, row.Len())
		values := make([]float64, row.Len())
		copy(indices, row.Indices)

		for k, j := range row.Indices {
			cij := row.Values[k]
			var denom float64
			switch metric {
			case MetricCosine:
				denom = math.Sqrt(diag[i] * diag[j])
			case MetricJaccard:
				denom = diag[i] + diag[j] - cij
			case MetricLift:
				denom = diag[i] * diag[j]
			}
			if denom == 0 {
				values[k] = 0
				continue
			}
			values[k] = cij / denom
		}
		s.SetRow(i, sparse.Vector{Indices: indices, Values: values})
	}
	return s
}
