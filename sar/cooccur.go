package sar

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/sarkit/sparse"
)

// cooccurrence 计算物品共现矩阵 C = Bᵗ·B。
//
// 二值化是隐式的：只看亲和度矩阵的非零模式（共现计数的是用户数，不是亲和度权重）。
// C[i][j] = 同时交互过物品 i 和 j 的用户数；对角线 C[i][i] = 交互过物品 i 的用户数，
// 相似度归一化把它当作边际计数使用。
//
// 大目录下这是主要开销（最坏 O(items²)），按物品行分片并行计算；
// 每个 goroutine 只写自己负责的输出行，没有共享可变状态，对外契约不变。
func cooccurrence(ctx context.Context, affinity *sparse.Matrix, parallelism int) (*sparse.Matrix, error) {
	items := affinity.Cols()
	c := sparse.NewMatrix(items, items)
	if items == 0 {
		return c, nil
	}

	// 物品 → 交互用户的倒排表
	itemUsers := affinity.ColumnLists()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(resolveParallelism(parallelism))

	for i := 0; i < items; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			counts := make(map[int]float64)
			for _, u := range itemUsers[i] {
				for _, j := range affinity.Row(u).Indices {
					counts[j]++
				}
			}
			c.SetRow(i, sparse.VectorFromMap(counts))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return c, nil
}

func resolveParallelism(n int) int {
	if n > 0 {
		return n
	}
	return runtime.GOMAXPROCS(0)
}
