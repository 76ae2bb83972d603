// Package sparse 提供稀疏向量/矩阵原语：构建、转置乘积、行归一化、行向量乘。
// 这些是模型的性能关键路径，亲和度矩阵与相似度矩阵都基于此表示。
package sparse

import (
	"math"
	"sort"
)

// Vector 是按列下标升序存储的稀疏向量。
// 不存在的下标语义为 0；Indices 与 Values 等长且一一对应。
type Vector struct {
	Indices []int     `json:"indices"`
	Values  []float64 `json:"values"`
}

// VectorFromMap 把 map 形式的稀疏向量转换为升序存储的 Vector。
func VectorFromMap(m map[int]float64) Vector {
	if len(m) == 0 {
		return Vector{}
	}
	indices := make([]int, 0, len(m))
	for idx := range m {
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	values := make([]float64, len(indices))
	for i, idx := range indices {
		values[i] = m[idx]
	}
	return Vector{Indices: indices, Values: values}
}

// Len 返回非零元素个数。
func (v Vector) Len() int {
	return len(v.Indices)
}

// Get 返回指定下标的值（二分查找），不存在时返回 0。
func (v Vector) Get(index int) float64 {
	i := sort.SearchInts(v.Indices, index)
	if i < len(v.Indices) && v.Indices[i] == index {
		return v.Values[i]
	}
	return 0
}

// ForEach 按下标升序遍历所有非零元素。
func (v Vector) ForEach(f func(index int, value float64)) {
	for i, idx := range v.Indices {
		f(idx, v.Values[i])
	}
}

// ForIntersection 遍历两个向量的交集（双指针归并）。
func (v Vector) ForIntersection(other Vector, f func(index int, a, b float64)) {
	i, j := 0, 0
	for i < len(v.Indices) && j < len(other.Indices) {
		switch {
		case v.Indices[i] == other.Indices[j]:
			f(v.Indices[i], v.Values[i], other.Values[j])
			i++
			j++
		case v.Indices[i] < other.Indices[j]:
			i++
		default:
			j++
		}
	}
}

// Dot 计算两个稀疏向量的点积。
func (v Vector) Dot(other Vector) float64 {
	sum := 0.0
	v.ForIntersection(other, func(_ int, a, b float64) {
		sum += a * b
	})
	return sum
}

// L2Norm 计算向量的 L2 范数。
func (v Vector) L2Norm() float64 {
	sum := 0.0
	for _, val := range v.Values {
		sum += val * val
	}
	return math.Sqrt(sum)
}

// Scale 原地缩放所有非零元素。
func (v Vector) Scale(s float64) {
	for i := range v.Values {
		v.Values[i] *= s
	}
}
