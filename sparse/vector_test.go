package sparse

import (
	"math"
	"reflect"
	"testing"
)

func TestVectorFromMap_SortedIndices(t *testing.T) {
	v := VectorFromMap(map[int]float64{5: 0.5, 1: 0.1, 3: 0.3})
	if !reflect.DeepEqual(v.Indices, []int{1, 3, 5}) {
		t.Errorf("Indices = %v, want [1 3 5]", v.Indices)
	}
	if !reflect.DeepEqual(v.Values, []float64{0.1, 0.3, 0.5}) {
		t.Errorf("Values = %v, want [0.1 0.3 0.5]", v.Values)
	}
}

func TestVector_Get(t *testing.T) {
	v := VectorFromMap(map[int]float64{1: 0.1, 3: 0.3})
	tests := []struct {
		index int
		want  float64
	}{
		{index: 1, want: 0.1},
		{index: 3, want: 0.3},
		{index: 0, want: 0},
		{index: 2, want: 0},
		{index: 9, want: 0},
	}
	for _, tt := range tests {
		if got := v.Get(tt.index); got != tt.want {
			t.Errorf("Get(%d) = %v, want %v", tt.index, got, tt.want)
		}
	}
}

func TestVector_ForIntersection(t *testing.T) {
	a := VectorFromMap(map[int]float64{0: 1, 2: 2, 4: 3})
	b := VectorFromMap(map[int]float64{2: 5, 3: 7, 4: 9})

	got := make(map[int][2]float64)
	a.ForIntersection(b, func(index int, va, vb float64) {
		got[index] = [2]float64{va, vb}
	})

	want := map[int][2]float64{2: {2, 5}, 4: {3, 9}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("intersection = %v, want %v", got, want)
	}
}

func TestVector_DotAndNorm(t *testing.T) {
	a := VectorFromMap(map[int]float64{0: 3, 1: 4})
	b := VectorFromMap(map[int]float64{1: 2, 2: 10})

	if got := a.Dot(b); got != 8 {
		t.Errorf("Dot = %v, want 8", got)
	}
	if got := a.L2Norm(); got != 5 {
		t.Errorf("L2Norm = %v, want 5", got)
	}
	var empty Vector
	if got := empty.L2Norm(); got != 0 {
		t.Errorf("empty L2Norm = %v, want 0", got)
	}
}

func TestMatrix_MulVecRow(t *testing.T) {
	// M = [[1, 2, 0], [0, 0, 3]]
	m := NewMatrix(2, 3)
	m.SetRow(0, VectorFromMap(map[int]float64{0: 1, 1: 2}))
	m.SetRow(1, VectorFromMap(map[int]float64{2: 3}))

	// vᵀ·M with v = [2, 5] → [2, 4, 15]
	v := VectorFromMap(map[int]float64{0: 2, 1: 5})
	got := m.MulVecRow(v)
	want := []float64{2, 4, 15}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MulVecRow = %v, want %v", got, want)
	}
}

func TestMatrix_NormalizeRowsL2(t *testing.T) {
	m := NewMatrix(3, 2)
	m.SetRow(0, VectorFromMap(map[int]float64{0: 3, 1: 4}))
	// row 1 stays empty: must remain all-zero without faulting
	m.SetRow(2, VectorFromMap(map[int]float64{1: 2}))

	m.NormalizeRowsL2()

	if got := m.Get(0, 0); math.Abs(got-0.6) > 1e-12 {
		t.Errorf("m[0][0] = %v, want 0.6", got)
	}
	if got := m.Get(0, 1); math.Abs(got-0.8) > 1e-12 {
		t.Errorf("m[0][1] = %v, want 0.8", got)
	}
	if m.Row(1).Len() != 0 {
		t.Errorf("zero row gained entries: %v", m.Row(1))
	}
	if got := m.Get(2, 1); got != 1 {
		t.Errorf("m[2][1] = %v, want 1", got)
	}
}

func TestMatrix_ColumnLists(t *testing.T) {
	m := NewMatrix(3, 3)
	m.SetRow(0, VectorFromMap(map[int]float64{0: 1, 2: 1}))
	m.SetRow(1, VectorFromMap(map[int]float64{2: 1}))
	m.SetRow(2, VectorFromMap(map[int]float64{0: 1, 1: 1}))

	got := m.ColumnLists()
	want := [][]int{{0, 2}, {2}, {0, 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ColumnLists = %v, want %v", got, want)
	}
}

func TestMatrix_DiagonalAndNNZ(t *testing.T) {
	m := NewMatrix(2, 2)
	m.SetRow(0, VectorFromMap(map[int]float64{0: 2, 1: 1}))
	m.SetRow(1, VectorFromMap(map[int]float64{1: 7}))

	if got := m.Diagonal(); !reflect.DeepEqual(got, []float64{2, 7}) {
		t.Errorf("Diagonal = %v, want [2 7]", got)
	}
	if got := m.NNZ(); got != 3 {
		t.Errorf("NNZ = %v, want 3", got)
	}
}
