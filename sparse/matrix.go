package sparse

// Matrix 是按行存储的稀疏矩阵：每行一个升序 Vector，缺行语义为全零行。
// 行数在构建时固定；单行可整体替换（SetRow），构建完成后按只读使用。
type Matrix struct {
	cols int
	rows []Vector
}

// NewMatrix 创建 rows×cols 的全零稀疏矩阵。
func NewMatrix(rows, cols int) *Matrix {
	return &Matrix{
		cols: cols,
		rows: make([]Vector, rows),
	}
}

// MatrixFromRows 用已有的行向量构建矩阵（快照恢复时使用）。
// 行内下标必须升序且小于 cols；调用方负责保证。
func MatrixFromRows(rows []Vector, cols int) *Matrix {
	return &Matrix{cols: cols, rows: rows}
}

// Rows 返回行数。
func (m *Matrix) Rows() int { return len(m.rows) }

// Cols 返回列数。
func (m *Matrix) Cols() int { return m.cols }

// Row 返回第 i 行（零行返回空 Vector）。
func (m *Matrix) Row(i int) Vector { return m.rows[i] }

// SetRow 整体替换第 i 行。
func (m *Matrix) SetRow(i int, v Vector) { m.rows[i] = v }

// Get 返回 (i, j) 处的值，缺失为 0。
func (m *Matrix) Get(i, j int) float64 {
	return m.rows[i].Get(j)
}

// NNZ 返回非零元素总数。
func (m *Matrix) NNZ() int {
	n := 0
	for _, row := range m.rows {
		n += row.Len()
	}
	return n
}

// Diagonal 返回主对角线的稠密拷贝（相似度归一化需要边际计数 C[i][i]）。
func (m *Matrix) Diagonal() []float64 {
	n := len(m.rows)
	if m.cols < n {
		n = m.cols
	}
	diag := make([]float64, n)
	for i := 0; i < n; i++ {
		diag[i] = m.rows[i].Get(i)
	}
	return diag
}

// NormalizeRowsL2 原地对每行做 L2 归一化；零范数行保持全零，不会除零。
func (m *Matrix) NormalizeRowsL2() {
	for _, row := range m.rows {
		norm := row.L2Norm()
		if norm == 0 {
			continue
		}
		row.Scale(1 / norm)
	}
}

// ColumnLists 返回每列的非零行下标列表（升序），即按列的倒排表。
// 共现计算把它当作"物品 → 交互用户"的倒排索引使用。
func (m *Matrix) ColumnLists() [][]int {
	lists := make([][]int, m.cols)
	for i, row := range m.rows {
		for _, j := range row.Indices {
			lists[j] = append(lists[j], i)
		}
	}
	return lists
}

// MulVecRow 计算 vᵀ·M，返回长度为 Cols 的稠密结果。
// 这是打分阶段的核心原语：用户亲和度行向量乘以相似度矩阵。
func (m *Matrix) MulVecRow(v Vector) []float64 {
	out := make([]float64, m.cols)
	v.ForEach(func(i int, a float64) {
		m.rows[i].ForEach(func(j int, s float64) {
			out[j] += a * s
		})
	})
	return out
}
