package sar

import "sort"

// Index 维护外部不透明 ID 与稠密矩阵下标之间的双向映射。
// Fit 时从训练集构建一次（按 ID 字典序分配下标，保证可复现），之后只读。
type Index struct {
	ids []string
	pos map[string]int
}

// buildIndex 从 ID 集合构建索引，下标按字典序分配。
func buildIndex(set map[string]struct{}) *Index {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return indexFromIDs(ids)
}

// indexFromIDs 按给定顺序构建索引（快照恢复时使用，保持下标稳定）。
func indexFromIDs(ids []string) *Index {
	pos := make(map[string]int, len(ids))
	for i, id := range ids {
		pos[id] = i
	}
	return &Index{ids: ids, pos: pos}
}

// Len 返回索引中的 ID 个数。
func (x *Index) Len() int {
	return len(x.ids)
}

// Lookup 返回外部 ID 对应的稠密下标。
func (x *Index) Lookup(id string) (int, bool) {
	i, ok := x.pos[id]
	return i, ok
}

// ID 返回稠密下标对应的外部 ID。
func (x *Index) ID(i int) string {
	return x.ids[i]
}

// IDs 返回全部外部 ID 的拷贝（按下标顺序）。
func (x *Index) IDs() []string {
	out := make([]string, len(x.ids))
	copy(out, x.ids)
	return out
}
