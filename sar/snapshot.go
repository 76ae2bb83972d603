package sar

import (
	"fmt"
	"time"

	"github.com/rushteam/sarkit/core"
	"github.com/rushteam/sarkit/sparse"
)

// Snapshot 是已拟合模型的可序列化形式：Fit 阶段的产物（索引、A、S、配置），
// 供在线打分进程通过 store.Snapshot 加载后直接 Recommend，无需重新 Fit。
type Snapshot struct {
	Config     Config          `json:"config"`
	Users      []string        `json:"users"`
	Items      []string        `json:"items"`
	DecayRef   time.Time       `json:"decay_ref,omitzero"`
	Affinity   []sparse.Vector `json:"affinity"`
	Similarity []sparse.Vector `json:"similarity"`
}

// Snapshot 导出模型的只读状态；未拟合时返回 EMPTY_MODEL。
func (m *Model) Snapshot() (*Snapshot, error) {
	if !m.fitted {
		return nil, core.NewEmptyModelError(core.ModuleSAR, "sar: cannot snapshot an unfitted model")
	}
	affinity := make([]sparse.Vector, m.users.Len())
	for u := 0; u < m.users.Len(); u++ {
		affinity[u] = m.affinity.Row(u)
	}
	similarity := make([]sparse.Vector, m.items.Len())
	for i := 0; i < m.items.Len(); i++ {
		similarity[i] = m.similarity.Row(i)
	}
	return &Snapshot{
		Config:     m.cfg,
		Users:      m.users.IDs(),
		Items:      m.items.IDs(),
		DecayRef:   m.decayRef,
		Affinity:   affinity,
		Similarity: similarity,
	}, nil
}

// FromSnapshot 从快照恢复一个已拟合、可直接打分的模型。
func FromSnapshot(snap *Snapshot) (*Model, error) {
	if snap == nil {
		return nil, core.NewConfigurationError(core.ModuleSAR, "sar: nil snapshot")
	}
	m, err := New(snap.Config)
	if err != nil {
		return nil, err
	}
	if len(snap.Affinity) != len(snap.Users) || len(snap.Similarity) != len(snap.Items) {
		return nil, core.NewConfigurationError(core.ModuleSAR,
			fmt.Sprintf("sar: snapshot shape mismatch: %d/%d affinity rows, %d/%d similarity rows",
				len(snap.Affinity), len(snap.Users), len(snap.Similarity), len(snap.Items)))
	}
	m.users = indexFromIDs(snap.Users)
	m.items = indexFromIDs(snap.Items)
	m.affinity = sparse.MatrixFromRows(snap.Affinity, len(snap.Items))
	m.similarity = sparse.MatrixFromRows(snap.Similarity, len(snap.Items))
	m.decayRef = snap.DecayRef
	m.fitted = true
	return m, nil
}
