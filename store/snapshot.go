package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rushteam/sarkit/core"
	"github.com/rushteam/sarkit/sar"
)

// SnapshotStore 负责已拟合模型快照的持久化：
// 离线任务 Fit 完成后 Save，在线打分进程 Load 后直接 Recommend。
//
// key 方案：{KeyPrefix}:snapshot:{name}
type SnapshotStore struct {
	store core.Store

	// KeyPrefix 是存储 key 的前缀
	KeyPrefix string
}

// NewSnapshotStore 创建一个基于 core.Store 的快照存储。
func NewSnapshotStore(s core.Store, keyPrefix string) *SnapshotStore {
	if keyPrefix == "" {
		keyPrefix = "sar"
	}
	return &SnapshotStore{store: s, KeyPrefix: keyPrefix}
}

func (s *SnapshotStore) key(name string) string {
	return s.KeyPrefix + ":snapshot:" + name
}

// Save 把已拟合模型序列化后写入存储；ttl（秒）可选。
func (s *SnapshotStore) Save(ctx context.Context, name string, m *sar.Model, ttl ...int) error {
	snap, err := m.Snapshot()
	if err != nil {
		return err
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("store: marshal snapshot %s: %w", name, err)
	}
	return s.store.Set(ctx, s.key(name), data, ttl...)
}

// Load 从存储恢复一个已拟合、可直接打分的模型。
// 快照不存在时返回 core.ErrStoreNotFound。
func (s *SnapshotStore) Load(ctx context.Context, name string) (*sar.Model, error) {
	data, err := s.store.Get(ctx, s.key(name))
	if err != nil {
		return nil, err
	}
	var snap sar.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("store: unmarshal snapshot %s: %w", name, err)
	}
	return sar.FromSnapshot(&snap)
}
