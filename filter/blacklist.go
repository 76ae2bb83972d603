package filter

import (
	"context"
	"encoding/json"

	"github.com/rushteam/sarkit/core"
)

// Blacklist 是黑名单过滤器，过滤掉黑名单中的物品。
type Blacklist struct {
	// ItemIDs 是内存中的黑名单物品 ID 列表
	ItemIDs []string

	// Store 用于从存储中读取黑名单（可选）
	Store BlacklistStore

	// Key 是 Store 中的黑名单 key（可选）
	Key string
}

// BlacklistStore 是黑名单存储接口。
type BlacklistStore interface {
	// GetBlacklist 获取黑名单物品 ID 列表
	GetBlacklist(ctx context.Context, key string) ([]string, error)
}

// NewBlacklist 创建一个黑名单过滤器。
func NewBlacklist(itemIDs []string, store BlacklistStore, key string) *Blacklist {
	return &Blacklist{
		ItemIDs: itemIDs,
		Store:   store,
		Key:     key,
	}
}

func (f *Blacklist) Name() string {
	return "filter.blacklist"
}

func (f *Blacklist) ShouldFilter(ctx context.Context, rec core.Recommendation, _ int) (bool, error) {
	// 从内存列表检查
	for _, id := range f.ItemIDs {
		if rec.ItemID == id {
			return true, nil
		}
	}

	// 从 Store 检查
	if f.Store != nil && f.Key != "" {
		blacklist, err := f.Store.GetBlacklist(ctx, f.Key)
		if err != nil {
			return false, err
		}
		for _, id := range blacklist {
			if rec.ItemID == id {
				return true, nil
			}
		}
	}

	return false, nil
}

// StoreAdapter 把 core.Store 适配为 BlacklistStore：key 下存 JSON 形式的 ID 列表。
type StoreAdapter struct {
	Store core.Store
}

func (a *StoreAdapter) GetBlacklist(ctx context.Context, key string) ([]string, error) {
	data, err := a.Store.Get(ctx, key)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

var _ Filter = (*Blacklist)(nil)
var _ BlacklistStore = (*StoreAdapter)(nil)
