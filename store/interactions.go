package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/rushteam/sarkit/core"
)

// InteractionLog 把交互记录按用户存放在 core.Store 中，
// 供离线 Fit 或在线查询按需加载。
//
// key 方案：
//   - 用户记录：{KeyPrefix}:user:{userID} → JSON []core.Interaction
//   - 用户清单：{KeyPrefix}:users → JSON []string
type InteractionLog struct {
	store core.Store

	// KeyPrefix 是存储 key 的前缀
	KeyPrefix string
}

// NewInteractionLog 创建一个基于 core.Store 的交互日志。
func NewInteractionLog(s core.Store, keyPrefix string) *InteractionLog {
	if keyPrefix == "" {
		keyPrefix = "sar"
	}
	return &InteractionLog{store: s, KeyPrefix: keyPrefix}
}

func (l *InteractionLog) userKey(userID string) string {
	return l.KeyPrefix + ":user:" + userID
}

func (l *InteractionLog) usersKey() string {
	return l.KeyPrefix + ":users"
}

// Save 按用户分组整体写入交互记录（覆盖语义），并更新用户清单。
func (l *InteractionLog) Save(ctx context.Context, records []core.Interaction) error {
	byUser := make(map[string][]core.Interaction)
	for _, rec := range records {
		byUser[rec.UserID] = append(byUser[rec.UserID], rec)
	}

	users := make([]string, 0, len(byUser))
	kvs := make(map[string][]byte, len(byUser)+1)
	for userID, recs := range byUser {
		data, err := json.Marshal(recs)
		if err != nil {
			return fmt.Errorf("store: marshal interactions for user %s: %w", userID, err)
		}
		kvs[l.userKey(userID)] = data
		users = append(users, userID)
	}

	sort.Strings(users)
	usersData, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("store: marshal user list: %w", err)
	}
	kvs[l.usersKey()] = usersData

	return l.store.BatchSet(ctx, kvs)
}

// LoadUser 加载单个用户的交互记录；用户不存在时返回空切片。
func (l *InteractionLog) LoadUser(ctx context.Context, userID string) ([]core.Interaction, error) {
	data, err := l.store.Get(ctx, l.userKey(userID))
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	var records []core.Interaction
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("store: unmarshal interactions for user %s: %w", userID, err)
	}
	return records, nil
}

// LoadAll 加载全部交互记录，按用户 ID 字典序拼接（保证可复现的训练输入顺序）。
func (l *InteractionLog) LoadAll(ctx context.Context) ([]core.Interaction, error) {
	data, err := l.store.Get(ctx, l.usersKey())
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	var users []string
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("store: unmarshal user list: %w", err)
	}

	keys := make([]string, 0, len(users))
	for _, userID := range users {
		keys = append(keys, l.userKey(userID))
	}
	kvs, err := l.store.BatchGet(ctx, keys)
	if err != nil {
		return nil, err
	}

	var out []core.Interaction
	for _, userID := range users {
		data, ok := kvs[l.userKey(userID)]
		if !ok {
			continue
		}
		var records []core.Interaction
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("store: unmarshal interactions for user %s: %w", userID, err)
		}
		out = append(out, records...)
	}
	return out, nil
}
