// Package sar 实现基于物品协同过滤的 SAR 推荐模型
// （Simple Algorithm for Recommendation）。
//
// 数据流：交互记录 → 索引分配 → 稀疏亲和度矩阵 A（可选时间衰减/行归一化）
// → 物品共现矩阵 C = BᵗB → 相似度矩阵 S（count/cosine/jaccard/lift）
// → 打分 R = A_q·S，过滤已交互物品，取 Top-K。
//
// 生命周期：New 构建未拟合模型；Fit 一次性填充全部派生状态（重复 Fit 丢弃旧状态）；
// Fit 完成后模型只读，Recommend 可被多个 goroutine 并发调用，
// 每次调用只分配自己的查询态工作矩阵。
package sar

import (
	"context"
	"fmt"
	"time"

	"github.com/rushteam/sarkit/core"
	"github.com/rushteam/sarkit/sparse"
)

// Model 是 SAR 模型：持有用户/物品索引、亲和度矩阵 A 与相似度矩阵 S。
type Model struct {
	cfg Config

	users      *Index
	items      *Index
	affinity   *sparse.Matrix
	similarity *sparse.Matrix

	// decayRef 是 Fit 时冻结的衰减参考时刻（训练集最大时间戳）。
	// FreshDecayReference 开启时打分改用查询集自己的最大时间戳。
	decayRef time.Time

	fitted bool
}

// New 用给定配置构建一个未拟合的模型。
// 度量名不合法或衰减半衰期非正时返回 INVALID_CONFIG 错误。
func New(cfg Config) (*Model, error) {
	if cfg.Metric == "" {
		cfg.Metric = MetricCosine
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Model{cfg: cfg}, nil
}

// Config 返回模型配置的拷贝。
func (m *Model) Config() Config { return m.cfg }

// Fitted 返回模型是否已完成 Fit。
func (m *Model) Fitted() bool { return m.fitted }

// NumUsers 返回训练集中的用户数（未拟合时为 0）。
func (m *Model) NumUsers() int {
	if !m.fitted {
		return 0
	}
	return m.users.Len()
}

// NumItems 返回训练集中的物品数（未拟合时为 0）。
func (m *Model) NumItems() int {
	if !m.fitted {
		return 0
	}
	return m.items.Len()
}

// Users 返回训练集中全部用户 ID（按索引下标顺序，即字典序）。
func (m *Model) Users() []string {
	if !m.fitted {
		return nil
	}
	return m.users.IDs()
}

// Items 返回训练集中全部物品 ID（按索引下标顺序，即字典序）。
func (m *Model) Items() []string {
	if !m.fitted {
		return nil
	}
	return m.items.IDs()
}

// ItemSimilarity 返回两个物品的相似度 S[a][b]。
// 未拟合返回 EMPTY_MODEL；任一 ID 未见过返回 UNKNOWN_ENTITY。
func (m *Model) ItemSimilarity(a, b string) (float64, error) {
	if !m.fitted {
		return 0, core.NewEmptyModelError(core.ModuleSAR, "sar: model is not fitted")
	}
	i, ok := m.items.Lookup(a)
	if !ok {
		return 0, core.NewUnknownEntityError(core.ModuleSAR, fmt.Sprintf("sar: unknown item id %q", a))
	}
	j, ok := m.items.Lookup(b)
	if !ok {
		return 0, core.NewUnknownEntityError(core.ModuleSAR, fmt.Sprintf("sar: unknown item id %q", b))
	}
	return m.similarity.Get(i, j), nil
}

// UserAffinity 返回已拟合亲和度矩阵中的 A[user][item]。
func (m *Model) UserAffinity(user, item string) (float64, error) {
	if !m.fitted {
		return 0, core.NewEmptyModelError(core.ModuleSAR, "sar: model is not fitted")
	}
	u, ok := m.users.Lookup(user)
	if !ok {
		return 0, core.NewUnknownEntityError(core.ModuleSAR, fmt.Sprintf("sar: unknown user id %q", user))
	}
	i, ok := m.items.Lookup(item)
	if !ok {
		return 0, core.NewUnknownEntityError(core.ModuleSAR, fmt.Sprintf("sar: unknown item id %q", item))
	}
	return m.affinity.Get(u, i), nil
}

// Fit 用训练集一次性构建全部派生状态：索引、A、C、S。
// 重复调用会整体替换上一次的拟合结果。
//
// 注意：Fit 不是并发安全的，必须在任何 Recommend 调用之前完成；
// Fit 完成后模型只读，Recommend 可并发调用。
func (m *Model) Fit(ctx context.Context, records []core.Interaction) error {
	if len(records) == 0 {
		return core.NewConfigurationError(core.ModuleSAR, "sar: fit requires a non-empty training set")
	}

	userSet := make(map[string]struct{})
	itemSet := make(map[string]struct{})
	for _, rec := range records {
		if err := validateRecord(m.cfg, rec); err != nil {
			return err
		}
		userSet[rec.UserID] = struct{}{}
		itemSet[rec.ItemID] = struct{}{}
	}

	users := buildIndex(userSet)
	items := buildIndex(itemSet)

	var decayRef time.Time
	if m.cfg.TimeDecay {
		decayRef = maxTimestamp(records)
	}

	affinity, err := buildAffinity(m.cfg, users, items, records, decayRef, true)
	if err != nil {
		return err
	}

	cooccur, err := cooccurrence(ctx, affinity, m.cfg.Parallelism)
	if err != nil {
		return fmt.Errorf("sar: co-occurrence: %w", err)
	}

	// 全部派生状态就绪后才整体替换，半成品不可见
	m.users = users
	m.items = items
	m.affinity = affinity
	m.similarity = similarityFrom(cooccur, m.cfg.Metric)
	m.decayRef = decayRef
	m.fitted = true
	return nil
}

// Recommend 对查询集中出现的每个用户产出 Top-K 推荐。
//
// 查询集可以是训练集本身，也可以是留出集；其中的用户/物品 ID 必须已存在于
// 拟合索引中，未知 ID 按 StrictUnknowns 决定报错或静默跳过。
// removeSeen 为 true 时，查询集中已交互的 (user, item) 对绝不会出现在输出里。
//
// 输出对固定输入与配置是确定的：用户按 ID 字典序，单用户内按得分降序、
// 同分按物品索引下标升序。查询中没有任何有效交互的用户不产出结果。
func (m *Model) Recommend(
	ctx context.Context,
	query []core.Interaction,
	topK int,
	removeSeen bool,
) ([]core.Recommendation, error) {
	if !m.fitted {
		return nil, core.NewEmptyModelError(core.ModuleSAR, "sar: recommend called before fit")
	}
	if topK <= 0 {
		return nil, core.NewConfigurationError(core.ModuleSAR,
			fmt.Sprintf("sar: top-k must be positive, got %d", topK))
	}
	if len(query) == 0 {
		return nil, nil
	}

	decayRef := m.decayRef
	if m.cfg.TimeDecay && m.cfg.FreshDecayReference {
		decayRef = maxTimestamp(query)
	}

	queryAffinity, err := buildAffinity(m.cfg, m.users, m.items, query, decayRef, m.cfg.StrictUnknowns)
	if err != nil {
		return nil, err
	}

	return m.score(ctx, queryAffinity, topK, removeSeen)
}
