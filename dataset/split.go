package dataset

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/rushteam/sarkit/core"
)

// StratifiedSplit 按用户分层切分交互集。
//
// ratio ∈ (0,1) 是留在训练集的比例：每个用户约 (1-ratio) 的交互进入测试集。
// 保证：
//   - 测试集中出现的每个用户都在训练集中出现（单条交互的用户全部进训练集）
//   - 测试集中出现的每个物品都在训练集中出现（违例的测试记录回移训练集）
//   - seed 固定则切分结果确定
func StratifiedSplit(records []core.Interaction, ratio float64, seed int64) (train, test []core.Interaction, err error) {
	if ratio <= 0 || ratio >= 1 {
		return nil, nil, core.NewConfigurationError(core.ModuleDataset,
			fmt.Sprintf("dataset: split ratio must be in (0,1), got %v", ratio))
	}

	byUser := make(map[string][]core.Interaction)
	for _, rec := range records {
		byUser[rec.UserID] = append(byUser[rec.UserID], rec)
	}

	// 用户按字典序遍历，随机性完全由 seed 驱动
	users := make([]string, 0, len(byUser))
	for userID := range byUser {
		users = append(users, userID)
	}
	sort.Strings(users)

	rng := rand.New(rand.NewSource(seed))
	trainItems := make(map[string]struct{})

	for _, userID := range users {
		recs := byUser[userID]
		if len(recs) == 1 {
			train = append(train, recs[0])
			trainItems[recs[0].ItemID] = struct{}{}
			continue
		}

		perm := rng.Perm(len(recs))
		nTrain := int(math.Ceil(ratio * float64(len(recs))))
		if nTrain < 1 {
			nTrain = 1
		}
		for i, p := range perm {
			if i < nTrain {
				train = append(train, recs[p])
				trainItems[recs[p].ItemID] = struct{}{}
			} else {
				test = append(test, recs[p])
			}
		}
	}

	// 物品覆盖保证：只在测试集出现的物品回移训练集
	kept := test[:0]
	for _, rec := range test {
		if _, ok := trainItems[rec.ItemID]; !ok {
			train = append(train, rec)
			trainItems[rec.ItemID] = struct{}{}
			continue
		}
		kept = append(kept, rec)
	}
	test = kept

	return train, test, nil
}
