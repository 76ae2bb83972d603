package core

import "time"

// Interaction 是一条隐式反馈交互记录：用户在某个时刻与某个物品发生了一次交互。
//
// 字段语义：
//   - UserID / ItemID：外部不透明 ID（字符串形式，支持所有 ID 格式）
//   - Rating：交互强度，非负（点击可记 1，购买/时长可记更大的权重）
//   - Timestamp：交互时刻；零值表示无时间信息（启用时间衰减时必须提供）
//
// 同一 (user, item) 对可以出现多条记录，模型在 Fit/Recommend 时按求和聚合。
type Interaction struct {
	UserID    string    `json:"user_id"`
	ItemID    string    `json:"item_id"`
	Rating    float64   `json:"rating"`
	Timestamp time.Time `json:"timestamp,omitzero"`
}

// Recommendation 是一条推荐结果：用户、物品及其得分。
// 同一用户的结果按得分降序排列；得分相同时按物品在模型索引中的下标升序。
type Recommendation struct {
	UserID string  `json:"user_id"`
	ItemID string  `json:"item_id"`
	Score  float64 `json:"score"`
}
