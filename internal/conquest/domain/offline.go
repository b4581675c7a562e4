package domain

// OfflineReport 一次离线补偿事件的推演结果。
// 应用到帝国状态后即弃；调用方消费后必须立刻推进 lastActiveAt。
type OfflineReport struct {
	ElapsedHours    float64 // 参与推演的有效小时数（封顶后）
	BattlesFought   int
	Victories       int
	Defeats         int
	ResourcesGained RewardBag
	TroopsLost      int
	CitiesConquered []CityID
	Milestones      []string // 仅展示用的叙事里程碑，非权威数据
}

func (r *OfflineReport) Empty() bool {
	return r == nil || (r.BattlesFought == 0 && len(r.CitiesConquered) == 0)
}
