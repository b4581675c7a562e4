package domain

// DefaultWinRate 没有任何战斗历史时的滚动胜率缺省值。
const DefaultWinRate = 0.75

// entity
// Statistics 自动化累计统计。
// 所有写入只允许经过 ApplyBattleResult / ApplyOfflineReport / Reset，
// 禁止散落的自增（多个调用点各自 +1 在重构中极易失同步）。
type Statistics struct {
	totalBattles    int
	victories       int
	defeats         int
	spoilsGained    RewardBag
	troopsLost      int
	citiesConquered int
	winStreak       int
	lossStreak      int
	dirty           bool
}

func NewStatistics() *Statistics {
	return &Statistics{}
}

func (s *Statistics) TotalBattles() int     { return s.totalBattles }
func (s *Statistics) Victories() int        { return s.victories }
func (s *Statistics) Defeats() int          { return s.defeats }
func (s *Statistics) SpoilsGained() RewardBag { return s.spoilsGained }
func (s *Statistics) TroopsLost() int       { return s.troopsLost }
func (s *Statistics) CitiesConquered() int  { return s.citiesConquered }
func (s *Statistics) WinStreak() int        { return s.winStreak }
func (s *Statistics) LossStreak() int       { return s.lossStreak }

// WinRate 滚动胜率；无历史时返回 DefaultWinRate。
func (s *Statistics) WinRate() float64 {
	if s.totalBattles == 0 {
		return DefaultWinRate
	}
	return float64(s.victories) / float64(s.totalBattles)
}

// ApplyBattleResult 统计的唯一逐场写入口（在线/离线结算都走这里）。
func (s *Statistics) ApplyBattleResult(o *BattleOutcome) {
	if o == nil {
		return
	}
	s.totalBattles++
	s.troopsLost += o.AttackerCasualties
	if o.Victory {
		s.victories++
		s.winStreak++
		s.lossStreak = 0
		s.spoilsGained = s.spoilsGained.Add(o.Reward)
		if o.Conquered {
			s.citiesConquered++
		}
	} else {
		s.defeats++
		s.lossStreak++
		s.winStreak = 0
	}
	s.dirty = true
}

// ApplyOfflineReport 离线批量推演的聚合入账。
// 连胜连败不参与：离线结果是均值推演，不代表末尾的真实走势。
func (s *Statistics) ApplyOfflineReport(r *OfflineReport) {
	if r == nil || r.BattlesFought == 0 {
		return
	}
	s.totalBattles += r.BattlesFought
	s.victories += r.Victories
	s.defeats += r.Defeats
	s.spoilsGained = s.spoilsGained.Add(r.ResourcesGained)
	s.troopsLost += r.TroopsLost
	s.citiesConquered += len(r.CitiesConquered)
	s.dirty = true
}

// Reset 只响应用户显式操作。
func (s *Statistics) Reset() {
	*s = Statistics{dirty: true}
}

func (s *Statistics) Dirty() bool {
	if s == nil {
		return false
	}
	return s.dirty
}

func (s *Statistics) ClearDirty() {
	if s == nil {
		return
	}
	s.dirty = false
}

type StatisticsSnapshot struct {
	TotalBattles    int
	Victories       int
	Defeats         int
	SpoilsGained    RewardBag
	TroopsLost      int
	CitiesConquered int
	WinStreak       int
	LossStreak      int
}

func (s *Statistics) Snapshot() StatisticsSnapshot {
	return StatisticsSnapshot{
		TotalBattles:    s.totalBattles,
		Victories:       s.victories,
		Defeats:         s.defeats,
		SpoilsGained:    s.spoilsGained,
		TroopsLost:      s.troopsLost,
		CitiesConquered: s.citiesConquered,
		WinStreak:       s.winStreak,
		LossStreak:      s.lossStreak,
	}
}

func HydrateStatistics(snap StatisticsSnapshot) *Statistics {
	return &Statistics{
		totalBattles:    snap.TotalBattles,
		victories:       snap.Victories,
		defeats:         snap.Defeats,
		spoilsGained:    snap.SpoilsGained,
		troopsLost:      snap.TroopsLost,
		citiesConquered: snap.CitiesConquered,
		winStreak:       snap.WinStreak,
		lossStreak:      snap.LossStreak,
	}
}
