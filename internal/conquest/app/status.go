package app

import (
	"time"

	"IdleConquest/internal/conquest/domain"
)

// EngineStatus 引擎状态快照，HTTP 状态查询直接序列化。
type EngineStatus struct {
	State        string             `json:"state"`
	ActiveSieges int                `json:"activeSieges"`
	Interval     string             `json:"interval"`
	NextCheckAt  time.Time          `json:"nextCheckAt"`
	Level        int                `json:"level"`
	Resources    domain.ResourceBag `json:"resources"`
	OwnedCities  []domain.CityID    `json:"ownedCities"`
	TotalCities  int                `json:"totalCities"`
	Difficulty   float64            `json:"difficulty"`
	WinRate      float64            `json:"winRate"`
	TotalBattles int                `json:"totalBattles"`
	WinStreak    int                `json:"winStreak"`
	LossStreak   int                `json:"lossStreak"`
}

func (s *Scheduler) Status() EngineStatus {
	stats := s.empire.Statistics()
	factor, _ := s.diff.Factor(stats, s.empire.OwnedCount())
	return EngineStatus{
		State:        s.state.String(),
		ActiveSieges: len(s.sieges),
		Interval:     s.interval.String(),
		NextCheckAt:  s.nextCheckAt,
		Level:        s.empire.Level(),
		Resources:    s.empire.Resources(),
		OwnedCities:  s.empire.OwnedCities(),
		TotalCities:  s.registry.TotalCities(),
		Difficulty:   factor,
		WinRate:      stats.WinRate(),
		TotalBattles: stats.TotalBattles(),
		WinStreak:    stats.WinStreak(),
		LossStreak:   stats.LossStreak(),
	}
}
