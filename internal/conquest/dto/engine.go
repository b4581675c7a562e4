package dto

import (
	"time"

	"IdleConquest/internal/conquest/domain"
)

type Combatant struct {
	Name   string  `json:"name"`
	Troops int     `json:"troops"`
	Power  float64 `json:"power"`
	Morale float64 `json:"morale"`
}

type Reward struct {
	Gold       int `json:"gold"`
	Troops     int `json:"troops"`
	Food       int `json:"food"`
	Experience int `json:"experience"`
	Equipment  int `json:"equipment"`
}

type BattleOutcome struct {
	Victory            bool   `json:"victory"`
	AttackerCasualties int    `json:"attackerCasualties"`
	DefenderCasualties int    `json:"defenderCasualties"`
	Reward             Reward `json:"reward"`
	Conquered          bool   `json:"conquered"`
	SkipReason         string `json:"skipReason,omitempty"`
}

type BattleRecord struct {
	ID        int64          `json:"id"`
	CityID    int            `json:"cityId"`
	CityName  string         `json:"cityName"`
	Manual    bool           `json:"manual"`
	StartedAt time.Time      `json:"startedAt"`
	Deadline  time.Time      `json:"deadline"`
	Resolved  bool           `json:"resolved"`
	Attacker  Combatant      `json:"attacker"`
	Defender  Combatant      `json:"defender"`
	Outcome   *BattleOutcome `json:"outcome,omitempty"`
}

type OfflineReport struct {
	ElapsedHours    float64  `json:"elapsedHours"`
	BattlesFought   int      `json:"battlesFought"`
	Victories       int      `json:"victories"`
	Defeats         int      `json:"defeats"`
	ResourcesGained Reward   `json:"resourcesGained"`
	TroopsLost      int      `json:"troopsLost"`
	CitiesConquered []int    `json:"citiesConquered"`
	Milestones      []string `json:"milestones"`
}

type Statistics struct {
	TotalBattles    int    `json:"totalBattles"`
	Victories       int    `json:"victories"`
	Defeats         int    `json:"defeats"`
	WinRate         float64 `json:"winRate"`
	SpoilsGained    Reward `json:"spoilsGained"`
	TroopsLost      int    `json:"troopsLost"`
	CitiesConquered int    `json:"citiesConquered"`
	WinStreak       int    `json:"winStreak"`
	LossStreak      int    `json:"lossStreak"`
}

type AutomationSettings struct {
	Aggression          string  `json:"aggression"`
	ReservePercent      float64 `json:"reservePercent"`
	GoldFloor           int     `json:"goldFloor"`
	TroopFloor          int     `json:"troopFloor"`
	MaxConcurrentSieges int     `json:"maxConcurrentSieges"`
	BattlesPerHour      int     `json:"battlesPerHour"`
}

func FromCombatant(c domain.Combatant) Combatant {
	return Combatant{Name: c.Name, Troops: c.Troops, Power: c.Power, Morale: c.Morale}
}

func FromReward(r domain.RewardBag) Reward {
	return Reward{Gold: r.Gold, Troops: r.Troops, Food: r.Food, Experience: r.Experience, Equipment: r.Equipment}
}

func FromOutcome(o *domain.BattleOutcome) *BattleOutcome {
	if o == nil {
		return nil
	}
	return &BattleOutcome{
		Victory:            o.Victory,
		AttackerCasualties: o.AttackerCasualties,
		DefenderCasualties: o.DefenderCasualties,
		Reward:             FromReward(o.Reward),
		Conquered:          o.Conquered,
		SkipReason:         o.SkipReason,
	}
}

func FromBattleRecord(r *domain.BattleRecord) BattleRecord {
	return BattleRecord{
		ID:        r.ID(),
		CityID:    int(r.CityID()),
		CityName:  r.CityName(),
		Manual:    r.Manual(),
		StartedAt: r.StartedAt(),
		Deadline:  r.Deadline(),
		Resolved:  r.Status() == domain.BattleResolved,
		Attacker:  FromCombatant(r.Attacker()),
		Defender:  FromCombatant(r.Defender()),
		Outcome:   FromOutcome(r.Outcome()),
	}
}

func FromBattleRecords(rs []*domain.BattleRecord) []BattleRecord {
	out := make([]BattleRecord, 0, len(rs))
	for _, r := range rs {
		if r == nil {
			continue
		}
		out = append(out, FromBattleRecord(r))
	}
	return out
}

func FromOfflineReport(r *domain.OfflineReport) *OfflineReport {
	if r == nil {
		return nil
	}
	cities := make([]int, 0, len(r.CitiesConquered))
	for _, id := range r.CitiesConquered {
		cities = append(cities, int(id))
	}
	return &OfflineReport{
		ElapsedHours:    r.ElapsedHours,
		BattlesFought:   r.BattlesFought,
		Victories:       r.Victories,
		Defeats:         r.Defeats,
		ResourcesGained: FromReward(r.ResourcesGained),
		TroopsLost:      r.TroopsLost,
		CitiesConquered: cities,
		Milestones:      r.Milestones,
	}
}

func FromStatistics(s *domain.Statistics) Statistics {
	snap := s.Snapshot()
	return Statistics{
		TotalBattles:    snap.TotalBattles,
		Victories:       snap.Victories,
		Defeats:         snap.Defeats,
		WinRate:         s.WinRate(),
		SpoilsGained:    FromReward(snap.SpoilsGained),
		TroopsLost:      snap.TroopsLost,
		CitiesConquered: snap.CitiesConquered,
		WinStreak:       snap.WinStreak,
		LossStreak:      snap.LossStreak,
	}
}

// ToDomain 解析接口层提交的自动化参数，空字段落回当前值。
func (a AutomationSettings) ToDomain(current domain.AutomationSettings) domain.AutomationSettings {
	out := current
	if a.Aggression != "" {
		out.Aggression = domain.ParseAggression(a.Aggression)
	}
	if a.ReservePercent > 0 {
		out.ReservePercent = a.ReservePercent
	}
	if a.GoldFloor > 0 {
		out.GoldFloor = a.GoldFloor
	}
	if a.TroopFloor > 0 {
		out.TroopFloor = a.TroopFloor
	}
	if a.MaxConcurrentSieges > 0 {
		out.MaxConcurrentSieges = a.MaxConcurrentSieges
	}
	if a.BattlesPerHour > 0 {
		out.BattlesPerHour = a.BattlesPerHour
	}
	return out
}

func FromAutomationSettings(s domain.AutomationSettings) AutomationSettings {
	return AutomationSettings{
		Aggression:          s.Aggression.String(),
		ReservePercent:      s.ReservePercent,
		GoldFloor:           s.GoldFloor,
		TroopFloor:          s.TroopFloor,
		MaxConcurrentSieges: s.MaxConcurrentSieges,
		BattlesPerHour:      s.BattlesPerHour,
	}
}
