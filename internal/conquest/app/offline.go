package app

import (
	"fmt"
	"math"
	"time"

	"IdleConquest/internal/conquest/domain"
)

const (
	// 离线补偿参数：封顶 24 小时，超过 8 小时的部分按 0.9 效率计，
	// 整体再乘 0.7 的离线折减（离线推演不如在线逐场打得勤）。
	offlineHoursCap      = 24.0
	fullEfficiencyHours  = 8.0
	overtimeEfficiency   = 0.9
	offlineBattleFactor  = 0.7
	defaultBattlesPerHour = 6

	// 每征服一城所需胜场基数，随已有城数递增。
	baseBattlesPerCity    = 10.0
	cityConquestSlowdown  = 0.2

	// 离线战损用的典型投入兵力：现存兵力的十分之一，保底 50。
	offlineCommitDivisor = 10
	offlineCommitFloor   = 50
)

// 叙事花絮池：按战斗量轮转抽取，仅展示用。
var offlineFlavorEvents = []string{
	"边境斥候带回了敌军布防图",
	"一支商队送来犒军的粮草",
	"军中流传起关于你的歌谣",
	"降将献上了邻城的城防弱点",
	"连日阴雨拖慢了攻城器械的行进",
}

// OfflineSimulator 离线推演：按聚合模型折算离线期间的战果，
// 不逐 tick 重放。幂等性由调用方的 lastActiveAt 锚点保证。
type OfflineSimulator struct {
	diff     *DifficultyService
	selector *TargetSelector
}

func NewOfflineSimulator(diff *DifficultyService, selector *TargetSelector) *OfflineSimulator {
	return &OfflineSimulator{diff: diff, selector: selector}
}

// Simulate 只计算不落账；cities 是注册表全量城池。
func (o *OfflineSimulator) Simulate(empire *domain.Empire, cities []*domain.City, totalCities int, elapsed time.Duration) *domain.OfflineReport {
	hours := elapsed.Hours()
	if hours <= 0 {
		return &domain.OfflineReport{}
	}

	effectiveHours := math.Min(hours, offlineHoursCap)
	efficiencyHours := math.Min(effectiveHours, fullEfficiencyHours) +
		math.Max(effectiveHours-fullEfficiencyHours, 0)*overtimeEfficiency

	bph := empire.Settings().BattlesPerHour
	if bph <= 0 {
		bph = defaultBattlesPerHour
	}
	battles := int(efficiencyHours * float64(bph) * offlineBattleFactor)
	if battles <= 0 {
		return &domain.OfflineReport{ElapsedHours: effectiveHours}
	}

	stats := empire.Statistics()
	wins := int(math.Round(float64(battles) * stats.WinRate()))
	if wins > battles {
		wins = battles
	}
	defeats := battles - wins

	factor, _ := o.diff.Factor(stats, empire.OwnedCount())
	perVictory := ExpectedReward(domain.TierSmall, factor)

	commit := empire.Resources().Troops / offlineCommitDivisor
	if commit < offlineCommitFloor {
		commit = offlineCommitFloor
	}
	troopsLost := int(float64(wins)*float64(commit)*AverageVictoryCasualtyRate()) +
		int(float64(defeats)*float64(commit)*AverageDefeatCasualtyRate())
	// 离线战损封顶半数现存兵力：推演不允许把军队打空。
	if limit := empire.Resources().Troops / 2; troopsLost > limit {
		troopsLost = limit
	}

	conquered := o.pickConqueredCities(empire, cities, totalCities, wins)

	report := &domain.OfflineReport{
		ElapsedHours: effectiveHours,
		BattlesFought: battles,
		Victories:     wins,
		Defeats:       defeats,
		ResourcesGained: domain.RewardBag{
			Gold:       perVictory.Gold * wins,
			Experience: perVictory.Experience * wins,
		},
		TroopsLost:      troopsLost,
		CitiesConquered: conquered,
	}
	report.Milestones = o.milestones(report)
	return report
}

// Apply 把推演结果一次性落账：资源、城池归属、统计。
// 同一离线事件只允许应用一次，应用后立即推进活跃时间戳。
func (o *OfflineSimulator) Apply(empire *domain.Empire, registry CityRegistry, report *domain.OfflineReport, now time.Time) error {
	if report.Empty() {
		empire.TouchActive(now)
		return nil
	}
	empire.GainResources(report.ResourcesGained.Resources())
	empire.SpendResources(domain.ResourceBag{Troops: report.TroopsLost})
	empire.GainExperience(report.ResourcesGained.Experience)
	for _, id := range report.CitiesConquered {
		if _, err := registry.ExecuteConquest(id); err != nil {
			return err
		}
		empire.AddCity(id)
	}
	empire.Statistics().ApplyOfflineReport(report)
	empire.TouchActive(now)
	return nil
}

// pickConqueredCities 胜场换城：每城所需胜场随已有城数增长，
// 超出注册表规模的部分直接截断。城池按 id 升序入选，保证确定性。
func (o *OfflineSimulator) pickConqueredCities(empire *domain.Empire, cities []*domain.City, totalCities, wins int) []domain.CityID {
	battlesPerCity := baseBattlesPerCity * (1 + float64(empire.OwnedCount())*cityConquestSlowdown)
	count := int(float64(wins) / battlesPerCity)
	if count <= 0 {
		return nil
	}
	if remaining := totalCities - empire.OwnedCount(); count > remaining {
		count = remaining
	}

	candidates := o.selector.Candidates(empire, cities)
	if count > len(candidates) {
		count = len(candidates)
	}
	out := make([]domain.CityID, 0, count)
	for _, c := range candidates[:count] {
		out = append(out, c.ID())
	}
	return out
}

func (o *OfflineSimulator) milestones(r *domain.OfflineReport) []string {
	var ms []string
	if r.BattlesFought >= 100 {
		ms = append(ms, fmt.Sprintf("离线期间历经 %d 场鏖战", r.BattlesFought))
	}
	if r.Victories >= 50 {
		ms = append(ms, fmt.Sprintf("离线期间赢得 %d 场胜利", r.Victories))
	}
	if len(r.CitiesConquered) > 0 {
		ms = append(ms, fmt.Sprintf("离线期间攻克 %d 座城池", len(r.CitiesConquered)))
	}
	// 花絮按战斗量轮转抽取，不超过池子一轮。
	flavorCount := r.BattlesFought / 25
	if flavorCount > len(offlineFlavorEvents) {
		flavorCount = len(offlineFlavorEvents)
	}
	for i := 0; i < flavorCount; i++ {
		ms = append(ms, offlineFlavorEvents[(r.BattlesFought+i)%len(offlineFlavorEvents)])
	}
	return ms
}
