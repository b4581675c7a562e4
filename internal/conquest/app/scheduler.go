package app

import (
	"errors"
	"time"

	"IdleConquest/internal/conquest/domain"
	"IdleConquest/modules/kit/logx"

	"go.uber.org/zap"
)

// SchedulerState 引擎状态机。
// Idle → SelectingTarget → Resolving → Idle，Paused 可从任意状态进入，
// 恢复后回到 Idle。Selecting/Resolving 只在一次 Tick 内部短暂存在，
// 跨 tick 可观测到的稳定状态只有 Idle / Paused。
type SchedulerState int8

const (
	StateIdle SchedulerState = iota
	StateSelectingTarget
	StateResolving
	StatePaused
)

func (s SchedulerState) String() string {
	switch s {
	case StateSelectingTarget:
		return "selecting"
	case StateResolving:
		return "resolving"
	case StatePaused:
		return "paused"
	default:
		return "idle"
	}
}

// 战斗间隔几何增长：每完成一轮 ×1.15，封顶模拟征伐疲劳。
const pacingGrowth = 1.15

type SchedulerConfig struct {
	BaseInterval time.Duration
	IntervalCap  time.Duration
	HistorySize  int
}

func (c SchedulerConfig) withDefaults() SchedulerConfig {
	if c.BaseInterval <= 0 {
		c.BaseInterval = 5 * time.Second
	}
	if c.IntervalCap < c.BaseInterval {
		c.IntervalCap = 60 * time.Second
	}
	if c.HistorySize <= 0 {
		c.HistorySize = domain.DefaultHistorySize
	}
	return c
}

// CycleResult 一次周期（或一次围城结算）的结果对象。
// 选目标/结算中的任何业务失败都以 Reason 返回，绝不让引擎崩掉；
// Err 只承载硬性约束破坏（如注册表缺 id），由上层决定如何处置。
type CycleResult struct {
	Success bool
	Reason  string
	Plan    *domain.BattlePlan
	Record  *domain.BattleRecord
	Victory bool
	Err     error
}

// Scheduler 推进调度核心：目标选择 → 围城 → 结算的单线程状态机。
// 不自带定时器，由宿主（actor）按节奏调用 Tick；时间全部外部注入，
// 测试不需要伪造挂起。
type Scheduler struct {
	empire   *domain.Empire
	registry CityRegistry
	selector *TargetSelector
	combat   *CombatService
	diff     *DifficultyService
	offline  *OfflineSimulator
	emitter  *Emitter
	log      logx.Logger
	nextID   func() int64
	cfg      SchedulerConfig

	state       SchedulerState
	interval    time.Duration
	nextCheckAt time.Time
	sieges      []*domain.BattleRecord
	history     *domain.History
	victorySent bool
}

func NewScheduler(
	empire *domain.Empire,
	registry CityRegistry,
	selector *TargetSelector,
	combat *CombatService,
	diff *DifficultyService,
	offline *OfflineSimulator,
	emitter *Emitter,
	log logx.Logger,
	nextID func() int64,
	cfg SchedulerConfig,
) *Scheduler {
	cfg = cfg.withDefaults()
	return &Scheduler{
		empire:   empire,
		registry: registry,
		selector: selector,
		combat:   combat,
		diff:     diff,
		offline:  offline,
		emitter:  emitter,
		log:      log,
		nextID:   nextID,
		cfg:      cfg,
		state:    StateIdle,
		interval: cfg.BaseInterval,
		history:  domain.NewHistory(cfg.HistorySize),
	}
}

func (s *Scheduler) State() SchedulerState      { return s.state }
func (s *Scheduler) Empire() *domain.Empire     { return s.empire }
func (s *Scheduler) History() *domain.History   { return s.history }
func (s *Scheduler) ActiveSieges() int          { return len(s.sieges) }
func (s *Scheduler) Interval() time.Duration    { return s.interval }
func (s *Scheduler) NextCheckAt() time.Time     { return s.nextCheckAt }

// Tick 单步推进：先结算所有到期围城，再视状态发起新周期。
// 一次 Tick 内目标选择、可负担校验与承诺是原子的，
// 中途不会有别的 tick 观测到半应用的计划。
func (s *Scheduler) Tick(now time.Time) []CycleResult {
	var results []CycleResult
	for _, r := range s.dueSieges(now) {
		results = append(results, s.resolveSiege(r, now))
	}
	// 暂停只拦住新周期，已承诺的围城照常结算，避免半途状态。
	if s.state == StatePaused {
		return results
	}
	if s.nextCheckAt.After(now) {
		return results
	}
	if res := s.runCycle(now); res != nil {
		results = append(results, *res)
	}
	return results
}

func (s *Scheduler) dueSieges(now time.Time) []*domain.BattleRecord {
	var due []*domain.BattleRecord
	for _, r := range s.sieges {
		if r.Due(now) {
			due = append(due, r)
		}
	}
	return due
}

func (s *Scheduler) runCycle(now time.Time) *CycleResult {
	s.state = StateSelectingTarget

	if len(s.sieges) >= s.empire.Settings().MaxConcurrentSieges {
		s.state = StateIdle
		s.nextCheckAt = now.Add(s.interval)
		return &CycleResult{Reason: ReasonSiegeLimit.Code}
	}

	plan, reason, err := s.selector.SelectTarget(s.empire, s.registry.ConquerableCities())
	if err != nil {
		// 任何选择期错误都中止本轮且不触碰状态，下个 tick 重试。
		s.state = StateIdle
		s.nextCheckAt = now.Add(s.interval)
		return &CycleResult{Reason: s.failReason(err), Err: hardErrOnly(err)}
	}
	if plan == nil {
		s.state = StateIdle
		if s.registry.TotalCities() > 0 && s.empire.OwnedCount() >= s.registry.TotalCities() {
			return s.declareVictory()
		}
		s.nextCheckAt = now.Add(s.interval)
		return &CycleResult{Reason: reason}
	}

	res := s.commit(plan, false, now)
	s.state = StateIdle
	if res.Success {
		// 节奏疲劳：每完成一轮承诺，下一轮等得更久一点。
		s.interval = time.Duration(float64(s.interval) * pacingGrowth)
		if s.interval > s.cfg.IntervalCap {
			s.interval = s.cfg.IntervalCap
		}
	}
	s.nextCheckAt = now.Add(s.interval)
	return &res
}

// commit 承诺一份作战计划：标记围城、扣资源、建档、广播。
// 与目标选择处于同一次 Tick 内，对外表现为原子。
func (s *Scheduler) commit(plan *domain.BattlePlan, manual bool, now time.Time) CycleResult {
	s.state = StateResolving

	if err := s.registry.StartSiege(plan.CityID); err != nil {
		return CycleResult{Reason: ReasonCityUnderSiege.Code}
	}
	s.empire.SpendResources(domain.ResourceBag{Gold: plan.Cost.Gold, Troops: plan.TroopAllocation})

	stats := s.empire.Statistics()
	attacker := domain.Combatant{
		Name:   "帝国远征军",
		Troops: plan.TroopAllocation,
		Power:  PlayerPower(s.empire.Attributes(), plan.TroopAllocation),
		Morale: morale(stats.WinStreak(), stats.LossStreak()),
	}
	city, err := s.registry.CityByID(plan.CityID)
	if err != nil {
		return CycleResult{Reason: s.failReason(err), Err: err}
	}
	defender := domain.Combatant{
		Name:   city.Name(),
		Troops: city.Garrison(),
		Power:  DefenderPower(city, plan.Difficulty),
		Morale: 1.0,
	}

	record := domain.NewBattleRecord(s.nextID(), *plan, attacker, defender, manual, now)
	s.sieges = append(s.sieges, record)

	s.emitter.Emit(DifficultyScalingApplied{Factor: plan.Difficulty, Reason: s.scalingReason()})
	s.emitter.Emit(BattleStarted{
		CityID:   plan.CityID,
		CityName: plan.CityName,
		Attacker: attacker,
		Defender: defender,
		Manual:   manual,
		Deadline: record.Deadline(),
	})
	s.log.Info("围城开始",
		zap.Int("city_id", int(plan.CityID)),
		zap.String("city", plan.CityName),
		zap.Int("troops", plan.TroopAllocation),
		zap.Float64("prob", plan.SuccessProb),
		zap.Bool("manual", manual),
	)
	return CycleResult{Success: true, Plan: plan, Record: record}
}

// resolveSiege 到期结算。围城跨越了挂起点，结算前必须重校验城池：
// 已经归属玩家（或注册表状态变化）时干净短路，绝不二次入账。
func (s *Scheduler) resolveSiege(record *domain.BattleRecord, now time.Time) CycleResult {
	defer s.removeSiege(record)

	city, err := s.registry.CityByID(record.CityID())
	if err != nil {
		// 注册表丢了在途围城的城池 id：硬性约束破坏，向上抛。
		record.Resolve(&domain.BattleOutcome{SkipReason: ReasonCityLost.Code})
		return CycleResult{Reason: ReasonCityLost.Code, Record: record, Err: err}
	}
	if city.Owner() == domain.OwnerPlayer || s.empire.OwnsCity(city.ID()) {
		// 目标已在掌控之中：归还出征部队，跳过结算。
		s.empire.GainResources(domain.ResourceBag{Troops: record.Plan().TroopAllocation})
		s.registry.EndSiege(city.ID())
		record.Resolve(&domain.BattleOutcome{SkipReason: ReasonCityOwned.Code})
		s.history.Push(record)
		return CycleResult{Reason: ReasonCityOwned.Code, Record: record}
	}

	plan := record.Plan()
	attacker := AttackerProfile{Attrs: s.empire.Attributes(), Level: s.empire.Level(), Troops: plan.TroopAllocation}
	outcome, err := s.combat.Resolve(attacker, city, plan.TroopAllocation, plan.SuccessProb, plan.Difficulty)
	if err != nil {
		// 结算失败不触碰任何状态：部队归还，围城解除。
		s.empire.GainResources(domain.ResourceBag{Troops: plan.TroopAllocation})
		s.registry.EndSiege(city.ID())
		record.Resolve(&domain.BattleOutcome{SkipReason: s.failReason(err)})
		return CycleResult{Reason: s.failReason(err), Record: record}
	}

	survivors := plan.TroopAllocation - outcome.AttackerCasualties
	s.empire.GainResources(domain.ResourceBag{Troops: survivors})

	if outcome.Victory {
		if _, err := s.registry.ExecuteConquest(city.ID()); err != nil {
			return CycleResult{Reason: s.failReason(err), Record: record, Err: err}
		}
		s.empire.AddCity(city.ID())
		s.empire.GainResources(outcome.Reward.Resources())
		s.empire.GainExperience(outcome.Reward.Experience)
	} else {
		city.LoseGarrison(outcome.DefenderCasualties)
		s.registry.EndSiege(city.ID())
	}

	s.empire.Statistics().ApplyBattleResult(outcome)
	record.Resolve(outcome)
	s.history.Push(record)

	s.emitter.Emit(BattleCompleted{
		CityID:   city.ID(),
		CityName: city.Name(),
		Victory:  outcome.Victory,
		Attacker: record.Attacker(),
		Defender: record.Defender(),
		AttackerCasualties: outcome.AttackerCasualties,
		DefenderCasualties: outcome.DefenderCasualties,
		Reward:   outcome.Reward,
	})
	if outcome.Victory {
		s.emitter.Emit(CityConquered{CityID: city.ID(), CityName: city.Name(), Spoils: outcome.Reward})
	}
	s.log.Info("围城结算",
		zap.Int("city_id", int(city.ID())),
		zap.Bool("victory", outcome.Victory),
		zap.Int("attacker_casualties", outcome.AttackerCasualties),
	)
	return CycleResult{Success: true, Record: record}
}

// ManualAttack 手动出兵：与自动周期共用同一个并发闸门和保底判定。
// 暂停状态下允许手动出兵——暂停只停自动化。
func (s *Scheduler) ManualAttack(cityID domain.CityID, now time.Time) CycleResult {
	city, err := s.registry.CityByID(cityID)
	if err != nil {
		return CycleResult{Reason: s.failReason(err), Err: err}
	}
	if city.Owner() == domain.OwnerPlayer || s.empire.OwnsCity(cityID) {
		return CycleResult{Reason: ReasonCityOwned.Code}
	}
	if city.UnderSiege() {
		return CycleResult{Reason: ReasonCityUnderSiege.Code}
	}
	if len(s.sieges) >= s.empire.Settings().MaxConcurrentSieges {
		return CycleResult{Reason: ReasonSiegeLimit.Code}
	}
	plan, reason, err := s.selector.BuildPlan(s.empire, city)
	if err != nil {
		return CycleResult{Reason: s.failReason(err)}
	}
	if plan == nil {
		return CycleResult{Reason: reason}
	}
	prev := s.state
	res := s.commit(plan, true, now)
	s.state = prev
	return res
}

// Pause 立刻阻止新周期；已在途的围城允许自然结算。
func (s *Scheduler) Pause(reason string) {
	if s.state == StatePaused {
		return
	}
	s.state = StatePaused
	s.emitter.Emit(AutomationPaused{Reason: reason})
	s.log.Info("自动化暂停", zap.String("reason", reason))
}

// Resume 从暂停回到 Idle，下个 tick 立即可选目标。
func (s *Scheduler) Resume(now time.Time) {
	if s.state != StatePaused {
		return
	}
	s.state = StateIdle
	s.nextCheckAt = now
	s.emitter.Emit(AutomationResumed{})
	s.log.Info("自动化恢复")
}

// OfflineCatchUp 离线补偿：一次事件只应用一次。
// elapsed 从 lastActiveAt 推算，应用完成即推进锚点，重复调用天然无效。
func (s *Scheduler) OfflineCatchUp(now time.Time) (*domain.OfflineReport, CycleResult) {
	elapsed := now.Sub(s.empire.LastActiveAt())
	if elapsed <= 0 {
		return nil, CycleResult{Reason: ReasonNoOfflineTime.Code}
	}
	report := s.offline.Simulate(s.empire, s.registry.ConquerableCities(), s.registry.TotalCities(), elapsed)
	if err := s.offline.Apply(s.empire, s.registry, report, now); err != nil {
		return nil, CycleResult{Reason: s.failReason(err), Err: err}
	}
	s.emitter.Emit(OfflineProgressCalculated{OfflineHours: report.ElapsedHours, Report: report})
	s.log.Info("离线补偿完成",
		zap.Float64("hours", report.ElapsedHours),
		zap.Int("battles", report.BattlesFought),
		zap.Int("cities", len(report.CitiesConquered)),
	)
	return report, CycleResult{Success: true}
}

func (s *Scheduler) declareVictory() *CycleResult {
	s.state = StatePaused
	if !s.victorySent {
		s.victorySent = true
		s.emitter.Emit(VictoryAchieved{CitiesOwned: s.empire.OwnedCount()})
		s.emitter.Emit(AutomationPaused{Reason: ReasonAllConquered.Code})
		s.log.Info("全图征服，引擎暂停", zap.Int("cities", s.empire.OwnedCount()))
	}
	return &CycleResult{Victory: true, Reason: ReasonAllConquered.Code}
}

func (s *Scheduler) removeSiege(record *domain.BattleRecord) {
	for i, r := range s.sieges {
		if r == record {
			s.sieges = append(s.sieges[:i], s.sieges[i+1:]...)
			return
		}
	}
}

func (s *Scheduler) scalingReason() string {
	_, reason := s.diff.Factor(s.empire.Statistics(), s.empire.OwnedCount())
	return reason
}

func (s *Scheduler) failReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCombatant):
		return ReasonInvalidCombatant.Code
	case errors.Is(err, domain.ErrCityNotFound):
		return ReasonCityLost.Code
	default:
		return string(CodeInternalServer)
	}
}

func hardErrOnly(err error) error {
	if errors.Is(err, domain.ErrCityNotFound) {
		return err
	}
	return nil
}

func morale(winStreak, lossStreak int) float64 {
	m := 1.0 + 0.05*float64(winStreak) - 0.05*float64(lossStreak)
	if m < 0.5 {
		m = 0.5
	}
	if m > 1.5 {
		m = 1.5
	}
	return m
}
