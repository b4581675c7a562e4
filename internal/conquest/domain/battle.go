package domain

import "time"

// Combatant 参战方快照（入档用，结算后不再变化）。
type Combatant struct {
	Name   string
	Troops int
	Power  float64
	Morale float64
}

// BattlePlan 单次决策周期产出的作战计划。
// 交给结算后即视为不可变，用完即弃。
type BattlePlan struct {
	CityID          CityID
	CityName        string
	Tier            Tier
	TroopAllocation int
	Cost            ConquestCost
	SiegeDuration   time.Duration
	SuccessProb     float64
	ExpectedReward  RewardBag
	Difficulty      float64
	Score           float64
}

type BattleStatus int8

const (
	BattleInProgress BattleStatus = iota
	BattleResolved
)

// BattleOutcome 单场战斗结算结果。
type BattleOutcome struct {
	Victory            bool
	AttackerCasualties int
	DefenderCasualties int
	Reward             RewardBag
	Conquered          bool
	SkipReason         string // 结算时目标已失效（已归属/已丢失）则带跳过原因
}

// entity
// BattleRecord 围城开始时创建，归引擎独占，结算后入历史环形缓冲。
// Deadline 存到记录上、由 tick 轮询结算，取代协程级挂起，
// 结算前必须重校验城池状态，避免跨挂起点的重复入账。
type BattleRecord struct {
	id        int64
	cityID    CityID
	cityName  string
	attacker  Combatant
	defender  Combatant
	plan      BattlePlan
	manual    bool
	startedAt time.Time
	deadline  time.Time
	status    BattleStatus
	outcome   *BattleOutcome
}

func NewBattleRecord(id int64, plan BattlePlan, attacker, defender Combatant, manual bool, startedAt time.Time) *BattleRecord {
	return &BattleRecord{
		id:        id,
		cityID:    plan.CityID,
		cityName:  plan.CityName,
		attacker:  attacker,
		defender:  defender,
		plan:      plan,
		manual:    manual,
		startedAt: startedAt,
		deadline:  startedAt.Add(plan.SiegeDuration),
		status:    BattleInProgress,
	}
}

func (r *BattleRecord) ID() int64            { return r.id }
func (r *BattleRecord) CityID() CityID       { return r.cityID }
func (r *BattleRecord) CityName() string     { return r.cityName }
func (r *BattleRecord) Attacker() Combatant  { return r.attacker }
func (r *BattleRecord) Defender() Combatant  { return r.defender }
func (r *BattleRecord) Plan() BattlePlan     { return r.plan }
func (r *BattleRecord) Manual() bool         { return r.manual }
func (r *BattleRecord) StartedAt() time.Time { return r.startedAt }
func (r *BattleRecord) Deadline() time.Time  { return r.deadline }
func (r *BattleRecord) Status() BattleStatus { return r.status }
func (r *BattleRecord) Outcome() *BattleOutcome {
	return r.outcome
}

// Due 围城是否到期可结算。
func (r *BattleRecord) Due(now time.Time) bool {
	return r.status == BattleInProgress && !now.Before(r.deadline)
}

// Resolve 写入结算结果；重复结算直接忽略。
func (r *BattleRecord) Resolve(o *BattleOutcome) {
	if r.status == BattleResolved {
		return
	}
	r.status = BattleResolved
	r.outcome = o
}
