package model

import "time"

// model
// BattleDoc 已结算战斗的归档文档，按 battle_id 幂等写入。
type BattleDoc struct {
	BattleID int64  `bson:"_id" json:"battle_id"`
	CityID   int    `bson:"city_id" json:"city_id"`
	CityName string `bson:"city_name" json:"city_name"`
	Manual   bool   `bson:"manual" json:"manual"`

	Attacker CombatantDoc `bson:"attacker" json:"attacker"`
	Defender CombatantDoc `bson:"defender" json:"defender"`

	TroopAllocation int     `bson:"troop_allocation" json:"troop_allocation"`
	SuccessProb     float64 `bson:"success_prob" json:"success_prob"`
	Difficulty      float64 `bson:"difficulty" json:"difficulty"`
	Tier            string  `bson:"tier" json:"tier"`
	SiegeDurationMS int64   `bson:"siege_duration_ms" json:"siege_duration_ms"`

	StartedAt time.Time  `bson:"started_at" json:"started_at"`
	Outcome   OutcomeDoc `bson:"outcome" json:"outcome"`
}

type CombatantDoc struct {
	Name   string  `bson:"name" json:"name"`
	Troops int     `bson:"troops" json:"troops"`
	Power  float64 `bson:"power" json:"power"`
	Morale float64 `bson:"morale" json:"morale"`
}

type OutcomeDoc struct {
	Victory            bool   `bson:"victory" json:"victory"`
	AttackerCasualties int    `bson:"attacker_casualties" json:"attacker_casualties"`
	DefenderCasualties int    `bson:"defender_casualties" json:"defender_casualties"`
	Conquered          bool   `bson:"conquered" json:"conquered"`
	SkipReason         string `bson:"skip_reason,omitempty" json:"skip_reason,omitempty"`

	RewardGold      int `bson:"reward_gold" json:"reward_gold"`
	RewardTroops    int `bson:"reward_troops" json:"reward_troops"`
	RewardFood      int `bson:"reward_food" json:"reward_food"`
	RewardExp       int `bson:"reward_exp" json:"reward_exp"`
	RewardEquipment int `bson:"reward_equipment" json:"reward_equipment"`
}
