package mapper

import (
	"time"

	"IdleConquest/internal/conquest/domain"
	"IdleConquest/internal/conquest/infra/persistence/model"
)

func BattleRecordToDoc(r *domain.BattleRecord) *model.BattleDoc {
	plan := r.Plan()
	doc := &model.BattleDoc{
		BattleID:        r.ID(),
		CityID:          int(r.CityID()),
		CityName:        r.CityName(),
		Manual:          r.Manual(),
		Attacker:        combatantToDoc(r.Attacker()),
		Defender:        combatantToDoc(r.Defender()),
		TroopAllocation: plan.TroopAllocation,
		SuccessProb:     plan.SuccessProb,
		Difficulty:      plan.Difficulty,
		Tier:            plan.Tier.String(),
		SiegeDurationMS: plan.SiegeDuration.Milliseconds(),
		StartedAt:       r.StartedAt(),
	}
	if o := r.Outcome(); o != nil {
		doc.Outcome = model.OutcomeDoc{
			Victory:            o.Victory,
			AttackerCasualties: o.AttackerCasualties,
			DefenderCasualties: o.DefenderCasualties,
			Conquered:          o.Conquered,
			SkipReason:         o.SkipReason,
			RewardGold:         o.Reward.Gold,
			RewardTroops:       o.Reward.Troops,
			RewardFood:         o.Reward.Food,
			RewardExp:          o.Reward.Experience,
			RewardEquipment:    o.Reward.Equipment,
		}
	}
	return doc
}

// BattleDocToRecord 从归档文档重建已结算记录（查询侧只读）。
func BattleDocToRecord(doc *model.BattleDoc) *domain.BattleRecord {
	plan := domain.BattlePlan{
		CityID:          domain.CityID(doc.CityID),
		CityName:        doc.CityName,
		Tier:            domain.ParseTier(doc.Tier),
		TroopAllocation: doc.TroopAllocation,
		SiegeDuration:   time.Duration(doc.SiegeDurationMS) * time.Millisecond,
		SuccessProb:     doc.SuccessProb,
		Difficulty:      doc.Difficulty,
	}
	r := domain.NewBattleRecord(
		doc.BattleID,
		plan,
		docToCombatant(doc.Attacker),
		docToCombatant(doc.Defender),
		doc.Manual,
		doc.StartedAt,
	)
	r.Resolve(&domain.BattleOutcome{
		Victory:            doc.Outcome.Victory,
		AttackerCasualties: doc.Outcome.AttackerCasualties,
		DefenderCasualties: doc.Outcome.DefenderCasualties,
		Conquered:          doc.Outcome.Conquered,
		SkipReason:         doc.Outcome.SkipReason,
		Reward: domain.RewardBag{
			Gold:       doc.Outcome.RewardGold,
			Troops:     doc.Outcome.RewardTroops,
			Food:       doc.Outcome.RewardFood,
			Experience: doc.Outcome.RewardExp,
			Equipment:  doc.Outcome.RewardEquipment,
		},
	})
	return r
}

func combatantToDoc(c domain.Combatant) model.CombatantDoc {
	return model.CombatantDoc{Name: c.Name, Troops: c.Troops, Power: c.Power, Morale: c.Morale}
}

func docToCombatant(d model.CombatantDoc) domain.Combatant {
	return domain.Combatant{Name: d.Name, Troops: d.Troops, Power: d.Power, Morale: d.Morale}
}
