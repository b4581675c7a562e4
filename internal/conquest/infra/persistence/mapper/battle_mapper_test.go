package mapper

import (
	"testing"
	"time"

	"IdleConquest/internal/conquest/domain"
)

func testRecord() *domain.BattleRecord {
	started := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	plan := domain.BattlePlan{
		CityID:          5,
		CityName:        "临江城",
		Tier:            domain.TierMedium,
		TroopAllocation: 120,
		SiegeDuration:   45 * time.Second,
		SuccessProb:     0.62,
		Difficulty:      1.8,
	}
	r := domain.NewBattleRecord(
		1001,
		plan,
		domain.Combatant{Name: "帝国远征军", Troops: 120, Power: 420.5, Morale: 1.1},
		domain.Combatant{Name: "临江城", Troops: 400, Power: 690, Morale: 1.0},
		true,
		started,
	)
	r.Resolve(&domain.BattleOutcome{
		Victory:            true,
		AttackerCasualties: 30,
		DefenderCasualties: 400,
		Conquered:          true,
		Reward:             domain.RewardBag{Gold: 300, Troops: 40, Food: 150, Experience: 90, Equipment: 1},
	})
	return r
}

func TestBattleRecord_文档往返保持结算内容(t *testing.T) {
	r := testRecord()

	doc := BattleRecordToDoc(r)
	if doc.BattleID != 1001 || doc.CityID != 5 || !doc.Manual {
		t.Fatalf("doc base fields mismatch: %+v", doc)
	}
	if doc.Tier != "medium" || doc.SiegeDurationMS != 45000 {
		t.Fatalf("doc plan fields mismatch: tier=%q durMS=%d", doc.Tier, doc.SiegeDurationMS)
	}
	if !doc.Outcome.Victory || doc.Outcome.RewardGold != 300 {
		t.Fatalf("doc outcome mismatch: %+v", doc.Outcome)
	}

	back := BattleDocToRecord(doc)
	if back.ID() != r.ID() || back.CityName() != r.CityName() {
		t.Fatalf("record identity mismatch after round trip")
	}
	if back.Status() != domain.BattleResolved {
		t.Fatalf("rebuilt record should be resolved")
	}
	if back.Attacker() != r.Attacker() || back.Defender() != r.Defender() {
		t.Fatalf("combatants mismatch after round trip")
	}
	if !back.StartedAt().Equal(r.StartedAt()) || !back.Deadline().Equal(r.Deadline()) {
		t.Fatalf("timeline mismatch: started %v/%v deadline %v/%v",
			back.StartedAt(), r.StartedAt(), back.Deadline(), r.Deadline())
	}
	if *back.Outcome() != *r.Outcome() {
		t.Fatalf("outcome mismatch: %+v vs %+v", back.Outcome(), r.Outcome())
	}
}

func TestBattleRecordToDoc_未结算记录不带结算块(t *testing.T) {
	started := time.Now()
	r := domain.NewBattleRecord(
		1002,
		domain.BattlePlan{CityID: 1, CityName: "苍梧村", SiegeDuration: 10 * time.Second},
		domain.Combatant{Name: "帝国远征军", Troops: 50, Power: 100, Morale: 1.0},
		domain.Combatant{Name: "苍梧村", Troops: 80, Power: 90, Morale: 1.0},
		false,
		started,
	)

	doc := BattleRecordToDoc(r)
	if doc.Outcome.Victory || doc.Outcome.RewardGold != 0 {
		t.Fatalf("in-progress record should have zero outcome: %+v", doc.Outcome)
	}
}
