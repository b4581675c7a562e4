package app

import (
	"testing"

	"IdleConquest/internal/conquest/domain"
)

func TestCandidates_过滤并按id升序(t *testing.T) {
	_, _, selector, _ := testServices(1)
	empire := testEmpire(domain.ResourceBag{Gold: 100000, Troops: 10000}, openSettings())
	empire.AddCity(1)

	owned := testCity(1, 100, 0)
	besieged := testCity(2, 100, 0)
	besieged.BeginSiege()
	locked := domain.NewCity(4, "锁城", domain.TierSmall, 100, 0,
		domain.OwnerNeutral, domain.ResourceBag{}, domain.UnlockCondition{MinLevel: 10})
	open5 := testCity(5, 100, 0)
	open3 := testCity(3, 100, 0)

	got := selector.Candidates(empire, []*domain.City{open5, owned, besieged, locked, open3})
	if len(got) != 2 || got[0].ID() != 3 || got[1].ID() != 5 {
		ids := make([]domain.CityID, 0, len(got))
		for _, c := range got {
			ids = append(ids, c.ID())
		}
		t.Fatalf("期望候选 [3 5], got=%v", ids)
	}
}

func TestSelectTarget_无候选返回原因而非错误(t *testing.T) {
	_, _, selector, _ := testServices(1)
	empire := testEmpire(domain.ResourceBag{Gold: 100000, Troops: 10000}, openSettings())

	plan, reason, err := selector.SelectTarget(empire, nil)
	if err != nil {
		t.Fatalf("期望无候选不是错误, got=%v", err)
	}
	if plan != nil || reason != ReasonNoEligibleTarget.Code {
		t.Fatalf("期望返回 NO_ELIGIBLE_TARGET, plan=%v reason=%q", plan, reason)
	}
}

func TestSelectTarget_同状态重复调用结果一致(t *testing.T) {
	_, _, selector, _ := testServices(1)
	empire := testEmpire(domain.ResourceBag{Gold: 100000, Troops: 10000}, openSettings())
	cities := []*domain.City{testCity(1, 100, 10), testCity(2, 300, 30), testCity(3, 50, 5)}

	first, _, err := selector.SelectTarget(empire, cities)
	if err != nil || first == nil {
		t.Fatalf("期望选出目标, plan=%v err=%v", first, err)
	}
	second, _, err := selector.SelectTarget(empire, cities)
	if err != nil || second == nil {
		t.Fatalf("期望第二次仍选出目标, err=%v", err)
	}
	if first.CityID != second.CityID || first.Score != second.Score || first.TroopAllocation != second.TroopAllocation {
		t.Fatalf("状态未变时期望两次选择一致, first=%+v second=%+v", first, second)
	}
}

func TestSelectTarget_平分取较小id(t *testing.T) {
	_, _, selector, _ := testServices(1)
	empire := testEmpire(domain.ResourceBag{Gold: 100000, Troops: 10000}, openSettings())
	// 两座完全相同的城，得分必然相等。
	twinA := testCity(7, 100, 10)
	twinB := testCity(9, 100, 10)

	plan, _, err := selector.SelectTarget(empire, []*domain.City{twinB, twinA})
	if err != nil || plan == nil {
		t.Fatalf("期望选出目标, err=%v", err)
	}
	if plan.CityID != 7 {
		t.Fatalf("期望平分时取较小 id 7, got=%d", plan.CityID)
	}
}

func TestSelectTarget_攻击倾向改变取舍(t *testing.T) {
	// 易胜城：成功率 0.9、效率 ≈0.5；高产城：成功率 0.125、效率 3.0。
	easy := domain.NewCity(1, "易胜城", domain.TierSmall, 100, 0,
		domain.OwnerNeutral, domain.ResourceBag{Gold: 75, Troops: 16, Food: 12}, domain.UnlockCondition{Default: true})
	rich := domain.NewCity(2, "高产城", domain.TierSmall, 4000, 0,
		domain.OwnerNeutral, domain.ResourceBag{Gold: 10000, Troops: 2000, Food: 3750}, domain.UnlockCondition{Default: true})
	cities := []*domain.City{easy, rich}

	pick := func(a domain.Aggression) domain.CityID {
		_, _, selector, _ := testServices(1)
		st := openSettings()
		st.Aggression = a
		empire := testEmpire(domain.ResourceBag{Gold: 100000, Troops: 2000}, st)
		plan, _, err := selector.SelectTarget(empire, cities)
		if err != nil || plan == nil {
			t.Fatalf("期望选出目标, err=%v", err)
		}
		return plan.CityID
	}

	if got := pick(domain.AggressionConservative); got != 1 {
		t.Fatalf("期望保守倾向选易胜城, got=%d", got)
	}
	if got := pick(domain.AggressionAggressive); got != 2 {
		t.Fatalf("期望激进倾向选高产城, got=%d", got)
	}
}

func TestBuildPlan_兵力不足以围城返回CannotAfford(t *testing.T) {
	_, _, selector, _ := testServices(1)
	empire := testEmpire(domain.ResourceBag{Gold: 100000, Troops: 50}, openSettings())
	city := testCity(1, 200, 0) // 可用 50 < 守军一半 100

	plan, reason, err := selector.BuildPlan(empire, city)
	if err != nil {
		t.Fatalf("期望不可行不是错误, got=%v", err)
	}
	if plan != nil || reason != ReasonCannotAfford.Code {
		t.Fatalf("期望 CANNOT_AFFORD, plan=%v reason=%q", plan, reason)
	}
}

func TestBuildPlan_金币触碰预留返回CannotAfford(t *testing.T) {
	_, _, selector, _ := testServices(1)
	empire := testEmpire(domain.ResourceBag{Gold: 100, Troops: 10000}, openSettings())
	city := testCity(1, 200, 0) // 金币开销 = 200 > 持有 100

	plan, reason, err := selector.BuildPlan(empire, city)
	if err != nil {
		t.Fatalf("期望不可行不是错误, got=%v", err)
	}
	if plan != nil || reason != ReasonCannotAfford.Code {
		t.Fatalf("期望 CANNOT_AFFORD, plan=%v reason=%q", plan, reason)
	}
}

func TestBuildPlan_产出完整计划(t *testing.T) {
	_, _, selector, _ := testServices(1)
	empire := testEmpire(domain.ResourceBag{Gold: 100000, Troops: 10000}, openSettings())
	city := domain.NewCity(1, "中城", domain.TierMedium, 200, 20,
		domain.OwnerEnemy, domain.ResourceBag{Gold: 100, Troops: 20, Food: 50}, domain.UnlockCondition{Default: true})

	plan, reason, err := selector.BuildPlan(empire, city)
	if err != nil || plan == nil {
		t.Fatalf("期望产出计划, reason=%q err=%v", reason, err)
	}
	if plan.TroopAllocation != 300 {
		t.Fatalf("期望投入 = 守军×1.5 = 300, got=%d", plan.TroopAllocation)
	}
	if plan.Cost.Gold != 220 {
		t.Fatalf("期望金币开销 = (200+20)×1.0 = 220, got=%d", plan.Cost.Gold)
	}
	if plan.SuccessProb < MinSuccessProbability || plan.SuccessProb > MaxSuccessProbability {
		t.Fatalf("期望成功率在区间内, got=%v", plan.SuccessProb)
	}
	if plan.SiegeDuration != siegeBaseDuration+siegePerTierDuration {
		t.Fatalf("期望中城围城时长 = 基准+1 级, got=%v", plan.SiegeDuration)
	}
	if plan.Score <= 0 {
		t.Fatalf("期望评分为正, got=%v", plan.Score)
	}
}
