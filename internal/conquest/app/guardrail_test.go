package app

import (
	"testing"

	"IdleConquest/internal/conquest/domain"
)

func TestGoldReserve_比例与保底取高者(t *testing.T) {
	g := NewEconomyGuardrail()
	st := domain.AutomationSettings{ReservePercent: 0.2, GoldFloor: 100}

	if got := g.GoldReserve(domain.ResourceBag{Gold: 1000}, st); got != 200 {
		t.Fatalf("期望比例预留 200, got=%d", got)
	}
	if got := g.GoldReserve(domain.ResourceBag{Gold: 100}, st); got != 100 {
		t.Fatalf("期望保底兜住 100, got=%d", got)
	}
}

func TestAvailableTroops_预留后不为负(t *testing.T) {
	g := NewEconomyGuardrail()
	st := domain.AutomationSettings{ReservePercent: 0.2, TroopFloor: 500}

	if got := g.AvailableTroops(domain.ResourceBag{Troops: 300}, st); got != 0 {
		t.Fatalf("期望兵力低于保底时可用为 0, got=%d", got)
	}
	if got := g.AvailableTroops(domain.ResourceBag{Troops: 1000}, st); got != 500 {
		t.Fatalf("期望 1000-max(200,500)=500, got=%d", got)
	}
}

func TestAffordable_超出预留后余额被拒(t *testing.T) {
	g := NewEconomyGuardrail()
	st := domain.AutomationSettings{ReservePercent: 0.2, GoldFloor: 100, TroopFloor: 50}
	res := domain.ResourceBag{Gold: 1000, Troops: 1000}

	// 预留 200 金后只剩 800 可花
	if g.Affordable(res, domain.ConquestCost{Gold: 900, Troops: 100}, st) {
		t.Fatalf("期望金币开销触碰预留被拒")
	}
	if g.Affordable(res, domain.ConquestCost{Gold: 100, Troops: 900}, st) {
		t.Fatalf("期望兵力开销触碰预留被拒")
	}
	if !g.Affordable(res, domain.ConquestCost{Gold: 800, Troops: 800}, st) {
		t.Fatalf("期望预留之外的开销放行")
	}
}
