package app

import "IdleConquest/internal/conquest/domain"

// EconomyGuardrail 经济保底：先按比例预留资源（带硬性下限），
// 再判断剩余是否付得起开销。只读，不改任何状态。
// 目标筛选与手动出兵共用同一套判定。
type EconomyGuardrail struct{}

func NewEconomyGuardrail() *EconomyGuardrail {
	return &EconomyGuardrail{}
}

// GoldReserve 金币预留量 = max(当前金币×预留比例, 金币保底)。
func (g *EconomyGuardrail) GoldReserve(res domain.ResourceBag, st domain.AutomationSettings) int {
	reserve := int(float64(res.Gold) * st.ReservePercent)
	if reserve < st.GoldFloor {
		reserve = st.GoldFloor
	}
	return reserve
}

// TroopReserve 兵力预留量 = max(当前兵力×预留比例, 兵力保底)。
func (g *EconomyGuardrail) TroopReserve(res domain.ResourceBag, st domain.AutomationSettings) int {
	reserve := int(float64(res.Troops) * st.ReservePercent)
	if reserve < st.TroopFloor {
		reserve = st.TroopFloor
	}
	return reserve
}

// AvailableTroops 扣除预留后可投入的兵力，下限 0。
func (g *EconomyGuardrail) AvailableTroops(res domain.ResourceBag, st domain.AutomationSettings) int {
	available := res.Troops - g.TroopReserve(res, st)
	if available < 0 {
		return 0
	}
	return available
}

// Affordable 预留之后是否仍付得起 cost。
func (g *EconomyGuardrail) Affordable(res domain.ResourceBag, cost domain.ConquestCost, st domain.AutomationSettings) bool {
	if cost.Gold > res.Gold-g.GoldReserve(res, st) {
		return false
	}
	if cost.Troops > g.AvailableTroops(res, st) {
		return false
	}
	return true
}
