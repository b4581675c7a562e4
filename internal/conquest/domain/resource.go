package domain

// ResourceBag 资源袋：金币/兵力/粮食。
// 所有运算保持非负：减法下限钳制为 0，资源永不为负。
type ResourceBag struct {
	Gold   int
	Troops int
	Food   int
}

func (b ResourceBag) Add(o ResourceBag) ResourceBag {
	return ResourceBag{
		Gold:   b.Gold + o.Gold,
		Troops: b.Troops + o.Troops,
		Food:   b.Food + o.Food,
	}
}

// Sub 减法，任一分量不足时钳制为 0，不产生负数。
func (b ResourceBag) Sub(o ResourceBag) ResourceBag {
	return ResourceBag{
		Gold:   maxInt(b.Gold-o.Gold, 0),
		Troops: maxInt(b.Troops-o.Troops, 0),
		Food:   maxInt(b.Food-o.Food, 0),
	}
}

// Covers 是否足以支付 o（逐分量比较）。
func (b ResourceBag) Covers(o ResourceBag) bool {
	return b.Gold >= o.Gold && b.Troops >= o.Troops && b.Food >= o.Food
}

func (b ResourceBag) IsZero() bool {
	return b.Gold == 0 && b.Troops == 0 && b.Food == 0
}

// RewardBag 战利品袋：胜利结算与离线推演共用。
// Equipment 是通用装备令牌的数量（粗粒度，不建模具体物品）。
type RewardBag struct {
	Gold       int
	Troops     int
	Food       int
	Experience int
	Equipment  int
}

func (r RewardBag) Add(o RewardBag) RewardBag {
	return RewardBag{
		Gold:       r.Gold + o.Gold,
		Troops:     r.Troops + o.Troops,
		Food:       r.Food + o.Food,
		Experience: r.Experience + o.Experience,
		Equipment:  r.Equipment + o.Equipment,
	}
}

// Resources 只取资源三元组（经验/装备不入资源账）。
func (r RewardBag) Resources() ResourceBag {
	return ResourceBag{Gold: r.Gold, Troops: r.Troops, Food: r.Food}
}

// ConquestCost 单次攻城的预估开销。Troops 是投入兵力（承担伤亡风险的部分）。
type ConquestCost struct {
	Gold   int
	Troops int
}

// Weight 作为目标评分 efficiency 的分母标量。
func (c ConquestCost) Weight() int {
	return c.Gold + c.Troops
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
