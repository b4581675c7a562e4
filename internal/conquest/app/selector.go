package app

import (
	"math"
	"sort"
	"time"

	"IdleConquest/internal/conquest/domain"
)

// 目标评分中产出价值的权重：兵源最贵。
const (
	yieldWeightGold   = 1.0
	yieldWeightTroops = 2.5
	yieldWeightFood   = 0.8
)

// 攻击倾向的指数权重：保守派放大成功率的区分度，
// 激进派放大收益效率的区分度（同一标量乘数不会改变排序，所以用指数）。
const (
	aggressionEmphasis   = 1.5
	aggressionDeEmphasis = 0.7
)

// 投入兵力 = min(守军×1.5, 预留后可用兵力)；低于守军一半视为无力攻城。
const (
	allocationGarrisonRatio = 1.5
	allocationMinRatio      = 0.5
)

// 围城时长：压缩现实时间模拟游戏内天数，随城池等级增长。
const (
	siegeBaseDuration    = 20 * time.Second
	siegePerTierDuration = 10 * time.Second
)

// TargetSelector 目标筛选：给定帝国状态与注册表，至多返回一个最优目标。
type TargetSelector struct {
	combat *CombatService
	diff   *DifficultyService
	guard  *EconomyGuardrail
}

func NewTargetSelector(combat *CombatService, diff *DifficultyService, guard *EconomyGuardrail) *TargetSelector {
	return &TargetSelector{combat: combat, diff: diff, guard: guard}
}

// Candidates 可攻击候选：非玩家所有、已解锁、未被围城。
// 按城池 id 升序返回——同一状态下重复查询必须得到同序结果。
func (s *TargetSelector) Candidates(empire *domain.Empire, cities []*domain.City) []*domain.City {
	out := make([]*domain.City, 0, len(cities))
	for _, c := range cities {
		if c == nil || c.Owner() == domain.OwnerPlayer || empire.OwnsCity(c.ID()) {
			continue
		}
		if c.UnderSiege() {
			continue
		}
		if !c.Unlock().Met(empire.Level(), empire.OwnedCount(), empire.OwnsCity) {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// SelectTarget 评分选优。没有合格候选不算错误，reason 说明原因，
// 由调用方决定是继续等待还是宣告全图胜利。
func (s *TargetSelector) SelectTarget(empire *domain.Empire, cities []*domain.City) (*domain.BattlePlan, string, error) {
	candidates := s.Candidates(empire, cities)
	if len(candidates) == 0 {
		return nil, ReasonNoEligibleTarget.Code, nil
	}

	var best *domain.BattlePlan
	skipReason := ReasonNoEligibleTarget.Code
	for _, city := range candidates {
		plan, reason, err := s.BuildPlan(empire, city)
		if err != nil {
			return nil, "", err
		}
		if plan == nil {
			if reason != "" {
				skipReason = reason
			}
			continue
		}
		// 平分时保留先遇到的（候选已按 id 升序，即稳定取较小 id）。
		if best == nil || plan.Score > best.Score {
			best = plan
		}
	}
	if best == nil {
		return nil, skipReason, nil
	}
	return best, "", nil
}

// BuildPlan 为指定城池构造作战计划；不可行时返回跳过原因。
// 自动选目标与手动出兵共用，保证口径一致。
func (s *TargetSelector) BuildPlan(empire *domain.Empire, city *domain.City) (*domain.BattlePlan, string, error) {
	settings := empire.Settings()
	res := empire.Resources()
	factor, _ := s.diff.Factor(empire.Statistics(), empire.OwnedCount())

	allocation := int(float64(city.Garrison()) * allocationGarrisonRatio)
	if available := s.guard.AvailableTroops(res, settings); allocation > available {
		allocation = available
	}
	if float64(allocation) < float64(city.Garrison())*allocationMinRatio || allocation <= 0 {
		return nil, ReasonCannotAfford.Code, nil
	}

	cost := domain.ConquestCost{
		Gold:   int(float64(city.Garrison()+city.BaseDefense()) * factor),
		Troops: allocation,
	}
	if !s.guard.Affordable(res, cost, settings) {
		return nil, ReasonCannotAfford.Code, nil
	}

	attacker := AttackerProfile{Attrs: empire.Attributes(), Level: empire.Level(), Troops: allocation}
	prob, err := s.combat.SuccessProbability(attacker, city, factor, empire.Statistics())
	if err != nil {
		return nil, "", err
	}

	yield := city.Yield()
	resourceValue := yieldWeightGold*float64(yield.Gold) +
		yieldWeightTroops*float64(yield.Troops) +
		yieldWeightFood*float64(yield.Food)
	efficiency := resourceValue / float64(maxInt(cost.Weight(), 1))

	score := s.score(prob, efficiency, settings.Aggression) * city.Tier().ScoreMultiplier()

	return &domain.BattlePlan{
		CityID:          city.ID(),
		CityName:        city.Name(),
		Tier:            city.Tier(),
		TroopAllocation: allocation,
		Cost:            cost,
		SiegeDuration:   siegeBaseDuration + time.Duration(city.Tier())*siegePerTierDuration,
		SuccessProb:     prob,
		ExpectedReward:  ExpectedReward(city.Tier(), factor),
		Difficulty:      factor,
		Score:           score,
	}, "", nil
}

func (s *TargetSelector) score(prob, efficiency float64, aggression domain.Aggression) float64 {
	switch aggression {
	case domain.AggressionConservative:
		return math.Pow(prob, aggressionEmphasis) * math.Pow(efficiency, aggressionDeEmphasis)
	case domain.AggressionAggressive:
		return math.Pow(prob, aggressionDeEmphasis) * math.Pow(efficiency, aggressionEmphasis)
	default:
		return prob * efficiency
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
