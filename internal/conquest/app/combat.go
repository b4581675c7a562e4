package app

import (
	"math/rand"

	"IdleConquest/internal/conquest/domain"
)

// 六维属性的战力权重。
const (
	weightMight      = 3.0
	weightIntellect  = 2.5
	weightLeadership = 2.0
	weightStatecraft = 1.5
	weightCharisma   = 1.5
	weightDestiny    = 2.0
	weightTroops     = 0.5
)

// 伤亡比例区间（均匀抽取）。
const (
	victoryCasualtyMin = 0.10
	victoryCasualtyMax = 0.30
	defeatCasualtyMin  = 0.40
	defeatCasualtyMax  = 0.70
	defenderHoldLossMin = 0.10
	defenderHoldLossMax = 0.20
)

// 胜利战利品基数与装备令牌掉率。
const (
	rewardBaseGold       = 120
	rewardBaseExperience = 80
	equipmentDropChance  = 0.3
)

// AttackerProfile 进攻方描述：从帝国状态提取后交给结算。
type AttackerProfile struct {
	Attrs  domain.Attributes
	Level  int
	Troops int
}

// Validate 参战数据校验：属性齐备、等级与兵力有效。
// 不合法的数据在任何结算之前拒绝，不产生部分变更。
func (a AttackerProfile) Validate() error {
	if !a.Attrs.Valid() || a.Level < 1 || a.Troops <= 0 {
		return domain.ErrInvalidCombatant
	}
	return nil
}

// CombatService 战斗结算：战力/成功率/伤亡/战利品。
// 除随机抽取外无副作用；随机源注入，测试时用固定种子。
type CombatService struct {
	diff *DifficultyService
	rng  *rand.Rand
}

func NewCombatService(diff *DifficultyService, rng *rand.Rand) *CombatService {
	return &CombatService{diff: diff, rng: rng}
}

// PlayerPower 玩家战力 = 六维加权 + 0.5×投入兵力。
func PlayerPower(attrs domain.Attributes, troops int) float64 {
	return weightMight*float64(attrs.Might) +
		weightIntellect*float64(attrs.Intellect) +
		weightLeadership*float64(attrs.Leadership) +
		weightStatecraft*float64(attrs.Statecraft) +
		weightCharisma*float64(attrs.Charisma) +
		weightDestiny*float64(attrs.Destiny) +
		weightTroops*float64(troops)
}

// DefenderPower 守方战力 = (守军强度 + 基础难度) × 难度因子。
func DefenderPower(city *domain.City, difficultyFactor float64) float64 {
	return float64(city.Garrison()+city.BaseDefense()) * difficultyFactor
}

// RawSuccessProbability 平衡修正前的原始成功率：
// clamp(0.3 + (attack/defense - 1) × 0.4, 0.1, 0.9)。
func RawSuccessProbability(attackPower, defensePower float64) float64 {
	if defensePower <= 0 {
		return MaxSuccessProbability
	}
	p := 0.3 + (attackPower/defensePower-1.0)*0.4
	return clampFloat(p, MinSuccessProbability, MaxSuccessProbability)
}

// SuccessProbability 原始成功率再过一道平衡控制器。
func (c *CombatService) SuccessProbability(attacker AttackerProfile, city *domain.City, difficultyFactor float64, stats *domain.Statistics) (float64, error) {
	if err := attacker.Validate(); err != nil {
		return 0, err
	}
	raw := RawSuccessProbability(PlayerPower(attacker.Attrs, attacker.Troops), DefenderPower(city, difficultyFactor))
	return c.diff.AdjustProbability(raw, stats), nil
}

// Resolve 按成功率抽取胜负并结算伤亡与战利品。
// committed 是实际投入兵力；守军伤亡直接写回城池由调用方负责。
func (c *CombatService) Resolve(attacker AttackerProfile, city *domain.City, committed int, successProb, difficultyFactor float64) (*domain.BattleOutcome, error) {
	if err := attacker.Validate(); err != nil {
		return nil, err
	}
	if committed <= 0 || committed > attacker.Troops {
		return nil, domain.ErrInvalidCombatant
	}

	victory := c.rng.Float64() < successProb
	out := &domain.BattleOutcome{Victory: victory}
	if victory {
		out.AttackerCasualties = c.portion(committed, victoryCasualtyMin, victoryCasualtyMax)
		out.DefenderCasualties = city.Garrison() // 城破守军尽没
		out.Reward = c.rollReward(city.Tier(), difficultyFactor)
		out.Conquered = true
	} else {
		out.AttackerCasualties = c.portion(committed, defeatCasualtyMin, defeatCasualtyMax)
		out.DefenderCasualties = c.portion(city.Garrison(), defenderHoldLossMin, defenderHoldLossMax)
	}
	return out, nil
}

// ExpectedReward 期望战利品（计划展示用，不掷装备）。
func ExpectedReward(tier domain.Tier, difficultyFactor float64) domain.RewardBag {
	scale := tier.RewardMultiplier() * RewardScaling(difficultyFactor)
	return domain.RewardBag{
		Gold:       int(rewardBaseGold * scale),
		Experience: int(rewardBaseExperience * scale),
	}
}

// AverageVictoryCasualtyRate / AverageDefeatCasualtyRate
// 离线推演复用与在线结算一致的伤亡均值。
func AverageVictoryCasualtyRate() float64 {
	return (victoryCasualtyMin + victoryCasualtyMax) / 2
}

func AverageDefeatCasualtyRate() float64 {
	return (defeatCasualtyMin + defeatCasualtyMax) / 2
}

func (c *CombatService) rollReward(tier domain.Tier, difficultyFactor float64) domain.RewardBag {
	bag := ExpectedReward(tier, difficultyFactor)
	if c.rng.Float64() < equipmentDropChance {
		bag.Equipment = 1
	}
	return bag
}

// portion 在 [lo,hi] 比例区间均匀抽取 total 的一部分。
func (c *CombatService) portion(total int, lo, hi float64) int {
	if total <= 0 {
		return 0
	}
	rate := lo + c.rng.Float64()*(hi-lo)
	n := int(float64(total) * rate)
	if n > total {
		n = total
	}
	return n
}
