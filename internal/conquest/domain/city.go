package domain

type CityID int

// Tier 城池等级：影响评分倍率与战利品倍率。
type Tier int8

const (
	TierSmall Tier = iota
	TierMedium
	TierMajor
	TierCapital
)

// ScoreMultiplier 目标评分倍率：高等级城池更值得打。
func (t Tier) ScoreMultiplier() float64 {
	switch t {
	case TierMedium:
		return 1.3
	case TierMajor:
		return 1.6
	case TierCapital:
		return 2.0
	default:
		return 1.0
	}
}

// RewardMultiplier 战利品倍率。
func (t Tier) RewardMultiplier() float64 {
	switch t {
	case TierMedium:
		return 1.5
	case TierMajor:
		return 2.0
	case TierCapital:
		return 3.0
	default:
		return 1.0
	}
}

func (t Tier) String() string {
	switch t {
	case TierSmall:
		return "small"
	case TierMedium:
		return "medium"
	case TierMajor:
		return "major"
	case TierCapital:
		return "capital"
	default:
		return "unknown"
	}
}

// ParseTier 解析配置里的等级名，未知值按 small 兜底。
func ParseTier(s string) Tier {
	switch s {
	case "medium":
		return TierMedium
	case "major":
		return TierMajor
	case "capital":
		return TierCapital
	default:
		return TierSmall
	}
}

type Owner int8

const (
	OwnerNeutral Owner = iota
	OwnerEnemy
	OwnerPlayer
)

// UnlockCondition 解锁条件：默认解锁，或满足等级/城数/前置城池任一条件。
type UnlockCondition struct {
	Default        bool
	MinLevel       int
	MinCitiesOwned int
	RequiredCities []CityID
}

// Met 任一条件满足即解锁。
func (u UnlockCondition) Met(level int, ownedCount int, owns func(CityID) bool) bool {
	if u.Default {
		return true
	}
	if u.MinLevel > 0 && level >= u.MinLevel {
		return true
	}
	if u.MinCitiesOwned > 0 && ownedCount >= u.MinCitiesOwned {
		return true
	}
	if len(u.RequiredCities) > 0 {
		for _, id := range u.RequiredCities {
			if !owns(id) {
				return false
			}
		}
		return true
	}
	return false
}

// entity
// City 开局由静态配置创建，之后归属与守军随征服变化，永不删除。
type City struct {
	id          CityID
	name        string
	tier        Tier
	garrison    int         // 守军强度（兵力当量）
	baseDefense int         // 基础征服难度
	owner       Owner
	yield       ResourceBag // 每小时产出，只用于目标评分与收益预估
	unlock      UnlockCondition
	underSiege  bool
}

func NewCity(id CityID, name string, tier Tier, garrison, baseDefense int, owner Owner, yield ResourceBag, unlock UnlockCondition) *City {
	return &City{
		id:          id,
		name:        name,
		tier:        tier,
		garrison:    garrison,
		baseDefense: baseDefense,
		owner:       owner,
		yield:       yield,
		unlock:      unlock,
	}
}

func (c *City) ID() CityID               { return c.id }
func (c *City) Name() string             { return c.name }
func (c *City) Tier() Tier               { return c.tier }
func (c *City) Garrison() int            { return c.garrison }
func (c *City) BaseDefense() int         { return c.baseDefense }
func (c *City) Owner() Owner             { return c.owner }
func (c *City) Yield() ResourceBag       { return c.yield }
func (c *City) Unlock() UnlockCondition  { return c.unlock }
func (c *City) UnderSiege() bool         { return c.underSiege }

func (c *City) BeginSiege() {
	c.underSiege = true
}

func (c *City) EndSiege() {
	c.underSiege = false
}

// FallTo 城池易主：守军清零，围城标记清除。
func (c *City) FallTo(owner Owner) {
	c.owner = owner
	c.garrison = 0
	c.underSiege = false
}

// LoseGarrison 守军战损，下限 0。
func (c *City) LoseGarrison(n int) {
	c.garrison = maxInt(c.garrison-n, 0)
}
