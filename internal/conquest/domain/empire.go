package domain

import (
	"sort"
	"time"
)

type EmpireID int

// Attributes 君主六维属性，参与战力评估。
type Attributes struct {
	Might      int
	Intellect  int
	Leadership int
	Statecraft int
	Charisma   int
	Destiny    int
}

// Valid 六维齐备（非负）才允许参战。
func (a Attributes) Valid() bool {
	return a.Might >= 0 && a.Intellect >= 0 && a.Leadership >= 0 &&
		a.Statecraft >= 0 && a.Charisma >= 0 && a.Destiny >= 0
}

// Aggression 自动化攻击倾向。
type Aggression int8

const (
	AggressionConservative Aggression = iota
	AggressionBalanced
	AggressionAggressive
)

func (a Aggression) String() string {
	switch a {
	case AggressionConservative:
		return "conservative"
	case AggressionAggressive:
		return "aggressive"
	default:
		return "balanced"
	}
}

func ParseAggression(s string) Aggression {
	switch s {
	case "conservative":
		return AggressionConservative
	case "aggressive":
		return AggressionAggressive
	default:
		return AggressionBalanced
	}
}

// AutomationSettings 自动化参数：攻击倾向、资源预留、并发围城上限等。
type AutomationSettings struct {
	Aggression          Aggression
	ReservePercent      float64 // 预留比例 0~1
	GoldFloor           int     // 金币硬性保底
	TroopFloor          int     // 兵力硬性保底
	MaxConcurrentSieges int
	BattlesPerHour      int // 离线推演的战斗频率上限
}

// DefaultAutomationSettings 未配置时的缺省值。
func DefaultAutomationSettings() AutomationSettings {
	return AutomationSettings{
		Aggression:          AggressionBalanced,
		ReservePercent:      0.2,
		GoldFloor:           100,
		TroopFloor:          50,
		MaxConcurrentSieges: 1,
		BattlesPerHour:      6,
	}
}

// entity
// Empire 玩家帝国：城池集合、资源、属性、自动化设置。
// 所有变更只能经由引擎单线程执行，持久化走脏标记 + 快照。
type Empire struct {
	empireID     *EmpireID
	ownedCities  map[CityID]struct{}
	resources    ResourceBag
	attrs        Attributes
	level        int
	settings     AutomationSettings
	stats        *Statistics
	lastActiveAt time.Time // 离线补偿的锚点，消费离线结果后立即推进
	dirty        bool
}

func NewEmpire(id *EmpireID, attrs Attributes, level int, resources ResourceBag, settings AutomationSettings) *Empire {
	eid := id
	if eid == nil {
		defaultID := EmpireID(1)
		eid = &defaultID
	}
	if level < 1 {
		level = 1
	}
	return &Empire{
		empireID:     eid,
		ownedCities:  make(map[CityID]struct{}),
		resources:    resources,
		attrs:        attrs,
		level:        level,
		settings:     settings,
		stats:        NewStatistics(),
		lastActiveAt: time.Now(),
	}
}

func (e *Empire) ID() EmpireID {
	return *e.empireID
}

func (e *Empire) Resources() ResourceBag {
	return e.resources
}

func (e *Empire) Attributes() Attributes {
	return e.attrs
}

func (e *Empire) Level() int {
	return e.level
}

func (e *Empire) Settings() AutomationSettings {
	return e.settings
}

func (e *Empire) SetSettings(s AutomationSettings) {
	e.settings = s
	e.dirty = true
}

func (e *Empire) Statistics() *Statistics {
	return e.stats
}

func (e *Empire) LastActiveAt() time.Time {
	return e.lastActiveAt
}

// TouchActive 推进活跃时间戳。离线结果应用后必须立刻调用，保证幂等。
func (e *Empire) TouchActive(t time.Time) {
	if t.After(e.lastActiveAt) {
		e.lastActiveAt = t
		e.dirty = true
	}
}

func (e *Empire) OwnsCity(id CityID) bool {
	_, ok := e.ownedCities[id]
	return ok
}

func (e *Empire) OwnedCount() int {
	return len(e.ownedCities)
}

// OwnedCities 稳定升序返回，保证对外可重复观测。
func (e *Empire) OwnedCities() []CityID {
	ids := make([]CityID, 0, len(e.ownedCities))
	for id := range e.ownedCities {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (e *Empire) AddCity(id CityID) {
	if _, ok := e.ownedCities[id]; ok {
		return
	}
	e.ownedCities[id] = struct{}{}
	e.dirty = true
}

func (e *Empire) RemoveCity(id CityID) {
	if _, ok := e.ownedCities[id]; !ok {
		return
	}
	delete(e.ownedCities, id)
	e.dirty = true
}

func (e *Empire) GainResources(bag ResourceBag) {
	if bag.IsZero() {
		return
	}
	e.resources = e.resources.Add(bag)
	e.dirty = true
}

// SpendResources 扣减资源，下限钳 0。
func (e *Empire) SpendResources(bag ResourceBag) {
	if bag.IsZero() {
		return
	}
	e.resources = e.resources.Sub(bag)
	e.dirty = true
}

func (e *Empire) GainExperience(exp int) {
	if exp <= 0 {
		return
	}
	// 每 1000 经验升一级的粗粒度成长，只影响解锁判定。
	e.level += exp / 1000
	e.dirty = true
}

func (e *Empire) Dirty() bool {
	if e == nil {
		return false
	}
	return e.dirty || e.stats.Dirty()
}

func (e *Empire) ClearDirty() {
	if e == nil {
		return
	}
	e.dirty = false
	e.stats.ClearDirty()
}

func (e *Empire) BuildPersistSnapshot(version uint64) (*EmpirePersistSnapshot, bool) {
	if e == nil || !e.Dirty() {
		return nil, false
	}
	owned := e.OwnedCities()
	ownedInts := make([]int, len(owned))
	for i, id := range owned {
		ownedInts[i] = int(id)
	}
	return &EmpirePersistSnapshot{
		Version:      version,
		EmpireID:     e.ID(),
		Resources:    e.resources,
		Attrs:        e.attrs,
		Level:        e.level,
		Settings:     e.settings,
		OwnedCities:  ownedInts,
		LastActiveAt: e.lastActiveAt,
		Stats:        e.stats.Snapshot(),
	}, true
}

// HydrateEmpire 从持久化快照重建实体（脏标记清零）。
func HydrateEmpire(s *EmpirePersistSnapshot) *Empire {
	if s == nil {
		return nil
	}
	id := s.EmpireID
	e := NewEmpire(&id, s.Attrs, s.Level, s.Resources, s.Settings)
	for _, cid := range s.OwnedCities {
		e.ownedCities[CityID(cid)] = struct{}{}
	}
	if !s.LastActiveAt.IsZero() {
		e.lastActiveAt = s.LastActiveAt
	}
	e.stats = HydrateStatistics(s.Stats)
	e.dirty = false
	return e
}

type EmpirePersistSnapshot struct {
	Version      uint64
	EmpireID     EmpireID
	Resources    ResourceBag
	Attrs        Attributes
	Level        int
	Settings     AutomationSettings
	OwnedCities  []int
	LastActiveAt time.Time
	Stats        StatisticsSnapshot
}
