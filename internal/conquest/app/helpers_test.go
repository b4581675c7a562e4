package app

import (
	"context"
	"errors"
	"math/rand"

	"IdleConquest/internal/conquest/domain"
	"IdleConquest/modules/kit/logx"

	"go.uber.org/zap"
)

type nopLogger struct{}

func (nopLogger) WithContext(ctx context.Context) logx.Logger { return nopLogger{} }
func (nopLogger) Info(msg string, fields ...zap.Field)        {}
func (nopLogger) Error(msg string, fields ...zap.Field)       {}
func (nopLogger) Debug(msg string, fields ...zap.Field)       {}
func (nopLogger) Warn(msg string, fields ...zap.Field)        {}

// fakeRegistry 测试用注册表：直接持有城池实体。
type fakeRegistry struct {
	cities map[domain.CityID]*domain.City
}

func newFakeRegistry(cities ...*domain.City) *fakeRegistry {
	m := make(map[domain.CityID]*domain.City, len(cities))
	for _, c := range cities {
		m[c.ID()] = c
	}
	return &fakeRegistry{cities: m}
}

func (r *fakeRegistry) ConquerableCities() []*domain.City {
	out := make([]*domain.City, 0, len(r.cities))
	for _, c := range r.cities {
		if c.Owner() != domain.OwnerPlayer {
			out = append(out, c)
		}
	}
	return out
}

func (r *fakeRegistry) CityByID(id domain.CityID) (*domain.City, error) {
	c, ok := r.cities[id]
	if !ok {
		return nil, domain.ErrCityNotFound
	}
	return c, nil
}

func (r *fakeRegistry) TotalCities() int { return len(r.cities) }

func (r *fakeRegistry) StartSiege(id domain.CityID) error {
	c, ok := r.cities[id]
	if !ok {
		return domain.ErrCityNotFound
	}
	if c.UnderSiege() || c.Owner() == domain.OwnerPlayer {
		return errors.New("state conflict")
	}
	c.BeginSiege()
	return nil
}

func (r *fakeRegistry) EndSiege(id domain.CityID) {
	if c, ok := r.cities[id]; ok {
		c.EndSiege()
	}
}

func (r *fakeRegistry) ExecuteConquest(id domain.CityID) (*domain.City, error) {
	c, ok := r.cities[id]
	if !ok {
		return nil, domain.ErrCityNotFound
	}
	c.FallTo(domain.OwnerPlayer)
	return c, nil
}

func testAttrs() domain.Attributes {
	return domain.Attributes{Might: 100, Intellect: 100, Leadership: 100, Statecraft: 100, Charisma: 100, Destiny: 100}
}

func testCity(id domain.CityID, garrison, baseDefense int) *domain.City {
	return domain.NewCity(id, "测试城", domain.TierSmall, garrison, baseDefense,
		domain.OwnerNeutral,
		domain.ResourceBag{Gold: 100, Troops: 20, Food: 50},
		domain.UnlockCondition{Default: true})
}

func testEmpire(res domain.ResourceBag, settings domain.AutomationSettings) *domain.Empire {
	return domain.NewEmpire(nil, testAttrs(), 1, res, settings)
}

func openSettings() domain.AutomationSettings {
	return domain.AutomationSettings{
		Aggression:          domain.AggressionBalanced,
		ReservePercent:      0,
		GoldFloor:           0,
		TroopFloor:          0,
		MaxConcurrentSieges: 1,
		BattlesPerHour:      6,
	}
}

func testServices(seed int64) (*DifficultyService, *CombatService, *TargetSelector, *EconomyGuardrail) {
	diff := NewDifficultyService(1.0)
	combat := NewCombatService(diff, rand.New(rand.NewSource(seed)))
	guard := NewEconomyGuardrail()
	selector := NewTargetSelector(combat, diff, guard)
	return diff, combat, selector, guard
}

func testScheduler(empire *domain.Empire, registry *fakeRegistry, seed int64) (*Scheduler, *Emitter) {
	diff, combat, selector, _ := testServices(seed)
	offline := NewOfflineSimulator(diff, selector)
	emitter := NewEmitter()
	var next int64
	s := NewScheduler(empire, registry, selector, combat, diff, offline, emitter, nopLogger{},
		func() int64 { next++; return next },
		SchedulerConfig{},
	)
	return s, emitter
}

// winN/loseN 按场灌入战斗结果，用于构造指定的连胜连败与胜率。
func winN(stats *domain.Statistics, n int) {
	for i := 0; i < n; i++ {
		stats.ApplyBattleResult(&domain.BattleOutcome{Victory: true})
	}
}

func loseN(stats *domain.Statistics, n int) {
	for i := 0; i < n; i++ {
		stats.ApplyBattleResult(&domain.BattleOutcome{Victory: false})
	}
}
