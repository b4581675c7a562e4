package registry

import (
	"errors"
	"sort"

	"IdleConquest/internal/conquest/domain"
	"IdleConquest/internal/shared/gameconfig/cities"
)

var ErrSiegeConflict = errors.New("city siege state conflict")

// CityRegistry 城池注册表：开局由静态配置构建，全生命周期只增改不删。
// 引擎 actor 串行访问，不加锁。
type CityRegistry struct {
	cities map[domain.CityID]*domain.City
	sorted []domain.CityID
}

func NewCityRegistry(defs []cities.Definition) *CityRegistry {
	r := &CityRegistry{cities: make(map[domain.CityID]*domain.City, len(defs))}
	for _, d := range defs {
		id := domain.CityID(d.ID)
		r.cities[id] = buildCity(d)
		r.sorted = append(r.sorted, id)
	}
	sort.Slice(r.sorted, func(i, j int) bool { return r.sorted[i] < r.sorted[j] })
	return r
}

func buildCity(d cities.Definition) *domain.City {
	owner := domain.OwnerNeutral
	if d.Owner == "enemy" {
		owner = domain.OwnerEnemy
	}
	required := make([]domain.CityID, 0, len(d.RequiredCities))
	for _, id := range d.RequiredCities {
		required = append(required, domain.CityID(id))
	}
	return domain.NewCity(
		domain.CityID(d.ID),
		d.Name,
		domain.ParseTier(d.Tier),
		d.Garrison,
		d.BaseDefense,
		owner,
		domain.ResourceBag{Gold: d.YieldGold, Troops: d.YieldTroops, Food: d.YieldFood},
		domain.UnlockCondition{
			Default:        d.UnlockDefault,
			MinLevel:       d.MinLevel,
			MinCitiesOwned: d.MinCitiesOwned,
			RequiredCities: required,
		},
	)
}

func (r *CityRegistry) ConquerableCities() []*domain.City {
	out := make([]*domain.City, 0, len(r.sorted))
	for _, id := range r.sorted {
		c := r.cities[id]
		if c.Owner() == domain.OwnerPlayer {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (r *CityRegistry) CityByID(id domain.CityID) (*domain.City, error) {
	c, ok := r.cities[id]
	if !ok {
		return nil, domain.ErrCityNotFound
	}
	return c, nil
}

func (r *CityRegistry) TotalCities() int {
	return len(r.cities)
}

func (r *CityRegistry) StartSiege(id domain.CityID) error {
	c, ok := r.cities[id]
	if !ok {
		return domain.ErrCityNotFound
	}
	if c.UnderSiege() || c.Owner() == domain.OwnerPlayer {
		return ErrSiegeConflict
	}
	c.BeginSiege()
	return nil
}

func (r *CityRegistry) EndSiege(id domain.CityID) {
	if c, ok := r.cities[id]; ok {
		c.EndSiege()
	}
}

func (r *CityRegistry) ExecuteConquest(id domain.CityID) (*domain.City, error) {
	c, ok := r.cities[id]
	if !ok {
		return nil, domain.ErrCityNotFound
	}
	c.FallTo(domain.OwnerPlayer)
	return c, nil
}
