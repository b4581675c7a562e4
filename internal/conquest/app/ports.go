package app

import "IdleConquest/internal/conquest/domain"

// CityRegistry 城池注册表端口：引擎与世界数据的唯一交互面。
// 实现方必须与引擎在同一逻辑线程内被调用（引擎 actor 的邮箱串行化）。
type CityRegistry interface {
	// ConquerableCities 当前所有非玩家城池（未过滤解锁条件）。
	ConquerableCities() []*domain.City
	// CityByID 查不到时返回 domain.ErrCityNotFound——这是硬性约束破坏。
	CityByID(id domain.CityID) (*domain.City, error)
	// TotalCities 全图城池数，用于离线推演的征服上限。
	TotalCities() int
	// StartSiege 标记围城；已被围攻或已归属玩家时报状态冲突。
	StartSiege(id domain.CityID) error
	// EndSiege 解除围城标记（结算或中止后）。
	EndSiege(id domain.CityID)
	// ExecuteConquest 城池易主到玩家名下，返回易主后的城池。
	ExecuteConquest(id domain.CityID) (*domain.City, error)
}
