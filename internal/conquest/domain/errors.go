package domain

import "errors"

// 领域哨兵错误：供 app/infra 用 errors.Is 判定语义。
var (
	// ErrCityNotFound 注册表里查不到引用的城池 id。
	// 这是引擎与协作方之间的硬性约束被打破，必须向上抛而不是吞掉。
	ErrCityNotFound = errors.New("city not found in registry")
	// ErrEmpireNotFound 持久层没有对应帝国存档。
	ErrEmpireNotFound = errors.New("empire not found")
	// ErrInvalidCombatant 参战数据不完整（属性/等级/兵力缺失）。
	ErrInvalidCombatant = errors.New("invalid combatant data")
)
