package app

// Reason 业务拒绝/跳过原因（服务内枚举），随结果对象返回，
// 由接口层映射为客户端可见的提示。
type Reason struct {
	Code    string
	Message string
}

func (r Reason) ReasonCode() string {
	return r.Code
}

func NewReason(c, m string) Reason {
	return Reason{Code: c, Message: m}
}

var (
	// 业务跳过 reason：都是可恢复的局部状况，不是故障。
	ReasonNoEligibleTarget = NewReason("NO_ELIGIBLE_TARGET", "没有可攻击的目标")
	ReasonCannotAfford     = NewReason("CANNOT_AFFORD", "预留后资源不足以支撑出征")
	ReasonCityOwned        = NewReason("CITY_ALREADY_OWNED", "城池已在掌控之中")
	ReasonCityUnderSiege   = NewReason("CITY_UNDER_SIEGE", "城池正被围攻")
	ReasonSiegeLimit       = NewReason("SIEGE_LIMIT_REACHED", "并发围城已达上限")
	ReasonAutomationPaused = NewReason("AUTOMATION_PAUSED", "自动化已暂停")
	ReasonAllConquered     = NewReason("ALL_CITIES_CONQUERED", "全图已征服")
	ReasonInvalidCombatant = NewReason("INVALID_COMBATANT", "参战数据不完整")
	ReasonCityLost         = NewReason("CITY_STATE_CHANGED", "结算时城池状态已变化")
	ReasonNoOfflineTime    = NewReason("NO_OFFLINE_TIME", "没有可补偿的离线时长")
)

var (
	// 技术错误 reason，用于日志与排障。
	ReasonEmpireRepoUnavailable  = NewReason("EMPIRE_REPO_UNAVAILABLE", "帝国存档库不可用")
	ReasonHistoryRepoUnavailable = NewReason("HISTORY_REPO_UNAVAILABLE", "战斗历史库不可用")
)
