package app

import (
	"sync"
	"time"

	"IdleConquest/internal/conquest/domain"
)

// 引擎对外事件：UI/音频/日志按需订阅，核心不关心消费方。
// 用显式类型而不是信号字符串，订阅方拿到的是编译期可校验的结构。

type Event interface {
	EventName() string
}

type BattleStarted struct {
	CityID   domain.CityID `json:"cityId"`
	CityName string        `json:"cityName"`
	Attacker domain.Combatant `json:"attacker"`
	Defender domain.Combatant `json:"defender"`
	Manual   bool          `json:"manual"`
	Deadline time.Time     `json:"deadline"`
}

func (BattleStarted) EventName() string { return "battleStarted" }

type BattleCompleted struct {
	CityID   domain.CityID  `json:"cityId"`
	CityName string         `json:"cityName"`
	Victory  bool           `json:"victory"`
	Attacker domain.Combatant `json:"attacker"`
	Defender domain.Combatant `json:"defender"`
	AttackerCasualties int  `json:"attackerCasualties"`
	DefenderCasualties int  `json:"defenderCasualties"`
	Reward   domain.RewardBag `json:"reward"`
}

func (BattleCompleted) EventName() string { return "battleCompleted" }

type CityConquered struct {
	CityID   domain.CityID    `json:"cityId"`
	CityName string           `json:"cityName"`
	Spoils   domain.RewardBag `json:"spoils"`
}

func (CityConquered) EventName() string { return "cityConquered" }

type DifficultyScalingApplied struct {
	Factor float64 `json:"factor"`
	Reason string  `json:"reason"`
}

func (DifficultyScalingApplied) EventName() string { return "difficultyScalingApplied" }

type OfflineProgressCalculated struct {
	OfflineHours float64               `json:"offlineHours"`
	Report       *domain.OfflineReport `json:"report"`
}

func (OfflineProgressCalculated) EventName() string { return "offlineProgressCalculated" }

type AutomationPaused struct {
	Reason string `json:"reason"`
}

func (AutomationPaused) EventName() string { return "automationPaused" }

type AutomationResumed struct{}

func (AutomationResumed) EventName() string { return "automationResumed" }

// VictoryAchieved 全图征服，引擎转入暂停（本子系统的终态）。
type VictoryAchieved struct {
	CitiesOwned int `json:"citiesOwned"`
}

func (VictoryAchieved) EventName() string { return "victoryAchieved" }

// Emitter 同步回调注册表。引擎单线程驱动，回调在引擎线程内执行，
// 订阅方需要异步处理时自行转发，不得阻塞。
type Emitter struct {
	mu   sync.RWMutex
	subs []func(Event)
}

func NewEmitter() *Emitter {
	return &Emitter{}
}

func (e *Emitter) Subscribe(fn func(Event)) {
	if fn == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.subs = append(e.subs, fn)
}

func (e *Emitter) Emit(ev Event) {
	if e == nil || ev == nil {
		return
	}
	e.mu.RLock()
	subs := e.subs
	e.mu.RUnlock()
	for _, fn := range subs {
		fn(ev)
	}
}
