package actors

import (
	"IdleConquest/internal/conquest/app"
	"IdleConquest/internal/conquest/dto"
)

// 引擎命令走 actor 邮箱串行化，取代对共享状态的并发访问。
// 纯 Go 结构体消息：单进程部署不需要跨机协议。
type Command interface {
	isEngineCommand()
}

type StatusCommand struct{}

type PauseCommand struct {
	Reason string
}

type ResumeCommand struct{}

type ManualAttackCommand struct {
	CityID int
}

type OfflineCatchUpCommand struct{}

type HistoryCommand struct {
	Limit int
}

type StatisticsCommand struct{}

type ResetStatisticsCommand struct{}

type UpdateSettingsCommand struct {
	Settings dto.AutomationSettings
}

type SettingsCommand struct{}

func (StatusCommand) isEngineCommand()          {}
func (PauseCommand) isEngineCommand()           {}
func (ResumeCommand) isEngineCommand()          {}
func (ManualAttackCommand) isEngineCommand()    {}
func (OfflineCatchUpCommand) isEngineCommand()  {}
func (HistoryCommand) isEngineCommand()         {}
func (StatisticsCommand) isEngineCommand()      {}
func (ResetStatisticsCommand) isEngineCommand() {}
func (UpdateSettingsCommand) isEngineCommand()  {}
func (SettingsCommand) isEngineCommand()        {}

// CommandReply 无载荷命令的统一应答。
type CommandReply struct {
	Ok      bool
	Reason  string
	Message string
}

type StatusReply struct {
	Status app.EngineStatus
}

type AttackReply struct {
	Ok     bool
	Reason string
	Record *dto.BattleRecord
}

type OfflineReply struct {
	Ok     bool
	Reason string
	Report *dto.OfflineReport
}

type HistoryReply struct {
	Records []dto.BattleRecord
}

type StatisticsReply struct {
	Stats dto.Statistics
}

type SettingsReply struct {
	Settings dto.AutomationSettings
}

func replyOK() CommandReply {
	return CommandReply{Ok: true}
}

func replyFail(reason, message string) CommandReply {
	return CommandReply{Reason: reason, Message: message}
}
