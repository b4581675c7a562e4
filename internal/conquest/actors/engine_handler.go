package actors

import (
	"time"

	"IdleConquest/internal/conquest/dto"

	"github.com/asynkron/protoactor-go/actor"
)

type EngineHandler struct{}

var EH = &EngineHandler{}

func (h *EngineHandler) HandleStatus(ctx actor.Context, p *EngineActor, req StatusCommand) {
	ctx.Respond(StatusReply{Status: p.scheduler.Status()})
}

func (h *EngineHandler) HandlePause(ctx actor.Context, p *EngineActor, req PauseCommand) {
	reason := req.Reason
	if reason == "" {
		reason = "user"
	}
	p.scheduler.Pause(reason)
	ctx.Respond(replyOK())
}

func (h *EngineHandler) HandleResume(ctx actor.Context, p *EngineActor, req ResumeCommand) {
	p.scheduler.Resume(time.Now())
	ctx.Respond(replyOK())
}

func (h *EngineHandler) HandleManualAttack(ctx actor.Context, p *EngineActor, req ManualAttackCommand) {
	res := p.scheduler.ManualAttack(p.cityID(req.CityID), time.Now())
	if res.Err != nil {
		ctx.Logger().Error("manual attack failed", "city_id", req.CityID, "err", res.Err)
	}
	reply := AttackReply{Ok: res.Success, Reason: res.Reason}
	if res.Record != nil {
		r := dto.FromBattleRecord(res.Record)
		reply.Record = &r
	}
	ctx.Respond(reply)
}

func (h *EngineHandler) HandleOfflineCatchUp(ctx actor.Context, p *EngineActor, req OfflineCatchUpCommand) {
	report, res := p.scheduler.OfflineCatchUp(time.Now())
	if res.Err != nil {
		ctx.Logger().Error("offline catch-up failed", "err", res.Err)
	}
	ctx.Respond(OfflineReply{
		Ok:     res.Success,
		Reason: res.Reason,
		Report: dto.FromOfflineReport(report),
	})
}

func (h *EngineHandler) HandleHistory(ctx actor.Context, p *EngineActor, req HistoryCommand) {
	records := p.scheduler.History().Recent(req.Limit)
	ctx.Respond(HistoryReply{Records: dto.FromBattleRecords(records)})
}

func (h *EngineHandler) HandleStatistics(ctx actor.Context, p *EngineActor, req StatisticsCommand) {
	ctx.Respond(StatisticsReply{Stats: dto.FromStatistics(p.empire().Statistics())})
}

// 统计只响应显式的重置命令，引擎自身永不清零。
func (h *EngineHandler) HandleResetStatistics(ctx actor.Context, p *EngineActor, req ResetStatisticsCommand) {
	p.empire().Statistics().Reset()
	ctx.Respond(replyOK())
}

func (h *EngineHandler) HandleUpdateSettings(ctx actor.Context, p *EngineActor, req UpdateSettingsCommand) {
	e := p.empire()
	e.SetSettings(req.Settings.ToDomain(e.Settings()))
	ctx.Respond(SettingsReply{Settings: dto.FromAutomationSettings(e.Settings())})
}

func (h *EngineHandler) HandleSettings(ctx actor.Context, p *EngineActor, req SettingsCommand) {
	ctx.Respond(SettingsReply{Settings: dto.FromAutomationSettings(p.empire().Settings())})
}
