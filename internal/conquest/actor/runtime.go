package actor

import (
	"context"
	"errors"
	"time"

	"IdleConquest/internal/conquest/actors"
	"IdleConquest/internal/conquest/app"
	"IdleConquest/internal/conquest/app/port"
	"IdleConquest/internal/conquest/dto"
	"IdleConquest/internal/shared/transport"
	"IdleConquest/modules/kit/logx"

	protoactor "github.com/asynkron/protoactor-go/actor"
)

const defaultAskTimeout = 3 * time.Second

type RuntimeError struct {
	Code    int
	Message string
	Cause   error
}

func (e *RuntimeError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e *RuntimeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Runtime 包装 actor system：对接口层暴露同步的请求/应答 API，
// 引擎内部的单线程约束由 actor 邮箱保证。
type Runtime struct {
	system  *protoactor.ActorSystem
	root    *protoactor.RootContext
	engine  *protoactor.PID
	timeout time.Duration
}

func NewRuntime(
	repo port.EmpireRepository,
	registry app.CityRegistry,
	archive port.HistoryArchive,
	emitter *app.Emitter,
	log logx.Logger,
	cfg actors.EngineConfig,
	askTimeout time.Duration,
) *Runtime {
	if askTimeout <= 0 {
		askTimeout = defaultAskTimeout
	}

	system := protoactor.NewActorSystem()
	root := system.Root
	props := protoactor.PropsFromProducer(func() protoactor.Actor {
		return actors.NewEngineActor(repo, registry, archive, emitter, log, cfg)
	})
	engine := root.Spawn(props)

	return &Runtime{
		system:  system,
		root:    root,
		engine:  engine,
		timeout: askTimeout,
	}
}

func (r *Runtime) Shutdown() {
	if r == nil {
		return
	}
	if r.root != nil && r.engine != nil {
		r.root.Stop(r.engine)
	}
	if r.system != nil {
		r.system.Shutdown()
	}
}

func (r *Runtime) Status(ctx context.Context) (app.EngineStatus, error) {
	res, err := r.ask(ctx, actors.StatusCommand{})
	if err != nil {
		return app.EngineStatus{}, err
	}
	reply, ok := res.(actors.StatusReply)
	if !ok {
		return app.EngineStatus{}, unexpectedReply(res)
	}
	return reply.Status, nil
}

func (r *Runtime) Pause(ctx context.Context, reason string) error {
	return r.command(ctx, actors.PauseCommand{Reason: reason})
}

func (r *Runtime) Resume(ctx context.Context) error {
	return r.command(ctx, actors.ResumeCommand{})
}

func (r *Runtime) ManualAttack(ctx context.Context, cityID int) (actors.AttackReply, error) {
	res, err := r.ask(ctx, actors.ManualAttackCommand{CityID: cityID})
	if err != nil {
		return actors.AttackReply{}, err
	}
	reply, ok := res.(actors.AttackReply)
	if !ok {
		return actors.AttackReply{}, unexpectedReply(res)
	}
	return reply, nil
}

func (r *Runtime) OfflineCatchUp(ctx context.Context) (actors.OfflineReply, error) {
	res, err := r.ask(ctx, actors.OfflineCatchUpCommand{})
	if err != nil {
		return actors.OfflineReply{}, err
	}
	reply, ok := res.(actors.OfflineReply)
	if !ok {
		return actors.OfflineReply{}, unexpectedReply(res)
	}
	return reply, nil
}

func (r *Runtime) History(ctx context.Context, limit int) ([]dto.BattleRecord, error) {
	res, err := r.ask(ctx, actors.HistoryCommand{Limit: limit})
	if err != nil {
		return nil, err
	}
	reply, ok := res.(actors.HistoryReply)
	if !ok {
		return nil, unexpectedReply(res)
	}
	return reply.Records, nil
}

func (r *Runtime) Statistics(ctx context.Context) (dto.Statistics, error) {
	res, err := r.ask(ctx, actors.StatisticsCommand{})
	if err != nil {
		return dto.Statistics{}, err
	}
	reply, ok := res.(actors.StatisticsReply)
	if !ok {
		return dto.Statistics{}, unexpectedReply(res)
	}
	return reply.Stats, nil
}

func (r *Runtime) ResetStatistics(ctx context.Context) error {
	return r.command(ctx, actors.ResetStatisticsCommand{})
}

func (r *Runtime) Settings(ctx context.Context) (dto.AutomationSettings, error) {
	res, err := r.ask(ctx, actors.SettingsCommand{})
	if err != nil {
		return dto.AutomationSettings{}, err
	}
	reply, ok := res.(actors.SettingsReply)
	if !ok {
		return dto.AutomationSettings{}, unexpectedReply(res)
	}
	return reply.Settings, nil
}

func (r *Runtime) UpdateSettings(ctx context.Context, s dto.AutomationSettings) (dto.AutomationSettings, error) {
	res, err := r.ask(ctx, actors.UpdateSettingsCommand{Settings: s})
	if err != nil {
		return dto.AutomationSettings{}, err
	}
	reply, ok := res.(actors.SettingsReply)
	if !ok {
		return dto.AutomationSettings{}, unexpectedReply(res)
	}
	return reply.Settings, nil
}

func (r *Runtime) command(ctx context.Context, msg any) error {
	res, err := r.ask(ctx, msg)
	if err != nil {
		return err
	}
	reply, ok := res.(actors.CommandReply)
	if !ok {
		return unexpectedReply(res)
	}
	if !reply.Ok {
		return &RuntimeError{Code: transport.SystemError, Message: reply.Message}
	}
	return nil
}

func (r *Runtime) ask(ctx context.Context, msg any) (any, error) {
	if r == nil || r.root == nil {
		return nil, &RuntimeError{Code: transport.SystemError, Message: "actor runtime 未初始化"}
	}
	if r.engine == nil {
		return nil, &RuntimeError{Code: transport.SystemError, Message: "actor pid 为空"}
	}

	future := r.root.RequestFuture(r.engine, msg, r.timeoutFromContext(ctx))
	res, err := future.Result()
	if err != nil {
		return nil, &RuntimeError{
			Code:    transport.SystemError,
			Message: "actor 请求失败",
			Cause:   err,
		}
	}
	// 引擎未就绪等整体拒绝以 CommandReply 返回，在这里统一拦截。
	if reply, ok := res.(actors.CommandReply); ok && !reply.Ok && reply.Reason == "ENGINE_NOT_READY" {
		return nil, &RuntimeError{Code: transport.SystemError, Message: reply.Message}
	}
	return res, nil
}

func (r *Runtime) timeoutFromContext(ctx context.Context) time.Duration {
	if r == nil || r.timeout <= 0 {
		return defaultAskTimeout
	}
	if ctx == nil {
		return r.timeout
	}
	deadline, ok := ctx.Deadline()
	if !ok {
		return r.timeout
	}
	remain := time.Until(deadline)
	if remain <= 0 {
		return time.Millisecond
	}
	if remain < r.timeout {
		return remain
	}
	return r.timeout
}

func CodeFromError(err error) int {
	if err == nil {
		return transport.OK
	}
	var re *RuntimeError
	if errors.As(err, &re) && re != nil && re.Code != 0 {
		return re.Code
	}
	return transport.SystemError
}

func unexpectedReply(any) error {
	return &RuntimeError{Code: transport.SystemError, Message: "actor 应答类型不符"}
}
