package actors

import (
	"context"
	"math/rand"
	"time"

	"IdleConquest/internal/conquest/app"
	"IdleConquest/internal/conquest/app/port"
	"IdleConquest/internal/conquest/dc"
	"IdleConquest/internal/conquest/domain"
	"IdleConquest/internal/shared/utils"
	"IdleConquest/modules/kit/logx"

	"github.com/asynkron/protoactor-go/actor"
)

type State int

const (
	None State = iota
	Init
	Online
	Offline
	Stopping
)

// EngineConfig 引擎调参，来自 conf.yml 的 engine 段。
type EngineConfig struct {
	EmpireID      int
	ScalingFactor float64
	TickInterval  time.Duration
	BaseInterval  time.Duration
	IntervalCap   time.Duration
	HistorySize   int
}

func (c EngineConfig) withDefaults() EngineConfig {
	if c.EmpireID <= 0 {
		c.EmpireID = 1
	}
	if c.ScalingFactor < 1.0 {
		c.ScalingFactor = 1.05
	}
	if c.TickInterval <= 0 {
		c.TickInterval = time.Second
	}
	return c
}

// EngineActor 推进引擎的宿主：加载帝国存档、驱动调度器 tick、
// 串行处理所有外部命令。引擎状态只在本 actor 的邮箱线程内变更。
type EngineActor struct {
	state      State
	empireID   *dc.EmpireID
	dc         *dc.EmpireDC
	registry   app.CityRegistry
	archive    port.HistoryArchive
	emitter    *app.Emitter
	log        logx.Logger
	cfg        EngineConfig
	scheduler  *app.Scheduler
	dispatcher *Dispatcher
	flushStop  chan struct{}
	tickStop   chan struct{}
}

type flushTick struct{}

func (flushTick) NotInfluenceReceiveTimeout() {}

type schedulerTick struct{}

func (schedulerTick) NotInfluenceReceiveTimeout() {}

func NewEngineActor(
	repo port.EmpireRepository,
	registry app.CityRegistry,
	archive port.HistoryArchive,
	emitter *app.Emitter,
	log logx.Logger,
	cfg EngineConfig,
) *EngineActor {
	cfg = cfg.withDefaults()
	empireID := dc.EmpireID(cfg.EmpireID)
	return &EngineActor{
		state:      None,
		empireID:   &empireID,
		dc:         dc.NewEmpireDC(repo),
		registry:   registry,
		archive:    archive,
		emitter:    emitter,
		log:        log,
		cfg:        cfg,
		dispatcher: NewDispatcher(),
	}
}

func (p *EngineActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		p.state = Init
		p.init(ctx)
		return
	case *actor.Stopping:
		p.stopTickLoop()
		p.stopFlushLoop()
		closeCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := p.dc.Close(closeCtx); err != nil {
			ctx.Logger().Error("engine dc close failed", "empire_id", p.empireID, "err", err)
		}
		p.state = Stopping
		return
	case *actor.Stopped:
		p.stopTickLoop()
		p.stopFlushLoop()
		p.state = Offline
		return
	case *actor.Restarting:
		p.stopTickLoop()
		p.stopFlushLoop()
		p.state = Init
		return
	case flushTick:
		if p.state != Online {
			return
		}
		p.dc.Flush(context.TODO())
		return
	case schedulerTick:
		if p.state != Online {
			return
		}
		p.tick(ctx)
		return
	case Command:
		if p.state != Online {
			ctx.Respond(replyFail("ENGINE_NOT_READY", "engine not online"))
			return
		}
		p.dispatcher.Dispatch(ctx, p, msg)
	default:
		return
	}
}

func (p *EngineActor) init(ctx actor.Context) {
	empire, err := p.dc.Load(context.TODO(), p.empireID)
	if err != nil {
		ctx.Logger().Error("engine load empire failed", "empire_id", p.empireID, "err", err)
		p.state = Stopping
		ctx.Stop(ctx.Self())
		return
	}

	// 注册表每次启动都从静态配置重建，归属要按存档重放。
	for _, id := range empire.OwnedCities() {
		if _, err := p.registry.ExecuteConquest(id); err != nil {
			ctx.Logger().Error("replay owned city failed", "city_id", id, "err", err)
		}
	}

	diff := app.NewDifficultyService(p.cfg.ScalingFactor)
	combat := app.NewCombatService(diff, rand.New(rand.NewSource(time.Now().UnixNano())))
	guard := app.NewEconomyGuardrail()
	selector := app.NewTargetSelector(combat, diff, guard)
	offline := app.NewOfflineSimulator(diff, selector)

	p.scheduler = app.NewScheduler(
		empire, p.registry, selector, combat, diff, offline,
		p.emitter, p.log, p.nextBattleID,
		app.SchedulerConfig{
			BaseInterval: p.cfg.BaseInterval,
			IntervalCap:  p.cfg.IntervalCap,
			HistorySize:  p.cfg.HistorySize,
		},
	)

	p.state = Online
	p.startFlushLoop(ctx)
	p.startTickLoop(ctx)
}

// tick 驱动一次调度：结算到期围城 + 视状态发起新周期，
// 结算完成的记录顺手送外部归档（归档实现自身异步，不阻塞邮箱）。
func (p *EngineActor) tick(ctx actor.Context) {
	results := p.scheduler.Tick(time.Now())
	for _, res := range results {
		if res.Err != nil {
			ctx.Logger().Error("engine cycle error", "reason", res.Reason, "err", res.Err)
		}
		if res.Record != nil && res.Record.Status() == domain.BattleResolved {
			if err := p.archive.Archive(context.TODO(), res.Record); err != nil {
				ctx.Logger().Error("battle archive failed", "battle_id", res.Record.ID(), "err", err)
			}
		}
	}
}

func (p *EngineActor) empire() *domain.Empire {
	return p.dc.Entity()
}

func (p *EngineActor) cityID(id int) domain.CityID {
	return domain.CityID(id)
}

func (p *EngineActor) nextBattleID() int64 {
	id, err := utils.NextSnowflakeID()
	if err != nil {
		// 雪花生成器异常时退回时间戳，保证围城照常建档。
		return time.Now().UnixNano()
	}
	return id
}

func (p *EngineActor) DC() *dc.EmpireDC {
	return p.dc
}

func (p *EngineActor) startFlushLoop(ctx actor.Context) {
	if p.flushStop != nil {
		return
	}
	interval := p.dc.FlushEvery()
	if interval <= 0 {
		return
	}
	p.flushStop = make(chan struct{})
	self := ctx.Self()
	root := ctx.ActorSystem().Root

	go func(stop <-chan struct{}, every time.Duration) {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				root.Send(self, flushTick{})
			case <-stop:
				return
			}
		}
	}(p.flushStop, interval)
}

func (p *EngineActor) stopFlushLoop() {
	if p.flushStop == nil {
		return
	}
	close(p.flushStop)
	p.flushStop = nil
}

func (p *EngineActor) startTickLoop(ctx actor.Context) {
	if p.tickStop != nil {
		return
	}
	p.tickStop = make(chan struct{})
	self := ctx.Self()
	root := ctx.ActorSystem().Root

	go func(stop <-chan struct{}, every time.Duration) {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				root.Send(self, schedulerTick{})
			case <-stop:
				return
			}
		}
	}(p.tickStop, p.cfg.TickInterval)
}

func (p *EngineActor) stopTickLoop() {
	if p.tickStop == nil {
		return
	}
	close(p.tickStop)
	p.tickStop = nil
}
