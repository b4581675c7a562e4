package actors

import (
	"reflect"

	"github.com/asynkron/protoactor-go/actor"
)

type Dispatcher struct {
	handlers map[reflect.Type]Handler
}

type Handler struct {
	fn      reflect.Value
	reqType reflect.Type
}

func NewDispatcher() *Dispatcher {
	d := &Dispatcher{
		handlers: make(map[reflect.Type]Handler),
	}
	d.registerAll()
	return d
}

func (d *Dispatcher) registerAll() {
	register(d, EH.HandleStatus)
	register(d, EH.HandlePause)
	register(d, EH.HandleResume)
	register(d, EH.HandleManualAttack)
	register(d, EH.HandleOfflineCatchUp)
	register(d, EH.HandleHistory)
	register(d, EH.HandleStatistics)
	register(d, EH.HandleResetStatistics)
	register(d, EH.HandleUpdateSettings)
	register(d, EH.HandleSettings)
}

func register[Req any](
	d *Dispatcher,
	fn func(ctx actor.Context, p *EngineActor, req Req),
) {
	reqType := reflect.TypeOf((*Req)(nil)).Elem()
	if reqType == nil {
		panic("dispatcher req type cannot be nil")
	}

	d.handlers[reqType] = Handler{
		fn:      reflect.ValueOf(fn),
		reqType: reqType,
	}
}

func (d *Dispatcher) Dispatch(ctx actor.Context, p *EngineActor, req Command) {
	if req == nil {
		ctx.Respond(replyFail("NIL_REQUEST", "nil req"))
		return
	}

	bodyType := reflect.TypeOf(req)
	handler, ok := d.handlers[bodyType]
	if !ok {
		ctx.Respond(replyFail("NO_HANDLER", "no handler for request body"))
		return
	}

	if bodyType != handler.reqType {
		ctx.Respond(replyFail("TYPE_MISMATCH", "request body type mismatch"))
		return
	}

	handler.fn.Call([]reflect.Value{
		reflect.ValueOf(ctx),
		reflect.ValueOf(p),
		reflect.ValueOf(req),
	})
}
