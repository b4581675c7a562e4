package interfaces

import (
	"github.com/gin-gonic/gin"

	conquestactor "IdleConquest/internal/conquest/actor"
	"IdleConquest/internal/conquest/app"
	"IdleConquest/internal/conquest/interfaces/handler"
	transporthttp "IdleConquest/internal/shared/transport/http"
	"IdleConquest/internal/shared/transport/ws"
)

type Module struct {
	wsHandler   *handler.WsHandler
	httpHandler *handler.HttpHandler
}

func New(rt *conquestactor.Runtime) *Module {
	engine := handler.NewEngine(rt)
	return &Module{
		wsHandler:   handler.NewWsHandler(engine),
		httpHandler: handler.NewHttpHandler(engine),
	}
}

func (m *Module) WsRegister(r *ws.Router) {
	m.wsHandler.RegisterRoutes(r)
}

func (m *Module) HttpRegister(g *gin.RouterGroup) {
	m.httpHandler.RegisterRoutes(g)
}

// BindHub 把引擎事件接到 WS 推送：订阅回调跑在引擎线程内，
// Push 只入连接队列不等网络，不会拖住引擎。
func (m *Module) BindHub(hub *ws.Hub, emitter *app.Emitter) {
	if hub == nil || emitter == nil {
		return
	}
	emitter.Subscribe(func(ev app.Event) {
		hub.Broadcast("engine."+ev.EventName(), ev)
	})
}

var _ ws.Registrar = (*Module)(nil)
var _ transporthttp.Registrar = (*Module)(nil)
