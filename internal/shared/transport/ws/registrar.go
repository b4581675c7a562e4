package ws

// Registrar 各业务模块把自己的 WS 路由挂到统一路由器上。
type Registrar interface {
	WsRegister(r *Router)
}
