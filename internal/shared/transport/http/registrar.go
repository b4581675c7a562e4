package http

import "github.com/gin-gonic/gin"

// Registrar 各业务模块把自己的 HTTP 路由挂到统一分组上。
type Registrar interface {
	HttpRegister(g *gin.RouterGroup)
}
