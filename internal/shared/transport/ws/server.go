package ws

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"IdleConquest/modules/kit/logx"
)

type Server struct {
	router *Router
	hub    *Hub
	log    logx.Logger
}

func NewServer(r *Router, hub *Hub, l logx.Logger) *Server {
	return &Server{
		router: r,
		hub:    hub,
		log:    l,
	}
}

func (s *Server) Hub() *Hub {
	return s.hub
}

func (s *Server) ServeHTTP(resp http.ResponseWriter, req *http.Request) {
	upgrader := websocket.Upgrader{
		// 允许所有CORS跨域请求
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
	wsConn, err := upgrader.Upgrade(resp, req, nil)
	if err != nil {
		s.log.Error("websocket upgrade error", zap.Error(err))
		return
	}

	s.log.Info("websocket upgrade success")

	wsServer := NewWsServer(wsConn, s.log)
	wsServer.Router(s.router)
	wsServer.Run()
	if s.hub != nil {
		s.hub.Add(wsServer)
	}
}
