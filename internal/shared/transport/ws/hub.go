package ws

import (
	"sync"
)

// Hub 管理全部在线连接，用于服务端主动推送（战报、难度变化等）。
// 每条连接有自己的发送队列，Broadcast 不会被慢连接拖住。
type Hub struct {
	mu    sync.RWMutex
	conns map[WSConn]struct{}
}

func NewHub() *Hub {
	return &Hub{conns: make(map[WSConn]struct{})}
}

func (h *Hub) Add(c WSConn) {
	if c == nil {
		return
	}
	h.mu.Lock()
	h.conns[c] = struct{}{}
	h.mu.Unlock()

	// 连接关闭时自动摘除，调用方不需要管理生命周期。
	go func() {
		<-c.Done()
		h.Remove(c)
	}()
}

func (h *Hub) Remove(c WSConn) {
	h.mu.Lock()
	delete(h.conns, c)
	h.mu.Unlock()
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

func (h *Hub) Broadcast(name string, data any) {
	h.mu.RLock()
	conns := make([]WSConn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	for _, c := range conns {
		c.Push(name, data)
	}
}
