package handler

import (
	"context"
	nethttp "net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	conquestactor "IdleConquest/internal/conquest/actor"
	"IdleConquest/internal/conquest/dto"
	handlerdto "IdleConquest/internal/conquest/interfaces/handler/dto"
	"IdleConquest/internal/shared/transport"
	"IdleConquest/internal/shared/transport/ws"
)

// ============ Types ============

// Engine 推进引擎的接口门面：HTTP 管查询与操控，WS 管状态订阅，
// 所有调用最终都汇入引擎 actor 的邮箱。
type Engine struct {
	rt *conquestactor.Runtime
}

type WsHandler struct {
	engine *Engine
}

type HttpHandler struct {
	engine *Engine
}

// ============ Constructors ============

func NewEngine(rt *conquestactor.Runtime) *Engine {
	return &Engine{rt: rt}
}

func NewWsHandler(e *Engine) *WsHandler {
	return &WsHandler{engine: e}
}

func NewHttpHandler(e *Engine) *HttpHandler {
	return &HttpHandler{engine: e}
}

// ============ Route Registration ============

func (h *WsHandler) RegisterRoutes(r *ws.Router) {
	engineGroup := r.Group("engine")
	engineGroup.Handle("status", h.Status)
	engineGroup.Handle("attack", h.Attack)
}

func (h *HttpHandler) RegisterRoutes(group *gin.RouterGroup) {
	engineGroup := group.Group("/engine")
	engineGroup.GET("/status", h.Status)
	engineGroup.GET("/statistics", h.Statistics)
	engineGroup.GET("/history", h.History)
	engineGroup.GET("/settings", h.Settings)
	engineGroup.POST("/pause", h.Pause)
	engineGroup.POST("/resume", h.Resume)
	engineGroup.POST("/attack/:cityID", h.Attack)
	engineGroup.POST("/offline", h.OfflineCatchUp)
	engineGroup.POST("/settings", h.UpdateSettings)
	engineGroup.POST("/statistics/reset", h.ResetStatistics)
}

// ============ HTTP Handlers ============

func (h *HttpHandler) Status(c *gin.Context) {
	ctx := c.Request.Context()
	status, err := h.engine.rt.Status(ctx)
	if err != nil {
		h.error(ctx, c, err)
		return
	}
	h.ok(c, status)
}

func (h *HttpHandler) Statistics(c *gin.Context) {
	ctx := c.Request.Context()
	stats, err := h.engine.rt.Statistics(ctx)
	if err != nil {
		h.error(ctx, c, err)
		return
	}
	h.ok(c, stats)
}

func (h *HttpHandler) History(c *gin.Context) {
	ctx := c.Request.Context()
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	records, err := h.engine.rt.History(ctx, limit)
	if err != nil {
		h.error(ctx, c, err)
		return
	}
	h.ok(c, records)
}

func (h *HttpHandler) Settings(c *gin.Context) {
	ctx := c.Request.Context()
	settings, err := h.engine.rt.Settings(ctx)
	if err != nil {
		h.error(ctx, c, err)
		return
	}
	h.ok(c, settings)
}

type pauseReq struct {
	Reason string `json:"reason"`
}

func (h *HttpHandler) Pause(c *gin.Context) {
	ctx := c.Request.Context()

	var req pauseReq
	// 空 body 视为用户主动暂停
	_ = c.ShouldBindJSON(&req)

	if err := h.engine.rt.Pause(ctx, req.Reason); err != nil {
		h.error(ctx, c, err)
		return
	}
	h.ok(c, nil)
}

func (h *HttpHandler) Resume(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.engine.rt.Resume(ctx); err != nil {
		h.error(ctx, c, err)
		return
	}
	h.ok(c, nil)
}

func (h *HttpHandler) Attack(c *gin.Context) {
	ctx := c.Request.Context()

	cityID, err := strconv.Atoi(c.Param("cityID"))
	if err != nil || cityID <= 0 {
		h.fail(c, transport.InvalidParam, "城池参数有误")
		return
	}

	reply, err := h.engine.rt.ManualAttack(ctx, cityID)
	if err != nil {
		h.error(ctx, c, err)
		return
	}
	if !reply.Ok {
		h.rejected(ctx, c, reply.Reason)
		return
	}
	h.ok(c, reply.Record)
}

func (h *HttpHandler) OfflineCatchUp(c *gin.Context) {
	ctx := c.Request.Context()

	reply, err := h.engine.rt.OfflineCatchUp(ctx)
	if err != nil {
		h.error(ctx, c, err)
		return
	}
	if !reply.Ok {
		h.rejected(ctx, c, reply.Reason)
		return
	}
	h.ok(c, reply.Report)
}

func (h *HttpHandler) UpdateSettings(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.AutomationSettings
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, transport.InvalidParam, "参数有误")
		return
	}

	settings, err := h.engine.rt.UpdateSettings(ctx, req)
	if err != nil {
		h.error(ctx, c, err)
		return
	}
	h.ok(c, settings)
}

func (h *HttpHandler) ResetStatistics(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.engine.rt.ResetStatistics(ctx); err != nil {
		h.error(ctx, c, err)
		return
	}
	h.ok(c, nil)
}

// ============ WS Handlers ============

func (h *WsHandler) Status(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	status, err := h.engine.rt.Status(ctx)
	if err != nil {
		h.error(ctx, wsResp, err)
		return
	}
	h.ok(wsResp, status)
}

type wsAttackReq struct {
	CityID int `json:"cityId"`
}

func (h *WsHandler) Attack(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	var req wsAttackReq
	if err := ws.BindJSON(wsReq, &req); err != nil || req.CityID <= 0 {
		h.fail(wsResp, transport.InvalidParam, "城池参数有误")
		return
	}

	reply, err := h.engine.rt.ManualAttack(ctx, req.CityID)
	if err != nil {
		h.error(ctx, wsResp, err)
		return
	}
	if !reply.Ok {
		code, msg := mapReason(reply.Reason)
		transport.SetErrorReason(ctx, reply.Reason)
		h.fail(wsResp, code, msg)
		return
	}
	h.ok(wsResp, reply.Record)
}

// ============ Response Helpers ============

func (h *HttpHandler) ok(c *gin.Context, data any) {
	c.JSON(nethttp.StatusOK, handlerdto.Success(transport.OK, data))
}

func (h *HttpHandler) fail(c *gin.Context, code int, msg string) {
	c.JSON(nethttp.StatusOK, handlerdto.Error(code, msg))
}

func (h *HttpHandler) rejected(ctx context.Context, c *gin.Context, reason string) {
	transport.SetErrorReason(ctx, reason)
	code, msg := mapReason(reason)
	c.JSON(nethttp.StatusOK, handlerdto.Rejected(code, reason, msg))
}

func (h *HttpHandler) error(ctx context.Context, c *gin.Context, err error) {
	code, msg := mapTechErr(ctx, err)
	h.fail(c, code, msg)
}

func (h *WsHandler) ok(resp *ws.WsMsgResp, data any) {
	if resp == nil || resp.Body == nil {
		return
	}
	resp.Body.Code = transport.OK
	resp.Body.Msg = data
}

func (h *WsHandler) fail(resp *ws.WsMsgResp, code int, msg string) {
	if resp == nil || resp.Body == nil {
		return
	}
	resp.Body.Code = code
	if msg != "" {
		resp.Body.Msg = msg
	}
}

func (h *WsHandler) error(ctx context.Context, resp *ws.WsMsgResp, err error) {
	code, msg := mapTechErr(ctx, err)
	h.fail(resp, code, msg)
}
