package main

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	conquestactor "IdleConquest/internal/conquest/actor"
	"IdleConquest/internal/conquest/actors"
	"IdleConquest/internal/conquest/app"
	"IdleConquest/internal/conquest/app/port"
	conquestmemory "IdleConquest/internal/conquest/infra/persistence/memory"
	conquestmongo "IdleConquest/internal/conquest/infra/persistence/mongodb"
	conquestmysql "IdleConquest/internal/conquest/infra/persistence/mysql"
	"IdleConquest/internal/conquest/infra/registry"
	"IdleConquest/internal/conquest/interfaces"
	"IdleConquest/internal/shared/gameconfig/cities"
	shareddb "IdleConquest/internal/shared/infrastructure/db"
	sharedmongo "IdleConquest/internal/shared/infrastructure/mongo"
	"IdleConquest/internal/shared/logs"
	"IdleConquest/internal/shared/serverconfig"
	"IdleConquest/internal/shared/transport/http/middleware"
	transporthttp "IdleConquest/internal/shared/transport/http"
	"IdleConquest/internal/shared/transport/ws"
	"IdleConquest/modules/kit/logx"
)

func main() {
	serverconfig.Load()
	if err := logs.Init("engine", serverconfig.Conf.Log); err != nil {
		panic(err)
	}
	logs.Info("conf", zap.Any("conf", serverconfig.Conf))

	cities.Load()

	baseLogger := logx.NewZapLogger(logs.Logger())

	httpHost := serverconfig.Conf.HTTPServer.Host
	if httpHost == "" {
		httpHost = "0.0.0.0"
	}
	httpAddr := fmt.Sprintf("%s:%d", httpHost, serverconfig.Conf.HTTPServer.Port)

	// 存档仓库：没开数据库就退化为内存模式（开发/演示用）。
	var empireRepo port.EmpireRepository
	if serverconfig.Conf.MySQL.Enabled {
		gormDB, err := shareddb.Open(serverconfig.Conf.MySQL)
		if err != nil {
			logs.Fatal("open mysql failed", zap.Error(err))
		}
		empireRepo = conquestmysql.NewEmpireRepo(gormDB, serverconfig.Conf.Empire)
	} else {
		empireRepo = conquestmemory.NewEmpireRepo(serverconfig.Conf.Empire)
	}

	var archive port.HistoryArchive
	var archiveCloser interface {
		Close(ctx context.Context) error
	}
	if serverconfig.Conf.MongoDB.Enabled {
		mongoClient, err := sharedmongo.Open(serverconfig.Conf.MongoDB, logs.Logger())
		if err != nil {
			logs.Fatal("open mongodb failed", zap.Error(err))
		}
		defer func() {
			_ = mongoClient.Disconnect(context.Background())
		}()
		mongoArchive := conquestmongo.NewHistoryArchive(mongoClient.Database(serverconfig.Conf.MongoDB.Database))
		archive = mongoArchive
		archiveCloser = mongoArchive
	} else {
		archive = conquestmemory.NewHistoryArchive()
	}

	cityRegistry := registry.NewCityRegistry(cities.Definitions())
	emitter := app.NewEmitter()

	engineCfg := serverconfig.Conf.Engine
	rt := conquestactor.NewRuntime(
		empireRepo,
		cityRegistry,
		archive,
		emitter,
		baseLogger,
		actors.EngineConfig{
			EmpireID:      engineCfg.EmpireID,
			ScalingFactor: engineCfg.ScalingFactor,
			TickInterval:  time.Duration(engineCfg.TickMS) * time.Millisecond,
			BaseInterval:  time.Duration(engineCfg.BaseIntervalMS) * time.Millisecond,
			IntervalCap:   time.Duration(engineCfg.IntervalCapMS) * time.Millisecond,
			HistorySize:   engineCfg.HistorySize,
		},
		time.Duration(engineCfg.AskTimeoutMS)*time.Millisecond,
	)
	defer rt.Shutdown()

	engineModule := interfaces.New(rt)

	httpServer := transporthttp.NewHttpServer(httpAddr, nil, baseLogger)
	apiGroup := httpServer.Group().Group("/api")
	apiGroup.Use(middleware.JWTAuth())
	httpModules := []transporthttp.Registrar{
		engineModule,
	}
	for _, m := range httpModules {
		m.HttpRegister(apiGroup)
	}

	wsRouter := ws.NewRouter(baseLogger)
	wsModules := []ws.Registrar{
		engineModule,
	}
	for _, m := range wsModules {
		m.WsRegister(wsRouter)
	}

	hub := ws.NewHub()
	engineModule.BindHub(hub, emitter)

	wsServer := ws.NewServer(wsRouter, hub, baseLogger)
	httpServer.Engine().Any("/ws", gin.WrapH(wsServer))
	httpServer.Engine().Any("/ws/*any", gin.WrapH(wsServer))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logs.Info("engine http server started", zap.String("addr", httpAddr))
		if err := httpServer.Start(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			errCh <- fmt.Errorf("engine server start failed: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		logs.Info("收到退出信号，准备优雅退出")
	case err := <-errCh:
		if err != nil {
			logs.Error("服务异常退出", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(shutdownCtx)
	if archiveCloser != nil {
		_ = archiveCloser.Close(shutdownCtx)
	}
}
