package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/hr_management/configs"
	"github.com/hr_management/internal/routes"
	"github.com/hr_management/internal/services"
	"github.com/hr_management/pkg/db"
	"github.com/hr_management/pkg/email"
	"github.com/hr_management/pkg/logging"
)

// @title HR Management API
// @version 1.0
// @description Employee management, rotating QR clock-in, attendance and salary overview.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	configs.LoadConfig()
	cfg := configs.AppConfig
	logging.Setup(cfg.LogLevel, cfg.Env)
	displayAppname(cfg.AppName)
	if logging.SetupRollbar(cfg.RollbarToken, cfg.Env) {
		defer logging.CloseRollbar()
	}

	// 初始化数据库连接
	db.InitDB(cfg.DBPath)
	defer db.CloseDB() // 确保在 main 函数退出时关闭数据库连接

	if cfg.Env != "DEV" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(logging.GinLogger(), gin.Recovery())
	if cfg.RollbarToken != "" {
		router.Use(logging.ErrorReporter())
	}

	deps := routes.Dependencies{DB: db.GetDB(), Config: cfg, Notifier: newNotifier(cfg)}
	routes.SetupRoutes(router, deps)

	server := newServer(":"+cfg.ServerPort, router)
	go listenAndServe(server)
	waitForStopSignal()
	if err := shutdown(server); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server stopped")
}

// newNotifier 优先使用 SendGrid，其次 SMTP；都未配置时不发送审批邮件
func newNotifier(cfg configs.Configuration) services.ApprovalNotifier {
	if sender := email.NewSendgridSender(cfg.SendgridAPIKey, cfg.SMTP.Sender, cfg.AppName); sender != nil {
		log.Info().Msg("审批通知邮件通过 SendGrid 发送")
		return sender
	}
	if sender := email.NewSender(cfg.SMTP, cfg.AppName); sender != nil {
		return sender
	}
	log.Info().Msg("SMTP 未配置，审批通知邮件已禁用")
	return nil
}

// newServer 不设置 WriteTimeout，二维码刷新流是长连接。
// 所有请求的 context 派生自 baseCtx，Shutdown 时取消，SSE 流随之结束，
// 否则 Shutdown 会一直等到超时。
func newServer(addr string, handler http.Handler) *http.Server {
	baseCtx, cancel := context.WithCancel(context.Background())
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}
	server.RegisterOnShutdown(cancel)
	return server
}

func listenAndServe(server *http.Server) {
	log.Info().Str("addr", server.Addr).Msg("Server starting...")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Failed to run server")
	}
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
