package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	httpctx "github.com/todoweb/todoweb/internal/api/http/context"
	"github.com/todoweb/todoweb/internal/api/http/router"
	httpServer "github.com/todoweb/todoweb/internal/api/http/server"
	"github.com/todoweb/todoweb/internal/config"
	"github.com/todoweb/todoweb/internal/logger"
	"github.com/todoweb/todoweb/internal/model"
	"github.com/todoweb/todoweb/internal/password"
	"github.com/todoweb/todoweb/internal/repository/postgres"
	"github.com/todoweb/todoweb/internal/server"
	"github.com/todoweb/todoweb/internal/service"
	"github.com/todoweb/todoweb/internal/token"
	"github.com/todoweb/todoweb/web"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	todoRepo := postgres.NewTodoRepository(db)

	hasher := password.NewHasher()
	tokenManager := token.NewJWT(cfg.Session.Secret, cfg.Session.TTL)
	ctxMgr := httpctx.NewManager()

	authService := service.NewAuth(userRepo, hasher, tokenManager, logger)
	sessionGate := service.NewSessionGate(userRepo, tokenManager, logger)
	todoService := service.NewTodo(todoRepo, logger)

	renderer, err := web.NewRenderer()
	if err != nil {
		logger.Fatal("failed to parse templates", "error", err)
	}

	r := router.New(authService, todoService, sessionGate, ctxMgr, renderer, cfg.HTTP.EnableHTTPS, logger)
	srv := httpServer.NewHTTPServer(r.Register(), cfg.HTTP.Address)

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
