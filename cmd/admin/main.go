package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"nemukerja/internal/core/auth"
	"nemukerja/internal/core/config"
	"nemukerja/internal/core/database"
	"nemukerja/internal/core/logger"
	"nemukerja/internal/core/mailer"
	"nemukerja/internal/core/server"
	"nemukerja/internal/repo"
	"nemukerja/internal/service"
	"nemukerja/internal/transport/http/router"
)

func main() {
	createAdmin := flag.String("create-admin", "", "seed an admin account, format email:password, then exit")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	db := mustOpenDB(cfg, log)
	repos := repo.New(db)
	if cfg.DB.AutoMigrate {
		if err := repos.AutoMigrate(); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
	}

	jwter := &auth.JWTer{
		Secret:   []byte(cfg.JWT.Secret),
		Issuer:   cfg.JWT.Issuer,
		TTL:      time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
		ResetTTL: time.Duration(cfg.JWT.ResetTokenTTLMin) * time.Minute,
	}

	if *createAdmin != "" {
		email, password, ok := strings.Cut(*createAdmin, ":")
		if !ok || email == "" || password == "" {
			log.Fatal("bad -create-admin value, want email:password")
		}
		acct := service.NewAccount(repos, jwter, mailer.Noop{}, cfg.App.BaseURL, log)
		u, err := acct.CreateAdmin(context.Background(), email, password)
		if err != nil {
			log.Fatal("create admin", zap.Error(err))
		}
		log.Info("admin created", zap.String("id", u.ID), zap.String("email", u.Email))
		return
	}

	r := router.NewAdminEngine(log, jwter, service.NewAdminView(repos))

	addr := server.Addr(cfg.App.Admin.Host, cfg.App.Admin.Port)
	srv := server.BuildServer(addr, r, 10*time.Second, 10*time.Second, 60*time.Second)

	log.Info("admin api starting", zap.String("addr", addr))
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("admin api start FAILED", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("admin api stopped gracefully")
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}
