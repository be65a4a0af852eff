// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"bankpanel/internal/audit"
	"bankpanel/internal/auth"
	authhandler "bankpanel/internal/auth/handler"
	"bankpanel/internal/auth/revocation"
	authservice "bankpanel/internal/auth/service"
	authstore "bankpanel/internal/auth/store"
	"bankpanel/internal/client"
	clienthandler "bankpanel/internal/client/handler"
	clientservice "bankpanel/internal/client/service"
	clientstore "bankpanel/internal/client/store"
	"bankpanel/internal/client/validate"
	jwttoken "bankpanel/internal/jwt_token"
	"bankpanel/internal/platform/config"
	"bankpanel/internal/platform/httpserver"
	"bankpanel/internal/platform/logger"
	"bankpanel/internal/platform/metrics"
	"bankpanel/internal/platform/middleware"
	"bankpanel/internal/platform/postgres"
	platformredis "bankpanel/internal/platform/redis"
	httptransport "bankpanel/internal/transport/http"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Stores fall back to in-memory implementations when no URL is set.
	var clientStore client.Store = clientstore.NewInMemory()
	var userStore auth.UserStore = authstore.NewInMemory()
	if cfg.DatabaseURL != "" {
		pool, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("postgres connection failed", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		if err := postgres.ApplySchema(ctx, pool); err != nil {
			log.Error("schema apply failed", "error", err)
			os.Exit(1)
		}
		clientStore = clientstore.NewPostgres(pool)
		userStore = authstore.NewPostgres(pool)
	}

	var revocationStore interface {
		middleware.RevocationChecker
		authservice.Revoker
	} = revocation.NewInMemory()
	if cfg.RedisURL != "" {
		redisClient, err := platformredis.New(cfg.RedisURL)
		if err != nil {
			log.Error("redis connection failed", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		revocationStore = revocation.NewRedis(redisClient.Client)
	}

	publisher := audit.NewPublisher(256, log)
	worker := audit.NewWorker(audit.NewInMemoryStore(), publisher.Inbox(), log)
	go worker.Run(ctx)

	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer)
	validatorAdapter := jwttoken.NewMiddlewareAdapter(jwtService)

	authService := authservice.New(userStore, jwtService, revocationStore, cfg.TokenTTL)
	clientService := clientservice.New(clientStore, publisher, m)
	checker := validate.NewChecker(clientStore)

	router := httptransport.NewRouter(
		clienthandler.New(clientService, checker, log),
		authhandler.New(authService, log),
		validatorAdapter,
		revocationStore,
		m,
		log,
	)

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting bankpanel", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
