package main

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"wayfarer/internal/adapters/gemini"
	server "wayfarer/internal/adapters/http_server"
	"wayfarer/internal/adapters/observability"
	redisad "wayfarer/internal/adapters/redis"
	"wayfarer/internal/planner"
	"wayfarer/internal/shared"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve(cfg.MetricsAddr)

	// generation backend; missing credential is fatal before any call
	gen, err := gemini.New(context.Background(), cfg.GeminiKey, cfg.GeminiModel, cfg.GenRPS, cfg.GenTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("gemini client init failed")
	}

	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	svc := planner.NewService(gen, cache, cfg.CacheTTL)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{P: svc})

	log.Info().Str("addr", cfg.HTTPAddr).Str("model", cfg.GeminiModel).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
