package main

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/JulesSitpach/tradenavigatorpro/internal/config"
	"github.com/JulesSitpach/tradenavigatorpro/internal/db"
	"github.com/JulesSitpach/tradenavigatorpro/internal/history"
	"github.com/JulesSitpach/tradenavigatorpro/internal/migrations"
	"github.com/JulesSitpach/tradenavigatorpro/internal/store"
)

func main() {
	cfg := config.Load()
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open database")
	}
	defer database.Close()

	if err := migrations.Up(database); err != nil {
		logger.Fatal().Err(err).Msg("failed to run database migrations")
	}

	auth := newAuthService(database, cfg.SessionSecret)
	if err := auth.ensureAdminUser(cfg.AdminEmail, cfg.AdminPassword); err != nil {
		logger.Fatal().Err(err).Msg("failed to ensure admin user")
	}

	var cache store.ResultStore = store.NewMemoryStore()
	if cfg.RedisAddr != "" {
		cache = store.NewRedisStore(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
		logger.Info().Str("addr", cfg.RedisAddr).Msg("using redis result cache")
	}

	srv := &server{
		auth:     auth,
		history:  history.New(database),
		cache:    cache,
		cacheTTL: cfg.CacheTTL,
		log:      logger,
	}

	r := chi.NewRouter()
	r.Get("/healthz", srv.handleHealth)
	r.Post("/api/login", srv.handleLogin)
	r.Post("/api/logout", srv.handleLogout)
	r.Post("/api/costs/calculate", srv.handleCostCalculate)
	r.Group(func(r chi.Router) {
		r.Use(srv.requireAuth)
		r.Post("/api/pricing/optimize", srv.handleOptimize)
		r.Get("/api/optimizations", srv.handleOptimizationsList)
	})

	addr := ":" + cfg.Port
	logger.Info().Str("addr", addr).Msg("listening")
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
