package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"time"

	"pet-adoption-backend/internal/adapters/auth/jwtauth"
	"pet-adoption-backend/internal/adapters/storage/postgres"
	"pet-adoption-backend/internal/middleware"
	"pet-adoption-backend/internal/platform/logger"
	"pet-adoption-backend/internal/ports/auth"
	"pet-adoption-backend/internal/router"

	_ "pet-adoption-backend/docs"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	// .env opcional; en producción las vars vienen del entorno
	_ = godotenv.Load()

	log := logger.NewFromEnv()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	var db *sql.DB
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		opened, err := postgres.Open(dsn)
		if err != nil {
			log.Error("postgres open failed", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
		db = opened

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := postgres.Apply(ctx, db); err != nil {
			cancel()
			log.Error("migrations failed", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
		cancel()
		log.Info("postgres ready", nil)
	} else {
		log.Warn("DB_DSN not set, using in-memory store", nil)
	}

	var verifier auth.AuthVerifier
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		verifier = jwtauth.NewVerifier(secret)
	} else {
		log.Warn("JWT_SECRET not set, running in dev auth mode (X-Debug-User-ID)", nil)
	}

	var limiter middleware.Limiter
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: redisAddr})
		limiter = middleware.NewRedisLimiter(client)
		log.Info("rate limit via redis", map[string]any{"addr": redisAddr})
	} else {
		limiter = middleware.NewMemoryLimiter()
	}

	r := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		DB:           db,
		RateLimiter:  limiter,
	})

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"err": err.Error()})
		os.Exit(1)
	}
}
