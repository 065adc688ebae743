package router

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	mem "pet-adoption-backend/internal/adapters/storage/memory"
	pg "pet-adoption-backend/internal/adapters/storage/postgres"
	"pet-adoption-backend/internal/domain/adoptions"
	"pet-adoption-backend/internal/domain/pets"
	"pet-adoption-backend/internal/domain/stats"
	"pet-adoption-backend/internal/middleware"
	"pet-adoption-backend/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: rate limit sobre la creación de solicitudes.
	RateLimiter middleware.Limiter
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	var (
		petRepo      pets.Repository
		adoptionRepo adoptions.Repository
		statsSource  stats.Source
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			}
		}
	}

	if db != nil {
		petRepo = pg.NewPetsRepo(db)
		adoptionRepo = pg.NewAdoptionsRepo(db)
		statsSource = pg.NewStatsRepo(db)
	} else {
		store := mem.NewStore()
		petRepo = store.Pets()
		adoptionRepo = store.Adoptions()
		statsSource = store.Stats()
	}

	// Services por módulo
	petsSvc := pets.NewService(petRepo)
	adoptionsSvc := adoptions.NewService(adoptionRepo)
	engine := adoptions.NewEngine(adoptionRepo)
	statsSvc := stats.NewService(statsSource)

	var limiter func(http.Handler) http.Handler
	if opts.RateLimiter != nil {
		limiter = middleware.RateLimit(opts.RateLimiter, middleware.ClaimsKey, 5, time.Minute)
	}

	// Rutas por módulo
	pets.RegisterRoutes(r, petsSvc)
	adoptions.RegisterRoutes(r, adoptionsSvc, engine, limiter)
	stats.RegisterRoutes(r, statsSvc)

	return r
}
