package main

import (
	"context"
	"log"
	"net/http"
	"time"

	api "github.com/koshi-quality/assessment/internal/api/http"
	"github.com/koshi-quality/assessment/internal/config"
	"github.com/koshi-quality/assessment/internal/db"
	"github.com/koshi-quality/assessment/internal/standards"
	"github.com/koshi-quality/assessment/internal/syncx"
	"github.com/koshi-quality/assessment/internal/wizard"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	// --- Session store ---
	var (
		store  wizard.Store
		events *syncx.EventRepo
	)
	switch cfg.SessionStore {
	case "sql":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
		if err != nil {
			log.Fatalf("db open failed: %v", err)
		}
		store = wizard.NewSQLStore(dbh)
		events = syncx.NewEventRepo(dbh)
	default:
		store = wizard.NewInMemoryStore()
	}

	// --- Remote quality-standard API ---
	client := standards.New(standards.Config{
		BaseURL: cfg.StandardsBaseURL,
		Timeout: cfg.StandardsTimeout,
	})

	svc := wizard.NewService(store, client, events, wizard.Options{
		AllowPrevious:   cfg.AllowPrevious,
		ResetOnComplete: cfg.ResetOnComplete,
	})

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Route("/api/wizard", func(wr chi.Router) {
		api.MountWizard(wr, svc, client)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (store=%s, standards=%s)", cfg.HTTPAddr, cfg.SessionStore, cfg.StandardsBaseURL)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
