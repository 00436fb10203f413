package main

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/crucial707/recipe-api/internal/auth"
	"github.com/crucial707/recipe-api/internal/config"
	"github.com/crucial707/recipe-api/internal/dto"
	"github.com/crucial707/recipe-api/internal/handlers"
	"github.com/crucial707/recipe-api/internal/middleware"
	"github.com/crucial707/recipe-api/internal/repo"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// stores is the persistence surface the router needs, independent of backend.
type stores struct {
	users   repo.UserStore
	recipes repo.RecipeStore
	audit   repo.AuditStore
	ping    func(ctx context.Context) error
}

func postgresStores(db *sql.DB) stores {
	return stores{
		users:   repo.NewUserRepo(db),
		recipes: repo.NewRecipeRepo(db),
		audit:   repo.NewAuditRepo(db),
		ping:    db.PingContext,
	}
}

var (
	userShape   = dto.For(dto.FetchUser)
	recipeShape = dto.For(dto.FetchRecipe)
)

// newRouter builds the full HTTP handler. Every route is composed as
// guard -> endpoint -> projector.
func newRouter(st stores, cfg config.Config) http.Handler {
	authSvc := auth.NewService(st.users, []byte(cfg.JWTSecret), time.Duration(cfg.JWTExpireHours)*time.Hour)

	authHandler := &handlers.AuthHandler{Auth: authSvc}
	recipeHandler := &handlers.RecipeHandler{Store: st.recipes, Audit: st.audit}
	auditHandler := &handlers.AuditHandler{Repo: st.audit}

	bearer := middleware.Bearer(authSvc)
	credentials := middleware.Credentials(authSvc)
	limiter := middleware.AuthRateLimiter()
	maxBody := middleware.MaxBytes(0)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	if cfg.TrustProxyHeaders {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.RequestLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(cfg.TLSCertFile != ""))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	// ==========================
	// Probes and metrics
	// ==========================
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := st.ping(ctx); err != nil {
			handlers.JSONError(w, "not ready", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ready"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	// ==========================
	// Auth
	// ==========================
	r.Route("/auth", func(r chi.Router) {
		r.With(limiter.Middleware, maxBody, credentials).
			Post("/login", handlers.Expose(authHandler.Login, dto.Identity))
		r.With(limiter.Middleware, maxBody).
			Post("/register", handlers.Expose(authHandler.Register, userShape))
		r.With(bearer).
			Get("/profile", handlers.Expose(authHandler.Profile, userShape))
	})

	// ==========================
	// Recipes (reads are public)
	// ==========================
	r.Route("/recipes", func(r chi.Router) {
		r.Get("/", handlers.Expose(recipeHandler.FindAll, recipeShape))
		r.Get("/{id}", handlers.Expose(recipeHandler.FindOne, recipeShape))

		r.Group(func(r chi.Router) {
			r.Use(bearer)
			r.With(maxBody).Post("/", handlers.Expose(recipeHandler.Create, recipeShape))
			r.With(maxBody).Patch("/{id}", handlers.Expose(recipeHandler.Update, recipeShape))
			r.Delete("/{id}", handlers.Expose(recipeHandler.Remove, recipeShape))
		})
	})

	// ==========================
	// Audit
	// ==========================
	r.With(bearer).Get("/audit", handlers.Expose(auditHandler.List, dto.Identity))

	return r
}
