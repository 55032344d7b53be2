// Package router sets up all HTTP routes and middleware chains for the
// FUNews API. Reads of the public catalogue are anonymous; everything else
// is grouped behind role checks.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"funews/internal/handlers"
	"funews/internal/metrics"
	"funews/internal/middleware"
	"funews/internal/models"
	"funews/internal/respond"
)

// Deps carries everything the router wires together.
type Deps struct {
	Tokens       middleware.TokenValidator
	Revocations  middleware.RevocationChecker
	LoginLimiter *middleware.RateLimiter
	DB           handlers.Pinger
	CORSOrigins  []string

	Auth         *handlers.Auth
	Accounts     *handlers.Accounts
	Categories   *handlers.Categories
	Tags         *handlers.Tags
	NewsArticles *handlers.NewsArticles
	Reports      *handlers.Reports
}

var (
	adminOnly    = middleware.RequireRoles(models.RoleAdmin)
	adminOrStaff = middleware.RequireRoles(models.RoleAdmin, models.RoleStaff)
	staffOnly    = middleware.RequireRoles(models.RoleStaff)
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.CORS(d.CORSOrigins))
	r.Use(middleware.Authenticate(d.Tokens, d.Revocations))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respond.Message(w, http.StatusNotFound, "Resource not found.")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respond.Message(w, http.StatusMethodNotAllowed, "Method not allowed.")
	})

	// Health and metrics: no auth.
	r.Get("/health", handlers.Health(d.DB))
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				if d.LoginLimiter != nil {
					r.Use(d.LoginLimiter.Middleware)
				}
				r.Post("/login", d.Auth.Login)
				r.Post("/register", d.Auth.Register)
			})
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Get("/profile", d.Auth.Profile)
				r.Put("/profile", d.Auth.UpdateProfile)
				r.Post("/logout", d.Auth.Logout)
			})
		})

		// Account management: admin only.
		r.Route("/account", func(r chi.Router) {
			r.Use(adminOnly)
			r.Get("/", d.Accounts.List)
			r.Post("/", d.Accounts.Create)
			r.Get("/search", d.Accounts.Search)
			r.Get("/{id}", d.Accounts.Get)
			r.Put("/{id}", d.Accounts.Update)
			r.Delete("/{id}", d.Accounts.Delete)
			r.Get("/{id}/can-delete", d.Accounts.CanDelete)
		})

		r.Route("/category", func(r chi.Router) {
			r.Get("/", d.Categories.List)
			r.Get("/active", d.Categories.ListActive)
			r.Get("/search", d.Categories.Search)
			r.Get("/{id}", d.Categories.Get)
			r.Get("/{id}/subcategories", d.Categories.Subcategories)

			r.With(adminOrStaff).Get("/{id}/can-delete", d.Categories.CanDelete)
			r.With(adminOrStaff).Post("/", d.Categories.Create)
			r.With(adminOrStaff).Put("/{id}", d.Categories.Update)
			r.With(adminOnly).Delete("/{id}", d.Categories.Delete)
		})

		r.Route("/tag", func(r chi.Router) {
			r.Get("/", d.Tags.List)
			r.Get("/search", d.Tags.Search)
			r.Get("/{id}", d.Tags.Get)

			r.With(adminOrStaff).Post("/", d.Tags.Create)
			r.With(adminOrStaff).Put("/{id}", d.Tags.Update)
			r.With(adminOnly).Delete("/{id}", d.Tags.Delete)
		})

		r.Route("/newsarticle", func(r chi.Router) {
			r.Get("/", d.NewsArticles.List)
			r.Get("/active", d.NewsArticles.ListActive)
			r.Get("/search", d.NewsArticles.Search)
			r.Get("/date-range", d.NewsArticles.ByDateRange)
			r.Get("/category/{categoryId}", d.NewsArticles.ByCategory)
			r.Get("/tag/{tagId}", d.NewsArticles.ByTag)
			r.Get("/{id}", d.NewsArticles.Get)

			r.With(adminOrStaff).Get("/staff/{accountId}", d.NewsArticles.ByStaff)
			r.With(staffOnly).Get("/my-articles", d.NewsArticles.Mine)
			r.With(staffOnly).Post("/", d.NewsArticles.Create)
			r.With(adminOrStaff).Put("/{id}", d.NewsArticles.Update)
			r.With(adminOnly).Delete("/{id}", d.NewsArticles.Delete)
		})

		// Reports: admin only.
		r.Route("/report", func(r chi.Router) {
			r.Use(adminOnly)
			r.Get("/statistics", d.Reports.Statistics)
			r.Get("/news-by-staff", d.Reports.NewsByStaff)
			r.Get("/news-by-category", d.Reports.NewsByCategory)
			r.Get("/top-authors", d.Reports.TopAuthors)
		})
	})

	return r
}
