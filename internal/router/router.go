package router

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angkringan-pos/admin-api/internal/config"
	"github.com/angkringan-pos/admin-api/internal/dashboard"
	"github.com/angkringan-pos/admin-api/internal/enum"
	"github.com/angkringan-pos/admin-api/internal/handler"
	mw "github.com/angkringan-pos/admin-api/internal/middleware"
	"github.com/angkringan-pos/admin-api/internal/upstream"
	"github.com/angkringan-pos/admin-api/internal/ws"
)

// New creates a Chi router with one route group per management screen.
// Authentication and role checks mirror the upstream's admin/manager
// split: managers see everything except account management and the audit
// log.
func New(cfg *config.Config, client *upstream.Client, dash *dashboard.Service, hub *ws.Hub) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(mw.Metrics)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{
			"http://localhost:3000", // React dev server
			"http://localhost:5173", // Vite dev server
		},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","version":"1.0.0"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	// WebSocket route (handles auth internally via query param)
	r.Get("/ws/dashboard", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, cfg.JWTSecret, w, r)
	})

	// Protected screens (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.JWTSecret))

		// Admin-only screens
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireRole(enum.RoleAdmin))

			userHandler := handler.NewUserHandler(client)
			r.Route("/screens/users", userHandler.RegisterRoutes)

			customerHandler := handler.NewCustomerHandler(client)
			r.Route("/screens/customers", customerHandler.RegisterRoutes)

			logHandler := handler.NewLogHandler(client)
			r.Route("/screens/logs", logHandler.RegisterRoutes)
		})

		// Screens shared by admins and managers
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireRole(enum.RoleAdmin, enum.RoleManager))

			dashboardHandler := handler.NewDashboardHandler(dash)
			r.Route("/screens/dashboard", dashboardHandler.RegisterRoutes)

			menuHandler := handler.NewMenuHandler(client)
			r.Route("/screens/menus", menuHandler.RegisterRoutes)

			stockHandler := handler.NewStockHandler(client)
			r.Route("/screens/stocks", stockHandler.RegisterRoutes)

			promoHandler := handler.NewPromoHandler(client)
			r.Route("/screens/promos", promoHandler.RegisterRoutes)

			reviewHandler := handler.NewReviewHandler(client)
			r.Route("/screens/reviews", reviewHandler.RegisterRoutes)

			transactionHandler := handler.NewTransactionHandler(client)
			r.Route("/screens/transactions", transactionHandler.RegisterRoutes)
		})
	})

	log.Println("Router initialized with all screens")
	return r
}
