package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/labcloud/internal/application/ports"
	"github.com/amirhosseinghanipour/labcloud/internal/infrastructure/http/handlers"
	"github.com/amirhosseinghanipour/labcloud/internal/infrastructure/http/middleware"
)

type RouterConfig struct {
	ApplianceHandler  *handlers.ApplianceHandler
	WaterLevelHandler *handlers.WaterLevelHandler
	DeviceHandler     *handlers.DeviceHandler
	APIConfigHandler  *handlers.APIConfigHandler
	ProjectHandler    *handlers.ProjectHandler
	CommandHandler    *handlers.CommandHandler
	AdminHandler      *handlers.AdminHandler
	HealthHandler     *handlers.HealthHandler
	RequireSession    func(http.Handler) http.Handler // bearer session for browser routes
	RequireAdmin      func(http.Handler) http.Handler // X-Admin-Secret for /admin and status override
	Governor          ports.RateGovernor
	DeviceRateLimit   bool // throttle device ingestion (off in the observed design)
	Log               zerolog.Logger
	Secure            func(http.Handler) http.Handler
	IPRateLimit       func(http.Handler) http.Handler
	Metrics           bool // expose /metrics
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(loggerMiddleware(cfg.Log))
	r.Use(chimid.Recoverer)
	if cfg.Metrics {
		r.Use(middleware.PrometheusMiddleware)
	}
	if cfg.Secure != nil {
		r.Use(cfg.Secure)
	}
	if cfg.IPRateLimit != nil {
		r.Use(cfg.IPRateLimit)
	}

	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.ServeHTTP)
	} else {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	general := middleware.Governor("general", cfg.Governor, ports.GeneralPolicy)
	strict := middleware.Governor("strict", cfg.Governor, ports.StrictPolicy)
	deviceLimit := middleware.DeviceGovernor(cfg.DeviceRateLimit, cfg.Governor, ports.GeneralPolicy)

	r.Route("/api", func(r chi.Router) {
		// Public catalog
		r.Group(func(r chi.Router) {
			r.Use(general)
			r.Get("/project", cfg.ProjectHandler.List)
			r.Get("/project/{key}", cfg.ProjectHandler.Get)
		})

		// Device-facing: credential in query/body, no session
		r.Group(func(r chi.Router) {
			r.Use(deviceLimit)
			r.Get("/project/home-appliances/desired-state", cfg.DeviceHandler.DesiredState)
			r.Post("/project/home-appliances/device-state", cfg.DeviceHandler.DeviceState)
			r.Post("/project/water-level/device", cfg.DeviceHandler.WaterLevel)
		})

		// Browser-facing: session required
		r.Group(func(r chi.Router) {
			r.Use(cfg.RequireSession)
			r.Use(general)
			r.Get("/project/home-appliances/state", cfg.ApplianceHandler.GetState)
			r.Post("/project/home-appliances/state", cfg.ApplianceHandler.PostState)
			r.Delete("/project/home-appliances/state", cfg.ApplianceHandler.DeleteState)
			r.Get("/project/water-level/entries", cfg.WaterLevelHandler.GetEntries)
			r.Post("/project/water-level/entries", cfg.WaterLevelHandler.PostEntry)
			r.Delete("/project/water-level/entries", cfg.WaterLevelHandler.DeleteEntries)
			r.Get("/user/api-config", cfg.APIConfigHandler.Get)
			r.Put("/user/api-config", cfg.APIConfigHandler.Put)
			r.Post("/device/send-command", cfg.CommandHandler.Send)
		})

		// Credential issuance gets the strict policy
		r.Group(func(r chi.Router) {
			r.Use(cfg.RequireSession)
			r.Use(strict)
			r.Post("/user/api-config", cfg.APIConfigHandler.Post)
		})

		// Admin override
		if cfg.RequireAdmin != nil {
			r.Group(func(r chi.Router) {
				r.Use(cfg.RequireAdmin)
				r.Post("/project/status", cfg.AdminHandler.SetProjectStatus)
			})
		}
	})

	if cfg.AdminHandler != nil && cfg.RequireAdmin != nil {
		r.Route("/admin", func(r chi.Router) {
			r.Use(cfg.RequireAdmin)
			r.Post("/projects", cfg.AdminHandler.CreateProject)
		})
	}

	return r
}

func loggerMiddleware(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := chimid.GetReqID(r.Context())
			log.Info().
				Str("request_id", reqID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("request")
			next.ServeHTTP(w, r)
		})
	}
}
