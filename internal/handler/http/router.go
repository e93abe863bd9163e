package http

import (
	"log/slog"
	"os"

	"github.com/TimeSaving-dev/pointeuse-backend-go/internal/config"
	"github.com/TimeSaving-dev/pointeuse-backend-go/internal/handler/http/middleware"
	"github.com/TimeSaving-dev/pointeuse-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	authHandler AuthHandler,
	trackingHandler TrackingHandler,
	activityHandler ActivityHandler,
	notificationHandler NotificationHandler,
	accountHandler AccountHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "pointeuse-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/tracking", func(r chi.Router) {
				r.Post("/check-in", trackingHandler.CheckIn)
				r.Post("/check-out", trackingHandler.Checkout)
				r.Route("/pause", func(r chi.Router) {
					r.Post("/", trackingHandler.Pause)
					r.Get("/status", trackingHandler.PauseStatus)
					r.Post("/return", trackingHandler.PauseReturn)
				})
			})

			r.Route("/activity", func(r chi.Router) {
				r.Get("/my", activityHandler.GetMyActivity)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", activityHandler.GetPage)
					r.Get("/aggregated", activityHandler.GetAggregated)
					r.Get("/export", activityHandler.Export)
				})
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.ListMine)
				r.Post("/read-all", notificationHandler.MarkAllRead)
			})

			// Admin only
			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/", accountHandler.List)
				r.Patch("/{id}/status", accountHandler.UpdateStatus)
			})
		})
	})
	return r
}
