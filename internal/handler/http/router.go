package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/leave-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	AllowedOrigins []string
	HomePath       string
	Env            string
	LogLevel       slog.Level
}

func NewRouter(
	routerConfig RouterConfig,
	JWTService jwt.Service,
	authHandler AuthHandler,
	leaveHandler LeaveHandler,
	staffHandler StaffHandler,
	userHandler UserHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(routerConfig.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       routerConfig.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "leave-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", routerConfig.Env),
	)

	homePath := routerConfig.HomePath
	if homePath == "" {
		homePath = "/home"
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   routerConfig.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Location"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  routerConfig.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Post("/auth/login", authHandler.Login)

	// Requires authentication
	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired)

		r.Get("/home", userHandler.Home)
		r.Get("/leave/apply", leaveHandler.ApplicationForm)
		r.Post("/leave", leaveHandler.Apply)
		r.Get("/staff/{id}/leaves", leaveHandler.StaffLeaves)

		// Admin only
		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminOnly(homePath))

			r.Get("/leaves/pending", leaveHandler.ListPending)
			r.Get("/leaves/approved", leaveHandler.ListApproved)
			r.Post("/approve/leave", leaveHandler.Approve)
			r.Post("/staff", staffHandler.Create)
			r.Get("/users", userHandler.ListAdmins)
			r.Post("/send/message", userHandler.SendMessage)
		})
	})

	return r
}
