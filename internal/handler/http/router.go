package http

import (
	"log/slog"
	"os"

	"github.com/davomat/davomat-backend-go/internal/domain/user"
	"github.com/davomat/davomat-backend-go/internal/handler/http/middleware"
	"github.com/davomat/davomat-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterOptions carries the settings the router needs from configuration.
type RouterOptions struct {
	AllowedOrigins []string
	Env            string
	Version        string
}

func NewRouter(
	opts RouterOptions,
	JWTService jwt.Service,
	attendanceHandler AttendanceHandler,
	postHandler PostHandler,
	userHandler UserHandler,
	departmentHandler DepartmentHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(opts.Env != "development")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "davomat"),
		slog.String("version", opts.Version),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	ja := JWTService.JWTAuth()

	r.Route("/api/v1", func(r chi.Router) {

		// SSE clients cannot set headers, so the token may come as ?jwt=
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verify(ja, jwtauth.TokenFromHeader, jwtauth.TokenFromQuery))
			r.Use(middleware.AuthRequired)
			r.Use(middleware.RequirePermission(user.PermissionAttendanceMonitor))
			r.Get("/post/monitor/stream", postHandler.Monitor)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(ja))
			r.Use(middleware.AuthRequired)

			r.Get("/me", userHandler.Me)

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/derive", attendanceHandler.Derive)
				r.Post("/check-in", attendanceHandler.CheckIn)
				r.Post("/check-out", attendanceHandler.CheckOut)
				r.Get("/employees/{id}", attendanceHandler.GetEmployee)
				r.Put("/logs/{id}/comment", attendanceHandler.Comment)

				r.With(middleware.RequirePermission(user.PermissionAttendanceViewOwn)).
					Get("/logs", attendanceHandler.ListLogs)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceViewAll))
					r.Get("/board", attendanceHandler.Board)
				})

				r.With(middleware.RequirePermission(user.PermissionAttendanceExport)).
					Get("/board/export", attendanceHandler.Export)

				// Admin only
				r.With(middleware.RequireRole(user.RoleAdmin)).
					Put("/employees/{id}/time", attendanceHandler.SetTime)
			})

			r.Route("/post", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionAttendanceMarkAny))
				r.Post("/scan", postHandler.Scan)
			})

			r.Route("/users", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionUserView))
					r.Get("/", userHandler.List)
					r.Get("/{id}", userHandler.Get)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionUserManage))
					r.Post("/", userHandler.Create)
					r.Put("/{id}", userHandler.Update)
					r.Delete("/{id}", userHandler.Delete)
				})
			})

			r.Route("/departments", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionDepartmentView))
					r.Get("/", departmentHandler.List)
					r.Get("/{id}", departmentHandler.Get)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionDepartmentManage))
					r.Post("/", departmentHandler.Create)
					r.Put("/{id}", departmentHandler.Update)
					r.Delete("/{id}", departmentHandler.Delete)
				})
			})
		})
	})
	return r
}
