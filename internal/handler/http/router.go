package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/sarang-church/groupware-backend-go/internal/domain/user"
	"github.com/sarang-church/groupware-backend-go/internal/handler/http/middleware"
	"github.com/sarang-church/groupware-backend-go/internal/pkg/jwt"
)

type RouterOptions struct {
	AppName        string
	Version        string
	Env            string
	LogLevel       slog.Level
	AllowedOrigins []string
	// UploadDir is served read-only under /uploads to authenticated callers when set
	UploadDir string
}

type Handlers struct {
	Auth        AuthHandler
	Leave       LeaveHandler
	Reservation ReservationHandler
	User        UserHandler
}

func NewRouter(opts RouterOptions, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(opts.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       opts.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", opts.AppName),
		slog.String("version", opts.Version),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.EchoRequestID)
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	// Checkpoint photos are visible to anyone who can see reservations
	if opts.UploadDir != "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(opts.UploadDir)))
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verify(JWTService.JWTAuth(), jwtauth.TokenFromHeader))
			r.Use(middleware.AuthRequired(JWTService))
			r.Use(middleware.RequirePermission(user.PermissionReservationView))
			r.Get("/uploads/*", fs.ServeHTTP)
		})
	}

	r.Route("/api/v1", func(r chi.Router) {

		r.Post("/auth/login", h.Auth.Login)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verify(JWTService.JWTAuth(), jwtauth.TokenFromHeader))
			r.Use(middleware.AuthRequired(JWTService))

			r.Route("/auth", func(r chi.Router) {
				r.Post("/logout", h.Auth.Logout)
				r.Get("/me", h.Auth.Me)
			})

			r.Route("/leave", func(r chi.Router) {
				r.Get("/chargeable-days", h.Leave.ChargeableDays)
				r.Get("/balance", h.Leave.GetMyBalance)
				r.Get("/calendar", h.Leave.Calendar)

				r.Route("/requests", func(r chi.Router) {
					r.With(middleware.RequirePermission(user.PermissionLeaveCreate)).Post("/", h.Leave.CreateRequest)
					r.With(middleware.RequirePermission(user.PermissionLeaveViewOwn)).Get("/my", h.Leave.GetMyRequests)
					r.With(middleware.RequirePermission(user.PermissionLeaveViewAll)).Get("/", h.Leave.ListRequests)

					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", h.Leave.GetRequest)
						r.Post("/cancel", h.Leave.CancelRequest)

						// Approvers only
						r.Group(func(r chi.Router) {
							r.Use(middleware.RequirePermission(user.PermissionLeaveApprove))
							r.Post("/approve", h.Leave.ApproveRequest)
							r.Post("/reject", h.Leave.RejectRequest)
						})
					})
				})
			})

			r.Route("/users/{id}", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionUserManage))
				r.Get("/leave-balance", h.User.GetLeaveBalance)
				r.Put("/leave-allotment", h.User.SetLeaveAllotment)
			})

			r.Route("/resources", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionReservationView)).Get("/", h.Reservation.ListResources)
				r.With(middleware.RequirePermission(user.PermissionResourceManage)).Post("/", h.Reservation.CreateResource)
			})

			r.Route("/reservations", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionReservationView))
					r.Get("/timeline", h.Reservation.Timeline)
					r.Post("/timeline/select", h.Reservation.SelectRange)
					r.Get("/{id}", h.Reservation.GetReservation)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionReservationCreate))
					r.Post("/", h.Reservation.CreateReservation)
					r.Post("/{id}/cancel", h.Reservation.CancelReservation)
					r.Post("/{id}/vehicle/start", h.Reservation.StartVehicleUse)
					r.Post("/{id}/vehicle/return", h.Reservation.ReturnVehicle)
				})
			})
		})
	})
	return r
}
