package rest

import (
	"database/sql"
	"log/slog"

	"github.com/go-chi/chi"

	"github.com/talenthub/talent-hub/internal/auth"
	"github.com/talenthub/talent-hub/internal/certificate"
	"github.com/talenthub/talent-hub/internal/course"
	"github.com/talenthub/talent-hub/internal/notification"
	"github.com/talenthub/talent-hub/internal/project"
	"github.com/talenthub/talent-hub/internal/realtime"
	"github.com/talenthub/talent-hub/internal/request"
	"github.com/talenthub/talent-hub/internal/transport/middleware"
	"github.com/talenthub/talent-hub/internal/user"
)

// Handlers carries every HTTP handler the router mounts.
type Handlers struct {
	Auth         *auth.Handler
	User         *user.Handler
	Course       *course.Handler
	Project      *project.Handler
	Request      *request.Handler
	Certificate  *certificate.Handler
	Notification *notification.Handler
	Realtime     *realtime.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/refresh", h.Auth.RefreshToken)
		})

		// Everything below requires a valid access token.
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Route("/users", func(ur chi.Router) {
				ur.Get("/me", h.User.Me)
				ur.Patch("/me", h.User.UpdateMe)
				ur.Post("/me/photo", h.User.UpdatePhoto)
				ur.Get("/", h.User.List)
				ur.Patch("/{id}/role", h.User.AssignRole)
			})

			pr.Route("/courses", func(cr chi.Router) {
				cr.Get("/", h.Course.List)
				cr.Post("/", h.Course.Create)
				cr.Get("/{id}", h.Course.Get)
				cr.Patch("/{id}", h.Course.Update)
				cr.Delete("/{id}", h.Course.Delete)
				cr.Post("/{id}/apply", h.Request.ApplyToCourse)
			})

			pr.Route("/projects", func(jr chi.Router) {
				jr.Get("/", h.Project.List)
				jr.Post("/", h.Project.Create)
				jr.Get("/{id}", h.Project.Get)
				jr.Patch("/{id}", h.Project.Update)
				jr.Delete("/{id}", h.Project.Delete)
			})

			pr.Route("/requests", func(rr chi.Router) {
				rr.Get("/", h.Request.ListCourseRequests)
				rr.Patch("/{id}/approve", h.Request.ApproveCourseRequest)
				rr.Patch("/{id}/reject", h.Request.RejectCourseRequest)
			})

			pr.Route("/project-requests", func(rr chi.Router) {
				rr.Get("/", h.Request.ListProjectRequests)
				// the id here is the project being requested, not a request id
				rr.Post("/{id}/request", h.Request.RequestProjectRole)
				rr.Patch("/{id}/approve", h.Request.ApproveProjectRequest)
				rr.Patch("/{id}/reject", h.Request.RejectProjectRequest)
			})

			pr.Route("/certificates", func(cr chi.Router) {
				cr.Get("/", h.Certificate.ListPending)
				cr.Get("/my", h.Certificate.ListOwn)
				cr.Post("/", h.Certificate.Upload)
				cr.Patch("/{id}/verify", h.Certificate.Verify)
			})

			pr.Route("/notifications", func(nr chi.Router) {
				nr.Get("/", h.Notification.List)
				nr.Patch("/{id}/read", h.Notification.MarkRead)
			})
		})
	})

	// websocket endpoint authenticates its own token, before the upgrade
	router.Get("/ws", h.Realtime.Serve)
}
