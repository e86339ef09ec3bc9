package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/jmoiron/sqlx"

	"github.com/frahmantamala/maintenance-management/internal/auth"
	"github.com/frahmantamala/maintenance-management/internal/dashboard"
	"github.com/frahmantamala/maintenance-management/internal/equipment"
	"github.com/frahmantamala/maintenance-management/internal/request"
	"github.com/frahmantamala/maintenance-management/internal/team"
	"github.com/frahmantamala/maintenance-management/internal/transport/middleware"
	"github.com/frahmantamala/maintenance-management/internal/transport/swagger"
	"github.com/frahmantamala/maintenance-management/internal/user"
)

// Handlers groups everything RegisterAllRoutes wires into the mux.
type Handlers struct {
	Auth      *auth.Handler
	User      *user.Handler
	Equipment *equipment.Handler
	Team      *team.Handler
	Request   *request.Handler
	Dashboard *dashboard.Handler
}

func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	sqlxDB *sqlx.DB,
	policy *auth.RolePolicy,
	handlers Handlers,
	allowedOrigins string,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// OpenAPI spec and Swagger UI live outside the API prefix
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", handlers.Auth.Login)
			sr.Post("/refresh", handlers.Auth.RefreshToken)
			sr.Post("/logout", handlers.Auth.Logout)
		})

		// everything else requires a valid token
		r.Group(func(pr chi.Router) {
			pr.Use(handlers.Auth.AuthMiddleware)

			pr.Get("/users/me", handlers.User.GetCurrentUser)
			pr.Get("/users", handlers.User.ListUsers)

			pr.Get("/dashboard", handlers.Dashboard.GetDashboard)

			pr.Route("/equipment", func(er chi.Router) {
				er.Get("/", handlers.Equipment.ListEquipment)
				er.Get("/{id}", handlers.Equipment.GetEquipment)
				er.Get("/{id}/requests", handlers.Request.ListByEquipment)

				er.Group(func(mr chi.Router) {
					mr.Use(middleware.RequireRoles(auth.RoleAdmin, auth.RoleManager))
					mr.Post("/", handlers.Equipment.CreateEquipment)
					mr.Put("/{id}", handlers.Equipment.UpdateEquipment)
					mr.Patch("/{id}/scrap", handlers.Equipment.ScrapEquipment)
				})

				er.Group(func(ar chi.Router) {
					ar.Use(middleware.RequireRoles(auth.RoleAdmin))
					ar.Delete("/{id}", handlers.Equipment.DeleteEquipment)
				})
			})

			pr.Route("/teams", func(tr chi.Router) {
				tr.Get("/", handlers.Team.ListTeams)
				tr.Get("/{id}", handlers.Team.GetTeam)

				tr.Group(func(mr chi.Router) {
					mr.Use(middleware.RequireRoles(auth.RoleAdmin, auth.RoleManager))
					mr.Post("/", handlers.Team.CreateTeam)
					mr.Put("/{id}", handlers.Team.UpdateTeam)
					mr.Post("/{id}/technicians", handlers.Team.AddTechnician)
					mr.Delete("/{id}/technicians/{userID}", handlers.Team.RemoveTechnician)
				})

				tr.Group(func(ar chi.Router) {
					ar.Use(middleware.RequireRoles(auth.RoleAdmin))
					ar.Delete("/{id}", handlers.Team.DeleteTeam)
				})
			})

			pr.Route("/requests", func(rr chi.Router) {
				rr.Post("/", handlers.Request.CreateRequest)
				rr.Get("/", handlers.Request.ListRequests)
				rr.Get("/calendar", handlers.Request.ListCalendar)

				// item routes check team/assignment access before the
				// handler runs; a missing request still falls through so the
				// service answers not-found
				rr.Group(func(ir chi.Router) {
					ir.Use(auth.RequireRequestAccess(sqlxDB, policy))
					ir.Get("/{id}", handlers.Request.GetRequest)
					ir.Patch("/{id}/status", handlers.Request.UpdateStatus)
				})

				rr.Group(func(mr chi.Router) {
					mr.Use(middleware.RequireRoles(auth.RoleAdmin, auth.RoleManager))
					mr.Patch("/{id}/assign", handlers.Request.AssignTechnician)
				})
			})
		})
	})
}
