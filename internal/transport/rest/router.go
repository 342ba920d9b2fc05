package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/staffgrid/backend/internal/assignment"
	"github.com/staffgrid/backend/internal/auth"
	"github.com/staffgrid/backend/internal/availability"
	"github.com/staffgrid/backend/internal/department"
	"github.com/staffgrid/backend/internal/employee"
	"github.com/staffgrid/backend/internal/shift"
	"github.com/staffgrid/backend/internal/timeoff"
	"github.com/staffgrid/backend/internal/transport/middleware"
	"github.com/staffgrid/backend/internal/transport/swagger"
	"github.com/staffgrid/backend/internal/user"
)

type Handlers struct {
	Auth         *auth.Handler
	User         *user.Handler
	Department   *department.Handler
	Employee     *employee.Handler
	Availability *availability.Handler
	TimeOff      *timeoff.Handler
	Shift        *shift.Handler
	Assignment   *assignment.Handler
}

// RegisterAllRoutes mounts the API under /api/v1. Role gates here mirror the
// access-policy table; the services still authorize every call themselves, so
// the router layer is a short-circuit, not the source of truth.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/register", h.Auth.Register)
			sr.Post("/refresh", h.Auth.RefreshToken)
			sr.Post("/logout", h.Auth.Logout)
		})

		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Get("/users/me", h.User.GetCurrentUser)

			pr.Route("/availability", func(ar chi.Router) {
				ar.Get("/", h.Availability.ListAvailability)
				ar.Post("/", h.Availability.CreateAvailability)
				ar.Get("/{id}", h.Availability.GetAvailability)
				ar.Patch("/{id}", h.Availability.UpdateAvailability)
				ar.Delete("/{id}", h.Availability.DeleteAvailability)
			})

			pr.Route("/timeoff", func(tr chi.Router) {
				tr.Get("/", h.TimeOff.ListTimeOff)
				tr.Post("/", h.TimeOff.CreateTimeOff)
				tr.Get("/{id}", h.TimeOff.GetTimeOff)
				tr.Patch("/{id}", h.TimeOff.UpdateTimeOff)
				tr.Delete("/{id}", h.TimeOff.DeleteTimeOff)

				tr.Group(func(mr chi.Router) {
					mr.Use(auth.RequireAdmin(logger))
					mr.Patch("/{id}/approve", h.TimeOff.ApproveTimeOff)
					mr.Patch("/{id}/decline", h.TimeOff.DeclineTimeOff)
				})
			})

			pr.Route("/assignments", func(ar chi.Router) {
				ar.Get("/", h.Assignment.ListAssignments)
				ar.Get("/{id}", h.Assignment.GetAssignment)

				ar.Group(func(mr chi.Router) {
					mr.Use(auth.RequireAdmin(logger))
					mr.Post("/", h.Assignment.CreateAssignment)
					mr.Patch("/{id}", h.Assignment.UpdateAssignment)
					mr.Delete("/{id}", h.Assignment.DeleteAssignment)
				})
			})

			pr.Group(func(ar chi.Router) {
				ar.Use(auth.RequireAdmin(logger))

				ar.Route("/shifts", func(sr chi.Router) {
					sr.Get("/", h.Shift.ListShifts)
					sr.Post("/", h.Shift.CreateShift)
					sr.Get("/{id}", h.Shift.GetShift)
					sr.Patch("/{id}", h.Shift.UpdateShift)
					sr.Delete("/{id}", h.Shift.DeleteShift)
				})

				ar.Route("/departments", func(dr chi.Router) {
					dr.Get("/", h.Department.ListDepartments)
					dr.Post("/", h.Department.CreateDepartment)
					dr.Get("/{id}", h.Department.GetDepartment)
					dr.Patch("/{id}", h.Department.UpdateDepartment)
					dr.Delete("/{id}", h.Department.DeleteDepartment)
				})

				ar.Route("/employees", func(er chi.Router) {
					er.Get("/", h.Employee.ListEmployees)
					er.Post("/", h.Employee.CreateEmployee)
					er.Get("/{id}", h.Employee.GetEmployee)
					er.Patch("/{id}", h.Employee.UpdateEmployee)
					er.Delete("/{id}", h.Employee.DeleteEmployee)
				})

				ar.Route("/users", func(ur chi.Router) {
					ur.Get("/", h.User.ListUsers)
					ur.Post("/", h.User.CreateUser)
					ur.Get("/{id}", h.User.GetUser)
					ur.Patch("/{id}", h.User.UpdateUser)
					ur.Delete("/{id}", h.User.DeleteUser)
				})
			})
		})
	})
}
