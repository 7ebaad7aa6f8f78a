package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mfedotov/credvault/internal/utils"
	"github.com/mfedotov/credvault/models"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Get("/health", h.health)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.authenticate)

		r.Get("/api/auth/me", h.me)

		// account lifecycle is admin territory
		r.Route("/api/users", func(r chi.Router) {
			r.Use(h.requireRole(models.RoleAdmin))

			r.Get("/", h.listUsers)
			r.Post("/", h.createUser)
			r.Get("/pending", h.listPendingUsers)
			r.Post("/{id}/approve", h.approveUser)
			r.Delete("/{id}/reject", h.rejectUser)
			r.Post("/{id}/deactivate", h.deactivateUser)
			r.Post("/{id}/reactivate", h.reactivateUser)
		})

		// vault data: every role reads, admins and technicians write
		r.Route("/api/clients", func(r chi.Router) {
			r.Get("/", h.listClients)
			r.Get("/{id}", h.getClient)

			r.Group(func(r chi.Router) {
				r.Use(h.requireRole(models.RoleAdmin, models.RoleTechnician))
				r.Post("/", h.createClient)
				r.Put("/{id}", h.updateClient)
				r.Delete("/{id}", h.deleteClient)
			})
		})

		r.Route("/api/resources", func(r chi.Router) {
			r.Get("/", h.listResources)
			r.Get("/{id}", h.getResource)

			r.Group(func(r chi.Router) {
				r.Use(h.requireRole(models.RoleAdmin, models.RoleTechnician))
				r.Post("/", h.createResource)
				r.Put("/{id}", h.updateResource)
				r.Delete("/{id}", h.deleteResource)
			})
		})

		r.Route("/api/credentials", func(r chi.Router) {
			r.Get("/", h.listCredentials)
			r.Get("/{id}", h.getCredential)

			r.Group(func(r chi.Router) {
				r.Use(h.requireRole(models.RoleAdmin, models.RoleTechnician))
				r.Post("/", h.createCredential)
				r.Put("/{id}", h.updateCredential)
				r.Delete("/{id}", h.deleteCredential)
			})
		})
	})

	return router
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	_, _ = utils.WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}
