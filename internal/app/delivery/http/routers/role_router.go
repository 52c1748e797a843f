package routers

import (
	"provider-directory/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachRoleRoutes(router chi.Router, role *controllers.RoleController, capacity *controllers.CapacityController) {
	router.Route("/roles", func(r chi.Router) {
		r.Get("/", role.ListRoles)
		r.Post("/ensure", role.EnsureRole)
		r.Post("/bulk", role.CreateRoles)
		r.Put("/{id}", role.UpdateRole)
		r.Get("/{id}/capacity", capacity.GetCapacity)
		r.Put("/{id}/capacity", capacity.SetCapacity)
		r.Put("/{id}/availability", capacity.SetAvailability)
	})
}
