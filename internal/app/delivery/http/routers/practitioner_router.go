package routers

import (
	"provider-directory/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachPractitionerRoutes(router chi.Router, practitioner *controllers.PractitionerController, role *controllers.RoleController) {
	router.Route("/practitioners", func(r chi.Router) {
		r.Get("/", practitioner.ListPractitioners)
		r.Post("/", practitioner.AddPractitioner)
		r.Post("/cleanup", practitioner.CleanupPlaceholders)
		r.Get("/{id}", practitioner.GetPractitioner)
		r.Delete("/{id}", practitioner.DeletePractitioner)
		r.Get("/{id}/roles", role.GetRolesByPractitioner)
	})
}
