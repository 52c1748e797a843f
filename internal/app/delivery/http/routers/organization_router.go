package routers

import (
	"provider-directory/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachOrganizationRoutes(router chi.Router, organization *controllers.OrganizationController) {
	router.Route("/organizations", func(r chi.Router) {
		r.Get("/", organization.ListOrganizations)
		r.Post("/", organization.AddOrganization)
		r.Post("/export", organization.ExportDirectory)
		r.Get("/{id}", organization.GetOrganization)
	})
}
