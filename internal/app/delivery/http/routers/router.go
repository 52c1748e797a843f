package routers

import (
	"fmt"
	"provider-directory/internal/app/config"
	"provider-directory/internal/app/delivery/http/controllers"
	"provider-directory/internal/app/delivery/http/middlewares"
	"provider-directory/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Controllers struct {
	Onboarding   *controllers.OnboardingController
	Capability   *controllers.CapabilityController
	Role         *controllers.RoleController
	Capacity     *controllers.CapacityController
	Practitioner *controllers.PractitionerController
	Organization *controllers.OrganizationController
}

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	c Controllers,
) {
	corsOptions := cors.Options{
		AllowedOrigins:   internalConfig.App.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", constvars.HeaderXRequestID},
		ExposedHeaders:   []string{constvars.HeaderXRequestID},
		AllowCredentials: false,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))
	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging)
	router.Use(middlewares.ErrorHandler)
	router.Use(middlewares.RateLimit())
	if internalConfig.App.RequestTimeout > 0 {
		router.Use(chiMiddleware.Timeout(internalConfig.App.RequestTimeout))
	}

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			attachOnboardingRoutes(r, c.Onboarding, c.Capability)
			attachRoleRoutes(r, c.Role, c.Capacity)
			attachPractitionerRoutes(r, c.Practitioner, c.Role)
			attachOrganizationRoutes(r, c.Organization)
		})
	})
}
