package routers

import (
	"provider-directory/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachOnboardingRoutes(router chi.Router, onboarding *controllers.OnboardingController, capability *controllers.CapabilityController) {
	router.Post("/onboarding/redeem", onboarding.Redeem)
	router.Get("/capabilities", capability.Derive)
}
