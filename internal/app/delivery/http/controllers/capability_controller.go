package controllers

import (
	"net/http"
	"provider-directory/internal/app/contracts"
	"provider-directory/internal/pkg/constvars"
	"provider-directory/internal/pkg/dto/responses"
	"provider-directory/internal/pkg/utils"

	"go.uber.org/zap"
)

type CapabilityController struct {
	Log               *zap.Logger
	CapabilityDeriver contracts.CapabilityDeriver
}

func NewCapabilityController(logger *zap.Logger, capabilityDeriver contracts.CapabilityDeriver) *CapabilityController {
	return &CapabilityController{
		Log:               logger,
		CapabilityDeriver: capabilityDeriver,
	}
}

// Derive answers GET /capabilities?roles=a,b. Repeated roles params are merged.
func (ctrl *CapabilityController) Derive(w http.ResponseWriter, r *http.Request) {
	roles := []string{}
	for _, value := range r.URL.Query()["roles"] {
		roles = append(roles, utils.SplitCSV(value)...)
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.CapabilitiesDerivedSuccess, responses.Capabilities{
		Roles:    roles,
		Subjects: ctrl.CapabilityDeriver.Derive(roles),
	})
}
