package controllers

import (
	"net/http"
	"provider-directory/internal/app/contracts"
	"provider-directory/internal/pkg/constvars"
	"provider-directory/internal/pkg/dto/requests"
	"provider-directory/internal/pkg/exceptions"
	"provider-directory/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CapacityController struct {
	Log             *zap.Logger
	CapacityUsecase contracts.CapacityUsecase
}

func NewCapacityController(logger *zap.Logger, capacityUsecase contracts.CapacityUsecase) *CapacityController {
	return &CapacityController{
		Log:             logger,
		CapacityUsecase: capacityUsecase,
	}
}

func (ctrl *CapacityController) GetCapacity(w http.ResponseWriter, r *http.Request) {
	roleID, ok := ctrl.roleID(w, r)
	if !ok {
		return
	}

	result, err := ctrl.CapacityUsecase.GetCapacity(r.Context(), roleID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	if result == nil {
		utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.CapacityNotSetSuccess, result)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.CapacityFetchedSuccess, result)
}

func (ctrl *CapacityController) SetCapacity(w http.ResponseWriter, r *http.Request) {
	roleID, ok := ctrl.roleID(w, r)
	if !ok {
		return
	}

	var request requests.SetCapacity
	if err := utils.DecodeAndValidate(r, &request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	result, err := ctrl.CapacityUsecase.SetCapacity(r.Context(), roleID, request.Capacity)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.CapacityUpdatedSuccess, result)
}

func (ctrl *CapacityController) SetAvailability(w http.ResponseWriter, r *http.Request) {
	roleID, ok := ctrl.roleID(w, r)
	if !ok {
		return
	}

	var request requests.SetAvailability
	if err := utils.DecodeAndValidate(r, &request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	result, err := ctrl.CapacityUsecase.SetAvailability(r.Context(), roleID, request.AvailableTime)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AvailabilityUpdatedSuccess, result)
}

func (ctrl *CapacityController) roleID(w http.ResponseWriter, r *http.Request) (string, bool) {
	roleID := chi.URLParam(r, constvars.URLParamID)
	if err := utils.ValidateURLParamID(roleID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(err, constvars.URLParamID))
		return "", false
	}
	return roleID, true
}
