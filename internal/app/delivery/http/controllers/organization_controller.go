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

type OrganizationController struct {
	Log                 *zap.Logger
	OrganizationUsecase contracts.OrganizationUsecase
}

func NewOrganizationController(logger *zap.Logger, organizationUsecase contracts.OrganizationUsecase) *OrganizationController {
	return &OrganizationController{
		Log:                 logger,
		OrganizationUsecase: organizationUsecase,
	}
}

func (ctrl *OrganizationController) ListOrganizations(w http.ResponseWriter, r *http.Request) {
	result, err := ctrl.OrganizationUsecase.ListOrganizations(r.Context())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.OrganizationsListedSuccess, result)
}

func (ctrl *OrganizationController) GetOrganization(w http.ResponseWriter, r *http.Request) {
	organizationID := chi.URLParam(r, constvars.URLParamID)
	if err := utils.ValidateURLParamID(organizationID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(err, constvars.URLParamID))
		return
	}

	result, err := ctrl.OrganizationUsecase.GetOrganization(r.Context(), organizationID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.OrganizationFetchedSuccess, result)
}

func (ctrl *OrganizationController) AddOrganization(w http.ResponseWriter, r *http.Request) {
	requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	var request requests.AddOrganization
	if err := utils.DecodeAndValidate(r, &request); err != nil {
		ctrl.Log.Error("OrganizationController.AddOrganization error decoding request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	result, err := ctrl.OrganizationUsecase.AddOrganization(r.Context(), &request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.OrganizationCreatedSuccess, result)
}

func (ctrl *OrganizationController) ExportDirectory(w http.ResponseWriter, r *http.Request) {
	result, err := ctrl.OrganizationUsecase.ExportDirectory(r.Context())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.DirectoryExportedSuccess, result)
}
