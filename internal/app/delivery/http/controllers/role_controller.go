package controllers

import (
	"net/http"
	"provider-directory/internal/app/contracts"
	"provider-directory/internal/pkg/constvars"
	"provider-directory/internal/pkg/dto/requests"
	"provider-directory/internal/pkg/exceptions"
	"provider-directory/internal/pkg/fhir_dto"
	"provider-directory/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type RoleController struct {
	Log         *zap.Logger
	RoleUsecase contracts.RoleUsecase
}

func NewRoleController(logger *zap.Logger, roleUsecase contracts.RoleUsecase) *RoleController {
	return &RoleController{
		Log:         logger,
		RoleUsecase: roleUsecase,
	}
}

func (ctrl *RoleController) EnsureRole(w http.ResponseWriter, r *http.Request) {
	requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	var request requests.EnsureRole
	if err := utils.DecodeAndValidate(r, &request); err != nil {
		ctrl.Log.Error("RoleController.EnsureRole error decoding request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	result, err := ctrl.RoleUsecase.EnsureRole(r.Context(), request.PractitionerID, request.OrganizationID, request.Roles)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	status := constvars.StatusOK
	if result.Created {
		status = constvars.StatusCreated
	}
	utils.BuildSuccessResponse(w, status, constvars.RoleEnsuredSuccess, result)
}

func (ctrl *RoleController) ListRoles(w http.ResponseWriter, r *http.Request) {
	result, err := ctrl.RoleUsecase.ListRoles(r.Context())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.RolesListedSuccess, result)
}

func (ctrl *RoleController) CreateRoles(w http.ResponseWriter, r *http.Request) {
	requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	var request requests.CreateRoles
	if err := utils.DecodeAndValidate(r, &request); err != nil {
		ctrl.Log.Error("RoleController.CreateRoles error decoding request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	result, err := ctrl.RoleUsecase.CreateRoles(r.Context(), &request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.RolesCreatedSuccess, result)
}

func (ctrl *RoleController) GetRolesByPractitioner(w http.ResponseWriter, r *http.Request) {
	practitionerID := chi.URLParam(r, constvars.URLParamID)
	if err := utils.ValidateURLParamID(practitionerID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(err, constvars.URLParamID))
		return
	}

	result, err := ctrl.RoleUsecase.GetRolesByPractitioner(r.Context(), practitionerID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.RolesListedSuccess, result)
}

// UpdateRole takes the whole PractitionerRole document as the body.
func (ctrl *RoleController) UpdateRole(w http.ResponseWriter, r *http.Request) {
	requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	practitionerRoleID := chi.URLParam(r, constvars.URLParamID)
	if err := utils.ValidateURLParamID(practitionerRoleID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(err, constvars.URLParamID))
		return
	}

	var doc fhir_dto.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		ctrl.Log.Error("RoleController.UpdateRole error decoding request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	result, err := ctrl.RoleUsecase.UpdateRole(r.Context(), practitionerRoleID, doc)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.RoleUpdatedSuccess, result)
}
