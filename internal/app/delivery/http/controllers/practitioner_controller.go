package controllers

import (
	"net/http"
	"provider-directory/internal/app/contracts"
	"provider-directory/internal/pkg/constvars"
	"provider-directory/internal/pkg/dto/requests"
	"provider-directory/internal/pkg/dto/responses"
	"provider-directory/internal/pkg/exceptions"
	"provider-directory/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PractitionerController struct {
	Log                 *zap.Logger
	PractitionerUsecase contracts.PractitionerUsecase
}

func NewPractitionerController(logger *zap.Logger, practitionerUsecase contracts.PractitionerUsecase) *PractitionerController {
	return &PractitionerController{
		Log:                 logger,
		PractitionerUsecase: practitionerUsecase,
	}
}

func (ctrl *PractitionerController) ListPractitioners(w http.ResponseWriter, r *http.Request) {
	result, err := ctrl.PractitionerUsecase.ListPractitioners(r.Context())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PractitionersListedSuccess, result)
}

func (ctrl *PractitionerController) AddPractitioner(w http.ResponseWriter, r *http.Request) {
	requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	var request requests.AddPractitioner
	if err := utils.DecodeAndValidate(r, &request); err != nil {
		ctrl.Log.Error("PractitionerController.AddPractitioner error decoding request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	result, err := ctrl.PractitionerUsecase.AddPractitioner(r.Context(), &request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.PractitionerCreatedSuccess, result)
}

func (ctrl *PractitionerController) GetPractitioner(w http.ResponseWriter, r *http.Request) {
	practitionerID := chi.URLParam(r, constvars.URLParamID)
	if err := utils.ValidateURLParamID(practitionerID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(err, constvars.URLParamID))
		return
	}

	result, err := ctrl.PractitionerUsecase.GetPractitioner(r.Context(), practitionerID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PractitionerFetchedSuccess, result)
}

func (ctrl *PractitionerController) DeletePractitioner(w http.ResponseWriter, r *http.Request) {
	practitionerID := chi.URLParam(r, constvars.URLParamID)
	if err := utils.ValidateURLParamID(practitionerID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(err, constvars.URLParamID))
		return
	}

	if err := ctrl.PractitionerUsecase.DeletePractitioner(r.Context(), practitionerID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PractitionerDeletedSuccess, nil)
}

// CleanupPlaceholders reports the ids it removed even when it stopped early.
func (ctrl *PractitionerController) CleanupPlaceholders(w http.ResponseWriter, r *http.Request) {
	requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	deleted, err := ctrl.PractitionerUsecase.CleanupPlaceholders(r.Context())
	if err != nil {
		ctrl.Log.Error("PractitionerController.CleanupPlaceholders stopped early",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Strings("deleted", deleted),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PlaceholdersCleanedSuccess, responses.CleanupPlaceholders{Deleted: deleted})
}
