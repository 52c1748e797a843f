package controllers

import (
	"net/http"
	"provider-directory/internal/app/contracts"
	"provider-directory/internal/pkg/constvars"
	"provider-directory/internal/pkg/dto/requests"
	"provider-directory/internal/pkg/utils"

	"go.uber.org/zap"
)

type OnboardingController struct {
	Log               *zap.Logger
	OnboardingUsecase contracts.OnboardingUsecase
}

func NewOnboardingController(logger *zap.Logger, onboardingUsecase contracts.OnboardingUsecase) *OnboardingController {
	return &OnboardingController{
		Log:               logger,
		OnboardingUsecase: onboardingUsecase,
	}
}

func (ctrl *OnboardingController) Redeem(w http.ResponseWriter, r *http.Request) {
	requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	var request requests.RedeemInviteCode
	if err := utils.DecodeAndValidate(r, &request); err != nil {
		ctrl.Log.Error("OnboardingController.Redeem error decoding request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	result, err := ctrl.OnboardingUsecase.Redeem(r.Context(), request.Code, request.Email, request.FullName)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.OnboardingRedeemSuccess, result)
}
