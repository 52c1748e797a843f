package onboarding

import (
	"context"
	"provider-directory/internal/app/contracts"
	"provider-directory/internal/pkg/constvars"
	"provider-directory/internal/pkg/dto/responses"
	"provider-directory/internal/pkg/exceptions"
	"provider-directory/internal/pkg/fhir_dto"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// AdminRoles are granted to whoever redeems an admin-tier code.
var AdminRoles = []string{constvars.RoleProvider, constvars.RoleReferrer, constvars.RoleOrgAdmin}

type onboardingUsecase struct {
	InviteCodeRepository   contracts.InviteCodeRepository
	PractitionerFhirClient contracts.PractitionerFhirClient
	RoleUsecase            contracts.RoleUsecase
	EventPublisher         contracts.EventPublisher
	Log                    *zap.Logger
}

func NewOnboardingUsecase(
	inviteCodeRepository contracts.InviteCodeRepository,
	practitionerFhirClient contracts.PractitionerFhirClient,
	roleUsecase contracts.RoleUsecase,
	eventPublisher contracts.EventPublisher,
	logger *zap.Logger,
) contracts.OnboardingUsecase {
	return &onboardingUsecase{
		InviteCodeRepository:   inviteCodeRepository,
		PractitionerFhirClient: practitionerFhirClient,
		RoleUsecase:            roleUsecase,
		EventPublisher:         eventPublisher,
		Log:                    logger,
	}
}

// Redeem resolves code in the user tier first, then the admin tier.
// Redeeming the same code again converges on the same directory state.
func (uc *onboardingUsecase) Redeem(ctx context.Context, code, email, fullName string) (*responses.Redeem, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("onboardingUsecase.Redeem called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEmailKey, email),
	)

	code = strings.TrimSpace(code)
	email = strings.TrimSpace(email)
	if code == "" || email == "" {
		return nil, exceptions.ErrInvalidInput(nil, "code and email are required")
	}

	practitionerID, found, err := uc.InviteCodeRepository.FindUserCode(ctx, code)
	if err != nil {
		uc.Log.Error("onboardingUsecase.Redeem error calling InviteCodeRepository.FindUserCode",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if found {
		result, err := uc.redeemUserCode(ctx, practitionerID, email)
		if err != nil {
			return nil, err
		}
		uc.publish(ctx, result, email)
		return result, nil
	}

	organizationID, found, err := uc.InviteCodeRepository.FindAdminCode(ctx, code)
	if err != nil {
		uc.Log.Error("onboardingUsecase.Redeem error calling InviteCodeRepository.FindAdminCode",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if found {
		result, err := uc.redeemAdminCode(ctx, organizationID, email, fullName)
		if err != nil {
			return nil, err
		}
		uc.publish(ctx, result, email)
		return result, nil
	}

	uc.Log.Info("onboardingUsecase.Redeem unknown invite code", zap.String(constvars.LoggingRequestIDKey, requestID))
	return nil, exceptions.ErrInvalidInviteCode()
}

// redeemUserCode binds email to an existing practitioner, replacing any
// email contact points it already had.
func (uc *onboardingUsecase) redeemUserCode(ctx context.Context, practitionerID, email string) (*responses.Redeem, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	record, err := uc.PractitionerFhirClient.FindPractitionerByID(ctx, practitionerID)
	if err != nil {
		uc.Log.Error("onboardingUsecase.redeemUserCode error calling PractitionerFhirClient.FindPractitionerByID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPractitionerIDKey, practitionerID),
			zap.Error(err),
		)
		return nil, err
	}

	telecom, err := replaceEmail(record.Document["telecom"], email)
	if err != nil {
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourcePractitioner)
	}
	record.Document["telecom"] = telecom

	if _, err := uc.PractitionerFhirClient.UpdatePractitioner(ctx, practitionerID, record.Document); err != nil {
		uc.Log.Error("onboardingUsecase.redeemUserCode error calling PractitionerFhirClient.UpdatePractitioner",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPractitionerIDKey, practitionerID),
			zap.Error(err),
		)
		return nil, err
	}

	return &responses.Redeem{
		Tier:           constvars.InviteTierUser,
		PractitionerID: practitionerID,
		Message:        "email bound to practitioner",
	}, nil
}

func (uc *onboardingUsecase) redeemAdminCode(ctx context.Context, organizationID, email, fullName string) (*responses.Redeem, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	matches, err := uc.PractitionerFhirClient.FindPractitionerByEmail(ctx, email)
	if err != nil {
		uc.Log.Error("onboardingUsecase.redeemAdminCode error calling PractitionerFhirClient.FindPractitionerByEmail",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	var practitionerID string
	practitionerCreated := false
	switch len(matches) {
	case 0:
		practitioner, err := newPractitioner(fullName, email)
		if err != nil {
			return nil, err
		}
		created, err := uc.PractitionerFhirClient.CreatePractitioner(ctx, practitioner)
		if err != nil {
			uc.Log.Error("onboardingUsecase.redeemAdminCode error calling PractitionerFhirClient.CreatePractitioner",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, err
		}
		practitionerID = created.ID
		practitionerCreated = true
	case 1:
		practitionerID = matches[0].ID
	default:
		uc.Log.Warn("onboardingUsecase.redeemAdminCode found several practitioners for email",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEmailKey, email),
			zap.Int(constvars.LoggingCollectedKey, len(matches)),
		)
		return nil, exceptions.ErrDuplicatePractitioner(len(matches), email)
	}

	ensured, err := uc.RoleUsecase.EnsureRole(ctx, practitionerID, organizationID, AdminRoles)
	if err != nil {
		uc.Log.Error("onboardingUsecase.redeemAdminCode error calling RoleUsecase.EnsureRole",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPractitionerIDKey, practitionerID),
			zap.String(constvars.LoggingOrganizationIDKey, organizationID),
			zap.Error(err),
		)
		return nil, err
	}

	result := &responses.Redeem{
		Tier:                constvars.InviteTierAdmin,
		PractitionerID:      practitionerID,
		OrganizationID:      organizationID,
		PractitionerCreated: practitionerCreated,
		RoleCreated:         ensured.Created,
		Message:             redeemMessage(practitionerCreated, ensured.Created),
	}
	if ensured.Role != nil {
		result.RoleID = ensured.Role.ID
	}

	uc.Log.Info("onboardingUsecase.redeemAdminCode succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPractitionerIDKey, practitionerID),
		zap.String("outcome", result.Message),
	)
	return result, nil
}

// publish reports the redemption downstream. A failure is logged only.
func (uc *onboardingUsecase) publish(ctx context.Context, result *responses.Redeem, email string) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	event := contracts.OnboardingEvent{
		ID:                  uuid.NewString(),
		Tier:                result.Tier,
		PractitionerID:      result.PractitionerID,
		OrganizationID:      result.OrganizationID,
		Email:               email,
		PractitionerCreated: result.PractitionerCreated,
		RoleCreated:         result.RoleCreated,
		OccurredAt:          time.Now().UTC(),
	}
	if err := uc.EventPublisher.PublishOnboarding(ctx, event); err != nil {
		uc.Log.Error("onboardingUsecase.publish error calling EventPublisher.PublishOnboarding",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPractitionerIDKey, result.PractitionerID),
			zap.Error(err),
		)
	}
}

func redeemMessage(practitionerCreated, roleCreated bool) string {
	practitioner := "practitioner already existed"
	if practitionerCreated {
		practitioner = "practitioner created"
	}
	role := "role already existed"
	if roleCreated {
		role = "role created"
	}
	return practitioner + ", " + role
}

// newPractitioner splits fullName on whitespace: the last token is the
// family name and the rest are given names.
func newPractitioner(fullName, email string) (*fhir_dto.Practitioner, error) {
	tokens := strings.Fields(fullName)
	if len(tokens) == 0 {
		return nil, exceptions.ErrInvalidInput(nil, "full name is required to create a practitioner")
	}

	active := true
	return &fhir_dto.Practitioner{
		ResourceType: constvars.ResourcePractitioner,
		Active:       &active,
		Name: []fhir_dto.HumanName{{
			Use:    constvars.FhirNameUseOfficial,
			Family: tokens[len(tokens)-1],
			Given:  tokens[:len(tokens)-1],
		}},
		Telecom: []fhir_dto.ContactPoint{{
			System: constvars.FhirContactSystemEmail,
			Value:  email,
			Use:    constvars.FhirContactUseWork,
		}},
	}, nil
}

// replaceEmail drops every email contact point from a raw telecom member
// and appends one for email. Other contact points keep their order and
// members.
func replaceEmail(raw json.RawMessage, email string) (json.RawMessage, error) {
	var telecom []map[string]json.RawMessage
	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, &telecom); err != nil {
			return nil, err
		}
	}

	kept := make([]interface{}, 0, len(telecom)+1)
	for _, point := range telecom {
		if gjson.ParseBytes(point["system"]).String() == constvars.FhirContactSystemEmail {
			continue
		}
		kept = append(kept, point)
	}
	kept = append(kept, fhir_dto.ContactPoint{
		System: constvars.FhirContactSystemEmail,
		Value:  email,
		Use:    constvars.FhirContactUseWork,
	})
	return json.Marshal(kept)
}
