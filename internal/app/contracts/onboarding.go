package contracts

import (
	"context"
	"provider-directory/internal/pkg/dto/responses"
	"time"
)

type OnboardingUsecase interface {
	Redeem(ctx context.Context, code, email, fullName string) (*responses.Redeem, error)
}

// InviteCodeRepository resolves a code in one tier. A miss is found=false with a nil error.
type InviteCodeRepository interface {
	FindUserCode(ctx context.Context, code string) (practitionerID string, found bool, err error)
	FindAdminCode(ctx context.Context, code string) (organizationID string, found bool, err error)
}

type OnboardingEvent struct {
	ID                  string    `json:"id"`
	Tier                string    `json:"tier"`
	PractitionerID      string    `json:"practitioner_id"`
	OrganizationID      string    `json:"organization_id,omitempty"`
	Email               string    `json:"email"`
	PractitionerCreated bool      `json:"practitioner_created"`
	RoleCreated         bool      `json:"role_created"`
	OccurredAt          time.Time `json:"occurred_at"`
}

type EventPublisher interface {
	PublishOnboarding(ctx context.Context, event OnboardingEvent) error
	Close() error
}
