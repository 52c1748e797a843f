package events

import (
	"context"
	"provider-directory/internal/app/contracts"
	"provider-directory/internal/pkg/constvars"

	"go.uber.org/zap"
)

type noopPublisher struct {
	log *zap.Logger
}

// NewNoopPublisher only logs events. It is used when no broker is configured.
func NewNoopPublisher(log *zap.Logger) contracts.EventPublisher {
	return &noopPublisher{log: log}
}

func (p *noopPublisher) PublishOnboarding(ctx context.Context, event contracts.OnboardingEvent) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	p.log.Debug("noopPublisher.PublishOnboarding dropped event",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingInviteTierKey, event.Tier),
	)
	return nil
}

func (p *noopPublisher) Close() error { return nil }
