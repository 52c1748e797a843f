package invitecodes

import (
	"context"
	"fmt"
	"provider-directory/internal/app/contracts"
	"provider-directory/internal/pkg/constvars"
	"provider-directory/internal/pkg/exceptions"

	"go.uber.org/zap"
)

const (
	userCodeKeyFmt  = "invite:user:%s"
	adminCodeKeyFmt = "invite:admin:%s"
)

type RedisInviteCodeRepository struct {
	redisRepo contracts.RedisRepository
	Log       *zap.Logger
}

func NewRedisInviteCodeRepository(repo contracts.RedisRepository, logger *zap.Logger) *RedisInviteCodeRepository {
	return &RedisInviteCodeRepository{
		redisRepo: repo,
		Log:       logger,
	}
}

func (r *RedisInviteCodeRepository) FindUserCode(ctx context.Context, code string) (string, bool, error) {
	return r.find(ctx, fmt.Sprintf(userCodeKeyFmt, code))
}

func (r *RedisInviteCodeRepository) FindAdminCode(ctx context.Context, code string) (string, bool, error) {
	return r.find(ctx, fmt.Sprintf(adminCodeKeyFmt, code))
}

// Seed writes every code of the table without expiry. Existing keys for
// other codes are left alone.
func (r *RedisInviteCodeRepository) Seed(ctx context.Context, table Table) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("RedisInviteCodeRepository.Seed called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingDataKey, len(table.User)+len(table.Admin)),
	)

	if err := table.validate(); err != nil {
		return err
	}
	for code, practitionerID := range table.User {
		if err := r.redisRepo.SetString(ctx, fmt.Sprintf(userCodeKeyFmt, code), practitionerID, 0); err != nil {
			return err
		}
	}
	for code, organizationID := range table.Admin {
		if err := r.redisRepo.SetString(ctx, fmt.Sprintf(adminCodeKeyFmt, code), organizationID, 0); err != nil {
			return err
		}
	}
	return nil
}

func (r *RedisInviteCodeRepository) find(ctx context.Context, key string) (string, bool, error) {
	id, err := r.redisRepo.Get(ctx, key)
	if err != nil {
		r.Log.Error("RedisInviteCodeRepository.find error calling redisRepo.Get",
			zap.String(constvars.LoggingRequestIDKey, ctxRequestID(ctx)),
			zap.Error(err),
		)
		return "", false, exceptions.ErrInviteCodeLookup(err)
	}
	if id == "" {
		return "", false, nil
	}
	return id, true, nil
}

func ctxRequestID(ctx context.Context) string {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	return requestID
}
