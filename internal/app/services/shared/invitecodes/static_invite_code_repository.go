package invitecodes

import (
	"context"
	"provider-directory/internal/app/contracts"
)

type staticInviteCodeRepository struct {
	table Table
}

// NewStaticInviteCodeRepository serves codes from an in-memory table. The
// two tiers must be disjoint.
func NewStaticInviteCodeRepository(table Table) (contracts.InviteCodeRepository, error) {
	if err := table.validate(); err != nil {
		return nil, err
	}
	return &staticInviteCodeRepository{table: table}, nil
}

func (r *staticInviteCodeRepository) FindUserCode(ctx context.Context, code string) (string, bool, error) {
	id, ok := r.table.User[code]
	return id, ok, nil
}

func (r *staticInviteCodeRepository) FindAdminCode(ctx context.Context, code string) (string, bool, error) {
	id, ok := r.table.Admin[code]
	return id, ok, nil
}
