package credentials

import (
	"context"
	"provider-directory/internal/app/contracts"
	"provider-directory/internal/pkg/exceptions"
)

type staticTokenSource struct {
	token string
}

// NewStaticTokenSource serves one fixed bearer token. Invalidate is a no-op,
// so a store that rejects the token fails on the retried call.
func NewStaticTokenSource(token string) contracts.TokenSource {
	return &staticTokenSource{token: token}
}

func (s *staticTokenSource) Token(ctx context.Context) (string, error) {
	if s.token == "" {
		return "", exceptions.ErrUnauthenticated(nil)
	}
	return s.token, nil
}

func (s *staticTokenSource) Invalidate() {}
