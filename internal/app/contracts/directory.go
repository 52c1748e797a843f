package contracts

import (
	"context"
	"net/url"
	"provider-directory/internal/pkg/fhir_dto"
)

// DirectoryClient is the authenticated document API of the FHIR store.
// Responses are returned as the raw bytes the store sent back.
type DirectoryClient interface {
	DirectorySearcher
	Create(ctx context.Context, resourceType string, doc interface{}) ([]byte, error)
	Read(ctx context.Context, resourceType, id string) ([]byte, error)
	Update(ctx context.Context, resourceType, id string, doc interface{}) ([]byte, error)
	Patch(ctx context.Context, resourceType, id string, ops []fhir_dto.PatchOperation) ([]byte, error)
	Delete(ctx context.Context, resourceType, id string) error
	Transaction(ctx context.Context, bundle *fhir_dto.FHIRBundle) (*fhir_dto.FHIRBundle, error)
}

type DirectorySearcher interface {
	Search(ctx context.Context, resourceType string, params url.Values) (*fhir_dto.FHIRBundle, error)
	SearchPage(ctx context.Context, pageURL string) (*fhir_dto.FHIRBundle, error)
}

type TokenSource interface {
	Token(ctx context.Context) (string, error)
	Invalidate()
}
