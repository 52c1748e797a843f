package storage

import (
	"context"
	"provider-directory/internal/app/contracts"
	"provider-directory/internal/pkg/exceptions"
)

type disabledStorage struct{}

// NewDisabledStorage stands in when no object store is configured. Every write fails.
func NewDisabledStorage() contracts.ObjectStorage {
	return disabledStorage{}
}

func (disabledStorage) PutJSON(ctx context.Context, bucketName, objectName string, data []byte) error {
	return exceptions.ErrObjectStorageDisabled(bucketName)
}
