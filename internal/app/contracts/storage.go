package contracts

import "context"

type ObjectStorage interface {
	PutJSON(ctx context.Context, bucketName, objectName string, data []byte) error
}
