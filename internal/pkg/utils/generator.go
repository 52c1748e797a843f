package utils

import (
	"fmt"
	"provider-directory/internal/pkg/constvars"
	"time"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + uuid.NewString()
}

// GenerateExportObjectName names a directory snapshot by its UTC creation time.
func GenerateExportObjectName(now time.Time) string {
	return fmt.Sprintf(constvars.DirectoryExportObjectFormat, now.UTC().Format("20060102T150405Z"))
}
