package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestMinio(t *testing.T, handler http.HandlerFunc) *minio.Client {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	endpoint, err := url.Parse(server.URL)
	require.NoError(t, err)

	client, err := minio.New(endpoint.Host, &minio.Options{
		Creds:        credentials.NewStaticV4("access", "secret", ""),
		Secure:       false,
		Region:       "us-east-1",
		BucketLookup: minio.BucketLookupPath,
	})
	require.NoError(t, err)
	return client
}

func TestPutJSON(t *testing.T) {
	t.Run("uploads the object", func(t *testing.T) {
		var gotPath, gotType string
		var gotBody []byte
		client := newTestMinio(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotType = r.Header.Get("Content-Type")
			gotBody, _ = io.ReadAll(r.Body)
			w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
			w.WriteHeader(http.StatusOK)
		})

		storage := NewMinioStorage(client, zap.NewNop())
		err := storage.PutJSON(context.Background(), "directory", "organizations/20260101T000000Z.json", []byte(`[{"id":"O1"}]`))
		require.NoError(t, err)

		assert.Equal(t, "/directory/organizations/20260101T000000Z.json", gotPath)
		assert.Equal(t, "application/json", gotType)
		// Plain HTTP uploads use chunked signing, so the payload sits inside a chunk.
		assert.Contains(t, string(gotBody), `[{"id":"O1"}]`)
	})

	t.Run("server failure names the bucket", func(t *testing.T) {
		client := newTestMinio(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><Error><Code>AccessDenied</Code><Message>denied</Message></Error>`))
		})

		err := NewMinioStorage(client, zap.NewNop()).PutJSON(context.Background(), "directory", "x.json", []byte(`{}`))
		assert.ErrorContains(t, err, "directory")
	})
}

func TestDisabledStorage(t *testing.T) {
	err := NewDisabledStorage().PutJSON(context.Background(), "exports", "organizations/x.json", []byte("[]"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exports")
}
