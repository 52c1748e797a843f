package directory

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"provider-directory/internal/pkg/exceptions"
	"provider-directory/internal/pkg/fhir_dto"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeTokenSource struct {
	tokens        []string
	calls         int
	invalidations int
	err           error
}

func (f *fakeTokenSource) Token(ctx context.Context) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	token := f.tokens[f.invalidations%len(f.tokens)]
	f.calls++
	return token, nil
}

func (f *fakeTokenSource) Invalidate() {
	f.invalidations++
}

func newTestClient(t *testing.T, handler http.HandlerFunc, tokens *fakeTokenSource) *Client {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	if tokens == nil {
		tokens = &fakeTokenSource{tokens: []string{"tok"}}
	}
	return NewDirectoryClient(Options{
		BaseUrl:     server.URL + "/fhir/",
		HTTPClient:  server.Client(),
		TokenSource: tokens,
		Log:         zap.NewNop(),
	})
}

func TestClientCreate(t *testing.T) {
	t.Run("returns the stored document", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/fhir/Practitioner", r.URL.Path)
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			assert.Equal(t, "application/fhir+json", r.Header.Get("Content-Type"))
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"resourceType":"Practitioner","id":"P1"}`))
		}, nil)

		body, err := client.Create(context.Background(), "Practitioner", fhir_dto.Practitioner{ResourceType: "Practitioner"})
		require.NoError(t, err)
		assert.JSONEq(t, `{"resourceType":"Practitioner","id":"P1"}`, string(body))
	})

	t.Run("store rejection carries diagnostics", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"resourceType":"OperationOutcome","issue":[{"severity":"error","diagnostics":"name is required"}]}`))
		}, nil)

		_, err := client.Create(context.Background(), "Practitioner", map[string]string{})
		assert.True(t, exceptions.IsKind(err, exceptions.KindRemoteRejected))
		assert.Contains(t, err.Error(), "name is required")
	})
}

func TestClientRead(t *testing.T) {
	t.Run("missing document", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/fhir/Practitioner/P404", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}, nil)

		_, err := client.Read(context.Background(), "Practitioner", "P404")
		assert.True(t, exceptions.IsKind(err, exceptions.KindNotFound))
	})

	t.Run("server error is unavailable and not retried", func(t *testing.T) {
		var hits int32
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&hits, 1)
			w.WriteHeader(http.StatusServiceUnavailable)
		}, nil)

		_, err := client.Read(context.Background(), "Practitioner", "P1")
		assert.True(t, exceptions.IsKind(err, exceptions.KindRemoteUnavailable))
		assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
	})

	t.Run("timeout is unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer server.Close()

		client := NewDirectoryClient(Options{
			BaseUrl:     server.URL,
			HTTPClient:  &http.Client{Timeout: 20 * time.Millisecond},
			TokenSource: &fakeTokenSource{tokens: []string{"tok"}},
		})

		_, err := client.Read(context.Background(), "Practitioner", "P1")
		assert.True(t, exceptions.IsKind(err, exceptions.KindRemoteUnavailable))
	})
}

func TestClientCredentials(t *testing.T) {
	t.Run("401 refreshes the credential once", func(t *testing.T) {
		tokens := &fakeTokenSource{tokens: []string{"stale", "fresh"}}
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer fresh" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Write([]byte(`{"resourceType":"Organization","id":"O1"}`))
		}, tokens)

		_, err := client.Read(context.Background(), "Organization", "O1")
		require.NoError(t, err)
		assert.Equal(t, 1, tokens.invalidations)
		assert.Equal(t, 2, tokens.calls)
	})

	t.Run("repeated 401 is unauthenticated", func(t *testing.T) {
		tokens := &fakeTokenSource{tokens: []string{"bad"}}
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}, tokens)

		_, err := client.Read(context.Background(), "Organization", "O1")
		assert.True(t, exceptions.IsKind(err, exceptions.KindUnauthenticated))
		assert.Equal(t, 2, tokens.calls)
	})

	t.Run("no credential means no request", func(t *testing.T) {
		var hits int32
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&hits, 1)
		}, &fakeTokenSource{err: errors.New("metadata server unreachable")})

		_, err := client.Search(context.Background(), "Organization", nil)
		assert.True(t, exceptions.IsKind(err, exceptions.KindUnauthenticated))
		assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
	})
}

func TestClientPatch(t *testing.T) {
	t.Run("sends a json patch body", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPatch, r.Method)
			assert.Equal(t, "application/json-patch+json", r.Header.Get("Content-Type"))
			body, _ := io.ReadAll(r.Body)
			assert.JSONEq(t, `[{"op":"add","path":"/availableTime","value":[{"daysOfWeek":["mon"]}]}]`, string(body))
			w.Write([]byte(`{"resourceType":"PractitionerRole","id":"R1"}`))
		}, nil)

		ops := []fhir_dto.PatchOperation{{Op: "add", Path: "/availableTime", Value: []fhir_dto.AvailableTime{{DaysOfWeek: []string{"mon"}}}}}
		_, err := client.Patch(context.Background(), "PractitionerRole", "R1", ops)
		assert.NoError(t, err)
	})

	t.Run("unsupported op is refused locally", func(t *testing.T) {
		var hits int32
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&hits, 1)
		}, nil)

		_, err := client.Patch(context.Background(), "PractitionerRole", "R1", []fhir_dto.PatchOperation{{Op: "remove", Path: "/code"}})
		assert.True(t, exceptions.IsKind(err, exceptions.KindPatchRejected))
		assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
	})

	t.Run("invalid path is patch rejected", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"resourceType":"OperationOutcome","issue":[{"severity":"error","diagnostics":"path /extension/4 does not exist"}]}`))
		}, nil)

		_, err := client.Patch(context.Background(), "PractitionerRole", "R1", []fhir_dto.PatchOperation{{Op: "replace", Path: "/extension/4", Value: 1}})
		assert.True(t, exceptions.IsKind(err, exceptions.KindPatchRejected))
		assert.Contains(t, err.Error(), "does not exist")
	})
}

func TestClientSearch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.RawQuery {
		case "email=a%40b.c":
			w.Write([]byte(`{"resourceType":"Bundle","link":[{"relation":"next","url":"Practitioner?page=2"}],"entry":[{"resource":{"resourceType":"Practitioner","id":"P1"}}]}`))
		case "page=2":
			assert.Equal(t, "/fhir/Practitioner", r.URL.Path)
			w.Write([]byte(`{"resourceType":"Bundle","entry":[]}`))
		default:
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
	}, nil)

	first, err := client.Search(context.Background(), "Practitioner", url.Values{"email": {"a@b.c"}})
	require.NoError(t, err)
	require.Len(t, first.Entry, 1)

	next, ok := first.NextLink("next")
	require.True(t, ok)

	second, err := client.SearchPage(context.Background(), next)
	require.NoError(t, err)
	assert.Empty(t, second.Entry)
}

func TestClientUpdateAndDelete(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			w.WriteHeader(http.StatusNotFound)
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		}
	}, nil)

	_, err := client.Update(context.Background(), "PractitionerRole", "R9", fhir_dto.Document{})
	assert.True(t, exceptions.IsKind(err, exceptions.KindNotFound))

	assert.NoError(t, client.Delete(context.Background(), "Practitioner", "P1"))
}

func TestClientDeleteStatuses(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		kind    exceptions.Kind
		message string
	}{
		{name: "not found", status: http.StatusNotFound, kind: exceptions.KindNotFound},
		{name: "gone", status: http.StatusGone, kind: exceptions.KindNotFound},
		{name: "conflict", status: http.StatusConflict, kind: exceptions.KindRemoteRejected, message: "rejected delete of Practitioner"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodDelete, r.Method)
				w.WriteHeader(tc.status)
			}, nil)

			err := client.Delete(context.Background(), "Practitioner", "P1")
			require.Error(t, err)
			assert.Equal(t, tc.kind, exceptions.KindOf(err))
			if tc.message != "" {
				var customErr *exceptions.CustomError
				require.True(t, errors.As(err, &customErr))
				assert.Contains(t, customErr.DevMessage, tc.message)
			}
		})
	}
}

func TestClientTransaction(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fhir", r.URL.Path)
		w.Write([]byte(`{"resourceType":"Bundle","type":"transaction-response","entry":[{"response":{"status":"201 Created","location":"PractitionerRole/R1/_history/1"}}]}`))
	}, nil)

	result, err := client.Transaction(context.Background(), &fhir_dto.FHIRBundle{ResourceType: "Bundle", Type: "transaction"})
	require.NoError(t, err)
	require.Len(t, result.Entry, 1)
	assert.Equal(t, "PractitionerRole/R1/_history/1", result.Entry[0].Response.Location)
}
