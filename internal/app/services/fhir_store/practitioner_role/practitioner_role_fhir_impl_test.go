package practitionerRoles

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"provider-directory/internal/app/services/fhir_store/directory"
	"provider-directory/internal/pkg/fhir_dto"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type staticToken struct{}

func (staticToken) Token(ctx context.Context) (string, error) { return "tok", nil }
func (staticToken) Invalidate()                               {}

func newTestRoleClient(t *testing.T, handler http.HandlerFunc) *practitionerRoleFhirClient {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	dc := directory.NewDirectoryClient(directory.Options{
		BaseUrl:     server.URL,
		HTTPClient:  server.Client(),
		TokenSource: staticToken{},
		Log:         zap.NewNop(),
	})
	return NewPractitionerRoleFhirClient(dc, zap.NewNop()).(*practitionerRoleFhirClient)
}

func TestFindPractitionerRolesByPractitionerID(t *testing.T) {
	client := newTestRoleClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/PractitionerRole", r.URL.Path)
		assert.Equal(t, "Practitioner/P1", r.URL.Query().Get("practitioner"))
		w.Write([]byte(`{"resourceType":"Bundle","entry":[
			{"resource":{"resourceType":"PractitionerRole","id":"R1","organization":{"reference":"Organization/O1"},"note":[{"text":"keep"}]}},
			{"resource":{"resourceType":"PractitionerRole","id":"R2","organization":{"reference":"Organization/O2"}}}
		]}`))
	})

	records, err := client.FindPractitionerRolesByPractitionerID(context.Background(), "P1")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "R1", records[0].Role.ID)
	assert.Equal(t, "Organization/O1", records[0].Role.OrganizationReference())
	assert.JSONEq(t, `[{"text":"keep"}]`, string(records[0].Document["note"]))
}

func TestCreatePractitionerRoles(t *testing.T) {
	client := newTestRoleClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var bundle fhir_dto.FHIRBundle
		require.NoError(t, json.Unmarshal(body, &bundle))
		assert.Equal(t, "transaction", bundle.Type)
		require.Len(t, bundle.Entry, 2)
		assert.Contains(t, bundle.Entry[0].FullURL, "urn:uuid:")
		assert.NotEqual(t, bundle.Entry[0].FullURL, bundle.Entry[1].FullURL)
		assert.Equal(t, "POST", bundle.Entry[0].Request.Method)

		w.Write([]byte(`{"resourceType":"Bundle","type":"transaction-response","entry":[
			{"response":{"status":"201 Created","location":"PractitionerRole/R1/_history/1"}},
			{"response":{"status":"201 Created","location":"PractitionerRole/R2/_history/1"}}
		]}`))
	})

	locations, err := client.CreatePractitionerRoles(context.Background(), []fhir_dto.PractitionerRole{
		{Practitioner: &fhir_dto.Reference{Reference: "Practitioner/P1"}},
		{Practitioner: &fhir_dto.Reference{Reference: "Practitioner/P2"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"PractitionerRole/R1/_history/1", "PractitionerRole/R2/_history/1"}, locations)
}

func TestUpdatePractitionerRoleSendsWholeDocument(t *testing.T) {
	client := newTestRoleClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/PractitionerRole/R1", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"resourceType":"PractitionerRole","id":"R1","custom":{"a":1}}`, string(body))
		w.Write(body)
	})

	doc, err := fhir_dto.ParseDocument([]byte(`{"resourceType":"PractitionerRole","id":"R1","custom":{"a":1}}`))
	require.NoError(t, err)

	role, err := client.UpdatePractitionerRole(context.Background(), "R1", doc)
	require.NoError(t, err)
	assert.Equal(t, "R1", role.ID)
}
