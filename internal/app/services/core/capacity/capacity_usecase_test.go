package capacity

import (
	"context"
	"net/http"
	"provider-directory/internal/app/contracts"
	"provider-directory/internal/app/services/fhir_store/fhirtest"
	practitionerRoles "provider-directory/internal/app/services/fhir_store/practitioner_role"
	"provider-directory/internal/pkg/exceptions"
	"provider-directory/internal/pkg/fhir_dto"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestUsecase(t *testing.T) (*fhirtest.Server, contracts.CapacityUsecase) {
	store := fhirtest.NewServer(t)
	client := practitionerRoles.NewPractitionerRoleFhirClient(store.DirectoryClient(), zap.NewNop())
	return store, NewCapacityUsecase(client, zap.NewNop())
}

const roleWithExtensions = `{
	"resourceType":"PractitionerRole",
	"id":"R1",
	"note":[{"text":"keep"}],
	"extension":[
		{"url":"urn:a","valueString":"x"},
		{"url":"urn:b","valueString":"y"},
		{"url":"https://combinebh.org/resources/FHIRResources/PractitionerCapacityFHIRExtension.html","extension":[{"url":"children","valueInteger":9}]}
	]
}`

func TestSetCapacity(t *testing.T) {
	ctx := context.Background()

	t.Run("appends capacity to a role without it", func(t *testing.T) {
		store, uc := newTestUsecase(t)
		store.Seed("PractitionerRole", `{"resourceType":"PractitionerRole","id":"R1"}`)

		role, err := uc.SetCapacity(ctx, "R1", testCapacity)
		require.NoError(t, err)
		require.Len(t, role.Extension, 1)

		patches := store.Requests(http.MethodPatch)
		require.Len(t, patches, 1)
		var ops []fhir_dto.PatchOperation
		require.NoError(t, json.Unmarshal(patches[0].Body, &ops))
		assert.Equal(t, "/extension/-", ops[0].Path)
	})

	t.Run("replaces capacity in place", func(t *testing.T) {
		store, uc := newTestUsecase(t)
		store.Seed("PractitionerRole", roleWithExtensions)

		role, err := uc.SetCapacity(ctx, "R1", testCapacity)
		require.NoError(t, err)
		require.Len(t, role.Extension, 3)
		assert.Equal(t, "urn:a", role.Extension[0].Url)

		capacity, err := uc.GetCapacity(ctx, "R1")
		require.NoError(t, err)
		assert.Equal(t, testCapacity, *capacity)
		assert.Empty(t, store.Requests(http.MethodPut))
	})

	t.Run("falls back to a whole-document write when patch is refused", func(t *testing.T) {
		store, uc := newTestUsecase(t)
		store.RejectPatch = true
		store.Seed("PractitionerRole", roleWithExtensions)

		role, err := uc.SetCapacity(ctx, "R1", testCapacity)
		require.NoError(t, err)
		require.Len(t, role.Extension, 3)
		assert.Len(t, store.Requests(http.MethodPut), 1)

		doc := store.Get("PractitionerRole", "R1")
		assert.JSONEq(t, `[{"text":"keep"}]`, string(doc["note"]))

		capacity, err := uc.GetCapacity(ctx, "R1")
		require.NoError(t, err)
		assert.Equal(t, testCapacity, *capacity)
	})

	t.Run("missing role is not found", func(t *testing.T) {
		_, uc := newTestUsecase(t)
		_, err := uc.SetCapacity(ctx, "nope", testCapacity)
		assert.True(t, exceptions.IsKind(err, exceptions.KindNotFound))
	})
}

func TestGetCapacity(t *testing.T) {
	ctx := context.Background()

	t.Run("role without capacity reads as unset", func(t *testing.T) {
		store, uc := newTestUsecase(t)
		store.Seed("PractitionerRole", `{"resourceType":"PractitionerRole","id":"R1"}`)

		capacity, err := uc.GetCapacity(ctx, "R1")
		require.NoError(t, err)
		assert.Nil(t, capacity)
	})

	t.Run("missing role is not found", func(t *testing.T) {
		_, uc := newTestUsecase(t)
		_, err := uc.GetCapacity(ctx, "nope")
		assert.True(t, exceptions.IsKind(err, exceptions.KindNotFound))
	})

	t.Run("partial extension reads the categories present", func(t *testing.T) {
		store, uc := newTestUsecase(t)
		store.Seed("PractitionerRole", roleWithExtensions)

		capacity, err := uc.GetCapacity(ctx, "R1")
		require.NoError(t, err)
		assert.Equal(t, 9, capacity.Children)
	})
}

func TestSetAvailability(t *testing.T) {
	ctx := context.Background()
	availability := []fhir_dto.AvailableTime{{DaysOfWeek: []string{"tue", "wed"}, AllDay: true}}

	t.Run("adds then replaces", func(t *testing.T) {
		store, uc := newTestUsecase(t)
		store.Seed("PractitionerRole", `{"resourceType":"PractitionerRole","id":"R1"}`)

		_, err := uc.SetAvailability(ctx, "R1", availability)
		require.NoError(t, err)
		role, err := uc.SetAvailability(ctx, "R1", []fhir_dto.AvailableTime{{DaysOfWeek: []string{"fri"}}})
		require.NoError(t, err)
		assert.Equal(t, []string{"fri"}, role.AvailableTime[0].DaysOfWeek)

		patches := store.Requests(http.MethodPatch)
		require.Len(t, patches, 2)
		assert.Contains(t, string(patches[0].Body), `"op":"add"`)
		assert.Contains(t, string(patches[1].Body), `"op":"replace"`)
	})

	t.Run("falls back when patch is refused", func(t *testing.T) {
		store, uc := newTestUsecase(t)
		store.RejectPatch = true
		store.Seed("PractitionerRole", `{"resourceType":"PractitionerRole","id":"R1","active":true}`)

		role, err := uc.SetAvailability(ctx, "R1", availability)
		require.NoError(t, err)
		assert.Equal(t, availability, role.AvailableTime)
		require.NotNil(t, role.Active)
	})
}
