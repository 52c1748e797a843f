package capacity

import (
	"provider-directory/internal/pkg/fhir_dto"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const capacityURL = "https://combinebh.org/resources/FHIRResources/PractitionerCapacityFHIRExtension.html"

var testCapacity = fhir_dto.Capacity{Children: 1, Adults: 2, Teens: 0, Couples: 3, Families: 4}

func TestPlanCapacityPatch(t *testing.T) {
	t.Run("appends when the extension array is missing", func(t *testing.T) {
		ops := PlanCapacityPatch(&fhir_dto.PractitionerRole{}, testCapacity)
		require.Len(t, ops, 1)
		assert.Equal(t, "add", ops[0].Op)
		assert.Equal(t, "/extension/-", ops[0].Path)
	})

	t.Run("appends when other extensions exist", func(t *testing.T) {
		role := &fhir_dto.PractitionerRole{Extension: []fhir_dto.Extension{{Url: "urn:a"}, {Url: "urn:b"}}}
		ops := PlanCapacityPatch(role, testCapacity)
		require.Len(t, ops, 1)
		assert.Equal(t, "add", ops[0].Op)
		assert.Equal(t, "/extension/-", ops[0].Path)
	})

	t.Run("replaces at the index where capacity lives", func(t *testing.T) {
		role := &fhir_dto.PractitionerRole{Extension: []fhir_dto.Extension{{Url: "urn:a"}, {Url: "urn:b"}, {Url: capacityURL}}}
		ops := PlanCapacityPatch(role, testCapacity)
		require.Len(t, ops, 1)
		assert.Equal(t, "replace", ops[0].Op)
		assert.Equal(t, "/extension/2", ops[0].Path)
	})

	t.Run("value carries every category", func(t *testing.T) {
		ops := PlanCapacityPatch(&fhir_dto.PractitionerRole{}, testCapacity)
		raw, err := json.Marshal(ops[0].Value)
		require.NoError(t, err)
		assert.JSONEq(t, `{"url":"`+capacityURL+`","extension":[
			{"url":"children","valueInteger":1},
			{"url":"adults","valueInteger":2},
			{"url":"teens","valueInteger":0},
			{"url":"couples","valueInteger":3},
			{"url":"families","valueInteger":4}
		]}`, string(raw))
	})
}

func TestPlanAvailabilityPatch(t *testing.T) {
	availability := []fhir_dto.AvailableTime{{DaysOfWeek: []string{"mon"}, AvailableStartTime: "09:00:00", AvailableEndTime: "17:00:00"}}

	t.Run("adds when absent", func(t *testing.T) {
		ops := PlanAvailabilityPatch(&fhir_dto.PractitionerRole{}, availability)
		require.Len(t, ops, 1)
		assert.Equal(t, "add", ops[0].Op)
		assert.Equal(t, "/availableTime", ops[0].Path)
	})

	t.Run("replaces when present", func(t *testing.T) {
		role := &fhir_dto.PractitionerRole{AvailableTime: []fhir_dto.AvailableTime{{AllDay: true}}}
		ops := PlanAvailabilityPatch(role, availability)
		require.Len(t, ops, 1)
		assert.Equal(t, "replace", ops[0].Op)
		assert.Equal(t, availability, ops[0].Value)
	})
}
