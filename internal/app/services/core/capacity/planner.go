package capacity

import (
	"fmt"
	"provider-directory/internal/pkg/constvars"
	"provider-directory/internal/pkg/fhir_dto"
)

// PlanCapacityPatch returns the single op that writes capacity onto role:
// an append when no capacity extension exists, otherwise a replace at the
// index where it was found.
func PlanCapacityPatch(role *fhir_dto.PractitionerRole, capacity fhir_dto.Capacity) []fhir_dto.PatchOperation {
	value := capacity.ToExtension(constvars.FhirCapacityExtensionURL)

	if index := capacityIndex(role); index >= 0 {
		return []fhir_dto.PatchOperation{{
			Op:    constvars.FhirPatchOpReplace,
			Path:  fmt.Sprintf(constvars.FhirPathExtensionIndex, index),
			Value: value,
		}}
	}
	return []fhir_dto.PatchOperation{{
		Op:    constvars.FhirPatchOpAdd,
		Path:  constvars.FhirPathExtensionAppend,
		Value: value,
	}}
}

// PlanAvailabilityPatch adds availableTime when the role has none and
// replaces it otherwise.
func PlanAvailabilityPatch(role *fhir_dto.PractitionerRole, availability []fhir_dto.AvailableTime) []fhir_dto.PatchOperation {
	op := constvars.FhirPatchOpAdd
	if role != nil && len(role.AvailableTime) > 0 {
		op = constvars.FhirPatchOpReplace
	}
	return []fhir_dto.PatchOperation{{
		Op:    op,
		Path:  constvars.FhirPathAvailableTime,
		Value: availability,
	}}
}

func capacityIndex(role *fhir_dto.PractitionerRole) int {
	if role == nil {
		return -1
	}
	for i, ext := range role.Extension {
		if ext.Url == constvars.FhirCapacityExtensionURL {
			return i
		}
	}
	return -1
}
