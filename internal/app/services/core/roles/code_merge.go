package roles

import (
	"provider-directory/internal/pkg/constvars"
	"provider-directory/internal/pkg/fhir_dto"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

type rawObject = map[string]json.RawMessage

// mergeRoleCodes folds roles into a raw code member. Codings are kept in
// document order with later repeats of a code removed, then unseen roles
// are appended to the first concept in request order. Members the typed
// view does not know about are carried through.
func mergeRoleCodes(raw json.RawMessage, roles []string) (json.RawMessage, []string, error) {
	var concepts []rawObject
	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, &concepts); err != nil {
			return nil, nil, err
		}
	}

	seen := make(map[string]bool)
	merged := make([]rawObject, 0, len(concepts)+1)
	for _, concept := range concepts {
		codingRaw, ok := concept["coding"]
		if !ok {
			merged = append(merged, concept)
			continue
		}

		var codings []rawObject
		if err := json.Unmarshal(codingRaw, &codings); err != nil {
			return nil, nil, err
		}
		kept := make([]rawObject, 0, len(codings))
		for _, coding := range codings {
			code := codingCode(coding)
			if code != "" {
				if seen[code] {
					continue
				}
				seen[code] = true
			}
			kept = append(kept, coding)
		}

		if len(kept) == 0 && len(concept) == 1 {
			continue
		}
		if len(kept) != len(codings) {
			encoded, err := json.Marshal(kept)
			if err != nil {
				return nil, nil, err
			}
			concept["coding"] = encoded
		}
		merged = append(merged, concept)
	}

	var added []string
	var additions []rawObject
	for _, role := range roles {
		if role == "" || seen[role] {
			continue
		}
		seen[role] = true
		coding, err := newRoleCoding(role)
		if err != nil {
			return nil, nil, err
		}
		additions = append(additions, coding)
		added = append(added, role)
	}

	if len(additions) > 0 {
		target := firstCodedConcept(merged)
		if target < 0 {
			merged = append(merged, rawObject{})
			target = len(merged) - 1
		}
		var codings []rawObject
		if existing, ok := merged[target]["coding"]; ok {
			if err := json.Unmarshal(existing, &codings); err != nil {
				return nil, nil, err
			}
		}
		codings = append(codings, additions...)
		encoded, err := json.Marshal(codings)
		if err != nil {
			return nil, nil, err
		}
		merged[target]["coding"] = encoded
	}

	out, err := json.Marshal(merged)
	if err != nil {
		return nil, nil, err
	}
	return out, added, nil
}

func firstCodedConcept(concepts []rawObject) int {
	for i, concept := range concepts {
		if _, ok := concept["coding"]; ok {
			return i
		}
	}
	if len(concepts) > 0 {
		return 0
	}
	return -1
}

func codingCode(coding rawObject) string {
	code := gjson.ParseBytes(coding["code"])
	if code.Type != gjson.String {
		return ""
	}
	return code.Str
}

func newRoleCoding(role string) (rawObject, error) {
	raw, err := json.Marshal(fhir_dto.Coding{System: constvars.FhirRoleCodeSystem, Code: role})
	if err != nil {
		return nil, err
	}
	var coding rawObject
	if err := json.Unmarshal(raw, &coding); err != nil {
		return nil, err
	}
	return coding, nil
}

// roleCodings renders deduplicated roles as one concept for a new record.
func roleCodings(roles []string) []fhir_dto.CodeableConcept {
	seen := make(map[string]bool, len(roles))
	codings := make([]fhir_dto.Coding, 0, len(roles))
	for _, role := range roles {
		if role == "" || seen[role] {
			continue
		}
		seen[role] = true
		codings = append(codings, fhir_dto.Coding{System: constvars.FhirRoleCodeSystem, Code: role})
	}
	return []fhir_dto.CodeableConcept{{Coding: codings}}
}
