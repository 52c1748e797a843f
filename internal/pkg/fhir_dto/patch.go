package fhir_dto

// PatchOperation is one JSON Patch (RFC 6902) step. The directory store only
// honours add and replace.
type PatchOperation struct {
	Op    string      `json:"op"`
	Path  string      `json:"path"`
	Value interface{} `json:"value,omitempty"`
}
