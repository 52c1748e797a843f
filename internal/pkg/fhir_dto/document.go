package fhir_dto

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

// Document is a resource kept as raw top-level members so a whole-document
// update rewrites only the members that were set and passes everything else
// back to the store untouched.
type Document map[string]json.RawMessage

func ParseDocument(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("resource is not a JSON object")
	}
	return doc, nil
}

// Set replaces one top-level member with the JSON encoding of value.
func (d Document) Set(member string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	d[member] = raw
	return nil
}

// Decode unmarshals the whole document into a typed view.
func (d Document) Decode(target interface{}) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, target)
}

func (d Document) ID() string {
	return gjson.ParseBytes(d["id"]).String()
}

// PractitionerRoleRecord pairs the typed view of a role with the raw document it was read from.
type PractitionerRoleRecord struct {
	Role     PractitionerRole
	Document Document
}

// PractitionerRecord pairs the typed view of a practitioner with the raw document it was read from.
type PractitionerRecord struct {
	Practitioner Practitioner
	Document     Document
}
