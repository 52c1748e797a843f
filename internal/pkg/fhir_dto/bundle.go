package fhir_dto

import "github.com/goccy/go-json"

type FHIRBundle struct {
	ResourceType string       `json:"resourceType"`
	ID           string       `json:"id,omitempty"`
	Type         string       `json:"type,omitempty"`
	Total        *int         `json:"total,omitempty"`
	Link         []BundleLink `json:"link,omitempty"`
	Entry        []Entry      `json:"entry,omitempty"`
}

type BundleLink struct {
	Relation string `json:"relation"`
	URL      string `json:"url"`
}

type Entry struct {
	FullURL  string          `json:"fullUrl,omitempty"`
	Resource json.RawMessage `json:"resource,omitempty"`
	Request  *EntryRequest   `json:"request,omitempty"`
	Response *EntryResponse  `json:"response,omitempty"`
}

type EntryRequest struct {
	Method string `json:"method"`
	URL    string `json:"url"`
}

type EntryResponse struct {
	Status   string `json:"status"`
	Location string `json:"location,omitempty"`
}

// NextLink returns the url of the "next" link, if the page has one.
func (b *FHIRBundle) NextLink(relation string) (string, bool) {
	for _, link := range b.Link {
		if link.Relation == relation && link.URL != "" {
			return link.URL, true
		}
	}
	return "", false
}
