// Package fhirtest runs an in-memory FHIR store over httptest for tests.
//
// It supports create, read, update, delete, JSON Patch (add and replace),
// transaction bundles and the search parameters the directory uses. The
// organization search parameter is ignored.
package fhirtest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"provider-directory/internal/app/contracts"
	"provider-directory/internal/app/services/fhir_store/directory"
	"provider-directory/internal/pkg/fhir_dto"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   []byte
}

type Server struct {
	*httptest.Server

	// PageSize splits search results into pages when positive.
	PageSize int
	// RejectPatch makes every PATCH fail with 422.
	RejectPatch bool

	mu        sync.Mutex
	resources map[string]map[string][]byte
	order     map[string][]string
	nextID    int
	requests  []Request
}

func NewServer(t testing.TB) *Server {
	s := &Server{
		resources: make(map[string]map[string][]byte),
		order:     make(map[string][]string),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

type staticToken struct{}

func (staticToken) Token(ctx context.Context) (string, error) { return "test-token", nil }
func (staticToken) Invalidate()                               {}

// DirectoryClient returns a real directory client pointed at the server.
func (s *Server) DirectoryClient() contracts.DirectoryClient {
	return directory.NewDirectoryClient(directory.Options{
		BaseUrl:     s.URL,
		HTTPClient:  s.Client(),
		TokenSource: staticToken{},
		Log:         zap.NewNop(),
	})
}

// Seed stores a raw resource and returns its id. A missing id is assigned.
func (s *Server) Seed(resourceType, raw string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := fhir_dto.ParseDocument([]byte(raw))
	if err != nil {
		panic(err)
	}
	id := doc.ID()
	if id == "" {
		id = s.assignID()
	}
	s.store(resourceType, id, doc)
	return id
}

// Get returns the stored document, or nil.
func (s *Server) Get(resourceType, id string) fhir_dto.Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.resources[resourceType][id]
	if !ok {
		return nil
	}
	doc, _ := fhir_dto.ParseDocument(raw)
	return doc
}

// All returns every stored document of a type in creation order.
func (s *Server) All(resourceType string) []fhir_dto.Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := make([]fhir_dto.Document, 0, len(s.order[resourceType]))
	for _, id := range s.order[resourceType] {
		if raw, ok := s.resources[resourceType][id]; ok {
			doc, _ := fhir_dto.ParseDocument(raw)
			docs = append(docs, doc)
		}
	}
	return docs
}

// Requests returns the requests received so far that match method, or all when method is empty.
func (s *Server) Requests(method string) []Request {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Request
	for _, r := range s.requests {
		if method == "" || r.Method == method {
			out = append(out, r)
		}
	}
	return out
}

func (s *Server) assignID() string {
	s.nextID++
	return strconv.Itoa(s.nextID)
}

func (s *Server) store(resourceType, id string, doc fhir_dto.Document) []byte {
	_ = doc.Set("id", id)
	_ = doc.Set("resourceType", resourceType)
	raw, _ := json.Marshal(doc)
	if s.resources[resourceType] == nil {
		s.resources[resourceType] = make(map[string][]byte)
	}
	if _, exists := s.resources[resourceType][id]; !exists {
		s.order[resourceType] = append(s.order[resourceType], id)
	}
	s.resources[resourceType][id] = raw
	return raw
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, Request{Method: r.Method, Path: r.URL.Path, Query: r.URL.Query(), Body: body})

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	switch {
	case r.URL.Path == "/" && r.Method == http.MethodPost:
		s.transaction(w, body)
	case len(parts) == 1 && r.Method == http.MethodPost:
		s.create(w, parts[0], body)
	case len(parts) == 1 && r.Method == http.MethodGet:
		s.search(w, parts[0], r.URL.Query())
	case len(parts) == 2 && r.Method == http.MethodGet:
		s.read(w, parts[0], parts[1])
	case len(parts) == 2 && r.Method == http.MethodPut:
		s.update(w, parts[0], parts[1], body)
	case len(parts) == 2 && r.Method == http.MethodPatch:
		s.patch(w, parts[0], parts[1], body)
	case len(parts) == 2 && r.Method == http.MethodDelete:
		s.delete(w, parts[0], parts[1])
	default:
		outcome(w, http.StatusBadRequest, "unsupported interaction")
	}
}

func (s *Server) create(w http.ResponseWriter, resourceType string, body []byte) {
	doc, err := fhir_dto.ParseDocument(body)
	if err != nil {
		outcome(w, http.StatusBadRequest, err.Error())
		return
	}
	raw := s.store(resourceType, s.assignID(), doc)
	w.WriteHeader(http.StatusCreated)
	w.Write(raw)
}

func (s *Server) read(w http.ResponseWriter, resourceType, id string) {
	raw, ok := s.resources[resourceType][id]
	if !ok {
		outcome(w, http.StatusNotFound, fmt.Sprintf("%s/%s is not known", resourceType, id))
		return
	}
	w.Write(raw)
}

func (s *Server) update(w http.ResponseWriter, resourceType, id string, body []byte) {
	if _, ok := s.resources[resourceType][id]; !ok {
		outcome(w, http.StatusNotFound, fmt.Sprintf("%s/%s is not known", resourceType, id))
		return
	}
	doc, err := fhir_dto.ParseDocument(body)
	if err != nil {
		outcome(w, http.StatusBadRequest, err.Error())
		return
	}
	w.Write(s.store(resourceType, id, doc))
}

func (s *Server) delete(w http.ResponseWriter, resourceType, id string) {
	if _, ok := s.resources[resourceType][id]; !ok {
		outcome(w, http.StatusNotFound, fmt.Sprintf("%s/%s is not known", resourceType, id))
		return
	}
	delete(s.resources[resourceType], id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) patch(w http.ResponseWriter, resourceType, id string, body []byte) {
	if s.RejectPatch {
		outcome(w, http.StatusUnprocessableEntity, "patch is not supported")
		return
	}
	raw, ok := s.resources[resourceType][id]
	if !ok {
		outcome(w, http.StatusNotFound, fmt.Sprintf("%s/%s is not known", resourceType, id))
		return
	}

	var ops []fhir_dto.PatchOperation
	if err := json.Unmarshal(body, &ops); err != nil {
		outcome(w, http.StatusBadRequest, err.Error())
		return
	}
	doc, _ := fhir_dto.ParseDocument(raw)
	for _, op := range ops {
		if err := applyOp(doc, op); err != nil {
			outcome(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
	}
	w.Write(s.store(resourceType, id, doc))
}

// applyOp handles /member, /member/- and /member/<index>.
func applyOp(doc fhir_dto.Document, op fhir_dto.PatchOperation) error {
	if op.Op != "add" && op.Op != "replace" {
		return fmt.Errorf("op %s is not supported", op.Op)
	}
	segments := strings.Split(strings.TrimPrefix(op.Path, "/"), "/")
	member := segments[0]
	_, exists := doc[member]

	if len(segments) == 1 {
		if op.Op == "replace" && !exists {
			return fmt.Errorf("cannot replace missing member %s", member)
		}
		return doc.Set(member, op.Value)
	}

	var items []interface{}
	if exists {
		if err := json.Unmarshal(doc[member], &items); err != nil {
			return fmt.Errorf("member %s is not an array", member)
		}
	}
	if segments[1] == "-" {
		if op.Op != "add" {
			return fmt.Errorf("replace at end of array")
		}
		return doc.Set(member, append(items, op.Value))
	}

	index, err := strconv.Atoi(segments[1])
	if err != nil || index < 0 || index > len(items) {
		return fmt.Errorf("index %s out of range for %s", segments[1], member)
	}
	switch {
	case op.Op == "replace" && index == len(items):
		return fmt.Errorf("index %d out of range for %s", index, member)
	case op.Op == "replace":
		items[index] = op.Value
	default:
		items = append(items[:index], append([]interface{}{op.Value}, items[index:]...)...)
	}
	return doc.Set(member, items)
}

func (s *Server) transaction(w http.ResponseWriter, body []byte) {
	var bundle fhir_dto.FHIRBundle
	if err := json.Unmarshal(body, &bundle); err != nil || bundle.Type != "transaction" {
		outcome(w, http.StatusBadRequest, "expected a transaction bundle")
		return
	}

	response := fhir_dto.FHIRBundle{ResourceType: "Bundle", Type: "transaction-response"}
	for _, entry := range bundle.Entry {
		if entry.Request == nil || entry.Request.Method != http.MethodPost {
			outcome(w, http.StatusBadRequest, "only POST entries are supported")
			return
		}
		doc, err := fhir_dto.ParseDocument(entry.Resource)
		if err != nil {
			outcome(w, http.StatusBadRequest, err.Error())
			return
		}
		id := s.assignID()
		s.store(entry.Request.URL, id, doc)
		response.Entry = append(response.Entry, fhir_dto.Entry{
			Response: &fhir_dto.EntryResponse{
				Status:   "201 Created",
				Location: fmt.Sprintf("%s/%s/_history/1", entry.Request.URL, id),
			},
		})
	}
	raw, _ := json.Marshal(response)
	w.Write(raw)
}

func (s *Server) search(w http.ResponseWriter, resourceType string, query url.Values) {
	var matches [][]byte
	for _, id := range s.order[resourceType] {
		raw, ok := s.resources[resourceType][id]
		if !ok {
			continue
		}
		if matchesQuery(raw, query) {
			matches = append(matches, raw)
		}
	}

	page, _ := strconv.Atoi(query.Get("_page"))
	start, end := 0, len(matches)
	if s.PageSize > 0 {
		start = page * s.PageSize
		if start > len(matches) {
			start = len(matches)
		}
		end = start + s.PageSize
		if end > len(matches) {
			end = len(matches)
		}
	}

	total := len(matches)
	bundle := fhir_dto.FHIRBundle{ResourceType: "Bundle", Type: "searchset", Total: &total}
	for _, raw := range matches[start:end] {
		bundle.Entry = append(bundle.Entry, fhir_dto.Entry{Resource: raw})
	}
	if end < len(matches) {
		next := url.Values{}
		for key, values := range query {
			next[key] = values
		}
		next.Set("_page", strconv.Itoa(page+1))
		bundle.Link = append(bundle.Link, fhir_dto.BundleLink{
			Relation: "next",
			URL:      fmt.Sprintf("%s/%s?%s", s.URL, resourceType, next.Encode()),
		})
	}
	raw, _ := json.Marshal(bundle)
	w.Write(raw)
}

func matchesQuery(raw []byte, query url.Values) bool {
	keys := make([]string, 0, len(query))
	for key := range query {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := query.Get(key)
		switch key {
		case "practitioner":
			if gjson.GetBytes(raw, "practitioner.reference").String() != value {
				return false
			}
		case "email":
			// Substring match, looser than the exact address.
			found := false
			for _, address := range gjson.GetBytes(raw, `telecom.#(system=="email")#.value`).Array() {
				if strings.Contains(strings.ToLower(address.String()), strings.ToLower(value)) {
					found = true
				}
			}
			if !found {
				return false
			}
		case "name":
			if !strings.Contains(strings.ToLower(gjson.GetBytes(raw, "name").Raw), strings.ToLower(value)) {
				return false
			}
		}
	}
	return true
}

func outcome(w http.ResponseWriter, status int, diagnostics string) {
	raw, _ := json.Marshal(fhir_dto.OperationOutcome{
		ResourceType: "OperationOutcome",
		Issue:        []fhir_dto.Issue{{Severity: "error", Code: "processing", Diagnostics: diagnostics}},
	})
	w.WriteHeader(status)
	w.Write(raw)
}
