package pagination

import (
	"context"
	"fmt"
	"net/url"
	"provider-directory/internal/pkg/constvars"
	"provider-directory/internal/pkg/exceptions"
	"provider-directory/internal/pkg/fhir_dto"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doc struct {
	ResourceType string `json:"resourceType"`
	ID           string `json:"id"`
}

// fakeSearcher serves pages keyed by link; the first page is keyed "".
type fakeSearcher struct {
	pages       map[string]*fhir_dto.FHIRBundle
	failOn      string
	searchCalls int
	pageCalls   []string
}

func (f *fakeSearcher) Search(ctx context.Context, resourceType string, params url.Values) (*fhir_dto.FHIRBundle, error) {
	f.searchCalls++
	return f.pages[""], nil
}

func (f *fakeSearcher) SearchPage(ctx context.Context, pageURL string) (*fhir_dto.FHIRBundle, error) {
	f.pageCalls = append(f.pageCalls, pageURL)
	if pageURL == f.failOn {
		return nil, exceptions.ErrRemoteUnavailable(fmt.Errorf("status 503"), constvars.ResourceBundle)
	}
	page, ok := f.pages[pageURL]
	if !ok {
		return nil, fmt.Errorf("no page %s", pageURL)
	}
	return page, nil
}

func page(next string, ids ...string) *fhir_dto.FHIRBundle {
	bundle := &fhir_dto.FHIRBundle{ResourceType: "Bundle", Link: []fhir_dto.BundleLink{{Relation: "self", URL: "self"}}}
	if next != "" {
		bundle.Link = append(bundle.Link, fhir_dto.BundleLink{Relation: "next", URL: next})
	}
	for _, id := range ids {
		raw, _ := json.Marshal(doc{ResourceType: "Practitioner", ID: id})
		bundle.Entry = append(bundle.Entry, fhir_dto.Entry{Resource: raw})
	}
	return bundle
}

func ids(docs []doc) []string {
	result := make([]string, 0, len(docs))
	for _, d := range docs {
		result = append(result, d.ID)
	}
	return result
}

func TestCollect(t *testing.T) {
	ctx := context.Background()

	t.Run("three pages in order", func(t *testing.T) {
		searcher := &fakeSearcher{pages: map[string]*fhir_dto.FHIRBundle{
			"":   page("p2", "a", "b"),
			"p2": page("p3", "c", "d"),
			"p3": page("", "e"),
		}}

		docs, err := Collect[doc](ctx, searcher, "Practitioner", nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c", "d", "e"}, ids(docs))
		assert.Equal(t, []string{"p2", "p3"}, searcher.pageCalls)
	})

	t.Run("empty middle page does not end the walk", func(t *testing.T) {
		searcher := &fakeSearcher{pages: map[string]*fhir_dto.FHIRBundle{
			"":   page("p2", "a", "b"),
			"p2": page("p3"),
			"p3": page("", "c"),
		}}

		docs, err := Collect[doc](ctx, searcher, "Practitioner", nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, ids(docs))
	})

	t.Run("empty collection", func(t *testing.T) {
		searcher := &fakeSearcher{pages: map[string]*fhir_dto.FHIRBundle{"": page("")}}

		docs, err := Collect[doc](ctx, searcher, "Practitioner", nil)
		require.NoError(t, err)
		assert.NotNil(t, docs)
		assert.Empty(t, docs)
	})

	t.Run("failure keeps partial results", func(t *testing.T) {
		searcher := &fakeSearcher{
			pages: map[string]*fhir_dto.FHIRBundle{
				"":   page("p2", "a", "b"),
				"p2": page("p3", "c"),
			},
			failOn: "p3",
		}

		docs, err := Collect[doc](ctx, searcher, "Practitioner", nil)
		assert.True(t, exceptions.IsKind(err, exceptions.KindPaginationFailed))
		assert.True(t, exceptions.IsKind(err, exceptions.KindRemoteUnavailable))
		assert.Equal(t, []string{"a", "b", "c"}, ids(docs))
	})

	t.Run("repeated next link is a failure", func(t *testing.T) {
		searcher := &fakeSearcher{pages: map[string]*fhir_dto.FHIRBundle{
			"":   page("p2", "a"),
			"p2": page("p2", "b"),
		}}

		docs, err := Collect[doc](ctx, searcher, "Practitioner", nil)
		assert.True(t, exceptions.IsKind(err, exceptions.KindPaginationFailed))
		assert.Equal(t, []string{"a", "b"}, ids(docs))
	})

	t.Run("other resource types are skipped", func(t *testing.T) {
		first := page("", "a")
		first.Entry = append(first.Entry, fhir_dto.Entry{Resource: json.RawMessage(`{"resourceType":"OperationOutcome","issue":[]}`)})
		searcher := &fakeSearcher{pages: map[string]*fhir_dto.FHIRBundle{"": first}}

		docs, err := Collect[doc](ctx, searcher, "Practitioner", nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, ids(docs))
	})

	t.Run("malformed resource fails the walk", func(t *testing.T) {
		second := page("")
		second.Entry = append(second.Entry, fhir_dto.Entry{Resource: json.RawMessage(`{"resourceType":"Practitioner","id":`)})
		searcher := &fakeSearcher{pages: map[string]*fhir_dto.FHIRBundle{
			"":   page("p2", "a"),
			"p2": second,
		}}

		docs, err := Collect[doc](ctx, searcher, "Practitioner", nil)
		assert.True(t, exceptions.IsKind(err, exceptions.KindPaginationFailed))
		assert.Equal(t, []string{"a"}, ids(docs))
	})
}

func TestIterator(t *testing.T) {
	t.Run("reset walks again from the first page", func(t *testing.T) {
		searcher := &fakeSearcher{pages: map[string]*fhir_dto.FHIRBundle{
			"":   page("p2", "a"),
			"p2": page("", "b"),
		}}
		it := NewIterator[doc](searcher, "Practitioner", nil)

		require.True(t, it.Next(context.Background()))
		assert.Equal(t, "a", it.Value().ID)

		it.Reset()
		var seen []string
		for it.Next(context.Background()) {
			seen = append(seen, it.Value().ID)
		}
		require.NoError(t, it.Err())
		assert.Equal(t, []string{"a", "b"}, seen)
		assert.Equal(t, 2, searcher.searchCalls)
		assert.Equal(t, 2, it.Pages())
	})

	t.Run("cancellation abandons further fetches", func(t *testing.T) {
		searcher := &fakeSearcher{pages: map[string]*fhir_dto.FHIRBundle{
			"":   page("p2", "a"),
			"p2": page("", "b"),
		}}
		ctx, cancel := context.WithCancel(context.Background())
		it := NewIterator[doc](searcher, "Practitioner", nil)

		require.True(t, it.Next(ctx))
		cancel()

		assert.False(t, it.Next(ctx))
		assert.ErrorIs(t, it.Err(), context.Canceled)
		assert.Empty(t, searcher.pageCalls)
	})
}
