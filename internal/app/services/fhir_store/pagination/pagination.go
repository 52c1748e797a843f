// Package pagination walks search results that the store splits across
// pages chained by "next" links.
package pagination

import (
	"context"
	"fmt"
	"net/url"
	"provider-directory/internal/app/contracts"
	"provider-directory/internal/pkg/constvars"
	"provider-directory/internal/pkg/exceptions"
	"provider-directory/internal/pkg/fhir_dto"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

// Iterator is a lazy, restartable walk over every page of one search.
// It is not safe for concurrent use.
type Iterator[T any] struct {
	searcher     contracts.DirectorySearcher
	resourceType string
	params       url.Values

	buffer  []T
	pos     int
	current T
	nextURL string
	started bool
	done    bool
	pages   int
	visited map[string]struct{}
	err     error
}

func NewIterator[T any](searcher contracts.DirectorySearcher, resourceType string, params url.Values) *Iterator[T] {
	return &Iterator[T]{
		searcher:     searcher,
		resourceType: resourceType,
		params:       params,
		visited:      make(map[string]struct{}),
	}
}

// Next advances to the next document, fetching pages as needed. It returns
// false when the walk is exhausted or has failed; check Err to tell them apart.
func (it *Iterator[T]) Next(ctx context.Context) bool {
	for {
		if it.pos < len(it.buffer) {
			it.current = it.buffer[it.pos]
			it.pos++
			return true
		}
		if it.done || it.err != nil {
			return false
		}
		if err := ctx.Err(); err != nil {
			it.fail(err)
			return false
		}
		if err := it.fetch(ctx); err != nil {
			it.fail(err)
		}
	}
}

func (it *Iterator[T]) Value() T {
	return it.current
}

// Err reports the failure that stopped the walk as PaginationFailed.
func (it *Iterator[T]) Err() error {
	return it.err
}

// Pages is the number of pages fetched so far.
func (it *Iterator[T]) Pages() int {
	return it.pages
}

// Reset forgets all progress; the next call to Next starts again from the first page.
func (it *Iterator[T]) Reset() {
	var zero T
	it.buffer = nil
	it.pos = 0
	it.current = zero
	it.nextURL = ""
	it.started = false
	it.done = false
	it.pages = 0
	it.visited = make(map[string]struct{})
	it.err = nil
}

func (it *Iterator[T]) fetch(ctx context.Context) error {
	var (
		bundle *fhir_dto.FHIRBundle
		err    error
	)
	if !it.started {
		bundle, err = it.searcher.Search(ctx, it.resourceType, it.params)
	} else {
		bundle, err = it.searcher.SearchPage(ctx, it.nextURL)
	}
	if err != nil {
		return err
	}
	if bundle == nil {
		bundle = &fhir_dto.FHIRBundle{}
	}
	it.started = true
	it.pages++

	decoded, err := it.decode(bundle.Entry)
	if err != nil {
		return exceptions.ErrDecodeResponse(err, it.resourceType)
	}
	it.buffer = decoded
	it.pos = 0

	next, ok := bundle.NextLink(constvars.FhirBundleLinkNext)
	if !ok {
		it.done = true
		return nil
	}
	if _, seen := it.visited[next]; seen {
		return exceptions.ErrPaginationLoop(next)
	}
	it.visited[next] = struct{}{}
	it.nextURL = next
	return nil
}

// decode keeps only resources of the searched type, dropping included
// resources and OperationOutcome entries the store may mix into a page.
func (it *Iterator[T]) decode(entries []fhir_dto.Entry) ([]T, error) {
	result := make([]T, 0, len(entries))
	for _, entry := range entries {
		raw := entry.Resource
		if len(raw) == 0 {
			continue
		}
		if !gjson.ValidBytes(raw) {
			return nil, fmt.Errorf("entry resource is not valid JSON")
		}
		if gjson.GetBytes(raw, "resourceType").String() != it.resourceType {
			continue
		}
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, nil
}

// fail stops the walk; documents already buffered from the last good page are still yielded.
func (it *Iterator[T]) fail(err error) {
	it.err = exceptions.ErrPaginationFailed(err, it.resourceType, it.pages)
}

// Collect walks every page and returns the documents in page order. On
// failure it returns the documents gathered so far alongside a
// PaginationFailed error; callers drop them unless partial data is acceptable.
func Collect[T any](ctx context.Context, searcher contracts.DirectorySearcher, resourceType string, params url.Values) ([]T, error) {
	it := NewIterator[T](searcher, resourceType, params)
	var items []T
	for it.Next(ctx) {
		items = append(items, it.Value())
	}
	if err := it.Err(); err != nil {
		return items, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}
