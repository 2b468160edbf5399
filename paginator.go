package keypage

import (
	"context"
	"errors"
	"sync"

	"github.com/samber/lo"
)

// Query is what a Paginator hands to its Executor: the full ordering of the
// dataset, the boundary condition (empty for the first page) and the row
// limit.
type Query struct {
	OrderTerms OrderTerms
	Boundary   Boundary
	// Limit is the maximum number of rows to fetch. NoLimit means unbounded.
	Limit int
}

// Executor runs paginated queries against the actual storage. It owns
// everything this package stays out of: the base query, query execution,
// cancellation, timeouts and retries.
type Executor[T any] interface {
	// Fetch returns at most query.Limit rows matching query.Boundary,
	// ordered by query.OrderTerms.
	Fetch(ctx context.Context, query Query) ([]T, error)
	// Count returns the total number of rows matching query.Boundary,
	// ignoring ordering and limit.
	Count(ctx context.Context, query Query) (int64, error)
}

// PageRequest is intended for API payloads. For proper code generation,
// inline it:
//
//	type MyFilter struct {
//	    Paging PageRequest `json:",inline"`
//	}
type PageRequest struct {
	// Limit - maximum number of records to return in the response.
	Limit int `json:"limit"`
	// Sort - name of a sort declared on the paginator.
	Sort string `json:"sort"`
	// StartToken - encoded cursor obtained from a previous Page.
	// If empty, the first page with Limit records is returned.
	StartToken string `json:"startToken"`
}

// Page is a generic paginated result container.
type Page[T any] struct {
	// Items result elements.
	Items []T
	// Remaining number of elements after this page. Computed only when the
	// page came back full; a partial page proves nothing remains.
	Remaining int64
	// AppliedLimit effective limit used for the query.
	AppliedLimit int
	// NextPageToken token for the next page.
	NextPageToken string
}

// Paginator ties the boundary algebra together for one paginated query: it
// resolves a named sort into a compiled BoundaryChain, decodes and validates
// incoming cursors, delegates execution and mints the cursor for the next
// page.
//
// Declare sorts up front; chains are compiled lazily on first use and cached
// for the life of the paginator. Compilation is idempotent, so concurrent
// first uses may duplicate work but only ever publish a fully built chain.
type Paginator[T any] struct {
	queryID  string
	executor Executor[T]
	maxLimit int

	args    any
	hasArgs bool

	sorts  map[string][]SortDescriptor
	chains sync.Map // sort name -> *BoundaryChain
}

// New creates a Paginator identified by queryID. The identity is baked into
// every minted cursor and checked on every consumed one, so cursors cannot
// cross between differently named paginators.
func New[T any](queryID string, executor Executor[T]) *Paginator[T] {
	return &Paginator[T]{
		queryID:  queryID,
		executor: executor,
		maxLimit: MaxLimit,
		sorts:    make(map[string][]SortDescriptor),
	}
}

// WithSort declares a named sort order. Descriptors are validated lazily on
// the first GetPage that uses the sort.
func (p *Paginator[T]) WithSort(name string, descriptors ...SortDescriptor) *Paginator[T] {
	p.sorts[name] = descriptors
	return p
}

// WithArgs declares that the paginated result set depends on args. Cursors
// then carry a fingerprint of args and are rejected when replayed with
// different arguments. Fields tagged `hash:"ignore"` are excluded.
func (p *Paginator[T]) WithArgs(args any) *Paginator[T] {
	p.args = args
	p.hasArgs = true
	return p
}

// WithMaxLimit overrides the maximum page size, MaxLimit by default.
func (p *Paginator[T]) WithMaxLimit(maxLimit int) *Paginator[T] {
	p.maxLimit = maxLimit
	return p
}

// GetPage fetches one page of the dataset: resolves the requested sort,
// validates the start token against the paginator identity, asks the
// executor for the rows and mints the token for the next page.
func (p *Paginator[T]) GetPage(ctx context.Context, req PageRequest) (*Page[T], error) {
	if p.executor == nil {
		return nil, newConfigurationError("paginator '%s' has no executor", p.queryID)
	}

	chain, err := p.chain(req.Sort)
	if err != nil {
		return nil, err
	}

	fingerprint := ""
	if p.hasArgs {
		fingerprint, err = argsFingerprint(p.args)
		if err != nil {
			return nil, err
		}
	}

	boundary := Boundary{}
	if req.StartToken != "" {
		cursor, err := DecodeCursor(req.StartToken)
		if err != nil {
			return nil, err
		}

		if err = p.checkIdentity(req, cursor, fingerprint); err != nil {
			return nil, err
		}

		if !cursor.IsEmpty() {
			boundary, err = chain.ApplyBoundary(cursor.Values)
			if err != nil {
				return nil, withToken(err, req.StartToken)
			}
		}
	}

	limit := NormalizeLimitMax(req.Limit, p.maxLimit)
	query := Query{
		OrderTerms: chain.OrderTerms(),
		Boundary:   boundary,
		Limit:      limit,
	}

	items, err := p.executor.Fetch(ctx, query)
	if err != nil {
		return nil, err
	}

	page := &Page[T]{
		Items:        items,
		AppliedLimit: limit,
	}

	// A partial page proves there is nothing left, making the count query
	// provably unnecessary. The count depends on executor-side state
	// resolved by the fetch, so the two calls stay strictly sequential.
	if len(items) == limit {
		total, err := p.executor.Count(ctx, Query{Boundary: boundary, Limit: NoLimit})
		if err != nil {
			return nil, err
		}

		page.Remaining = max(total-int64(len(items)), 0)
	}

	next := Cursor{
		QueryID:         p.queryID,
		SortID:          req.Sort,
		ArgsFingerprint: fingerprint,
	}

	switch {
	case len(items) > 0:
		next.Values, err = chain.ExtractBoundary(lo.LastOrEmpty(items))
		if err != nil {
			return nil, err
		}
		page.NextPageToken = EncodeCursor(next)
	case req.StartToken == "":
		// Nothing fetched and nothing resumed: an empty-boundary token
		// still lets the client retry from the start of the dataset.
		page.NextPageToken = EncodeCursor(next)
	default:
		// Resuming past the end of the dataset keeps the position stable.
		page.NextPageToken = req.StartToken
	}

	return page, nil
}

// chain resolves the compiled BoundaryChain for a sort name, compiling and
// caching it on first use.
func (p *Paginator[T]) chain(sortName string) (*BoundaryChain, error) {
	if cached, ok := p.chains.Load(sortName); ok {
		return cached.(*BoundaryChain), nil
	}

	descriptors, ok := p.sorts[sortName]
	if !ok {
		return nil, &UnknownSortError{
			Sort:    sortName,
			Closest: closestName(sortName, lo.Keys(p.sorts)),
		}
	}

	chain, err := BuildChain(descriptors...)
	if err != nil {
		return nil, err
	}

	// Concurrent first uses may build redundantly; the first fully built
	// chain wins and the rest are discarded.
	published, _ := p.chains.LoadOrStore(sortName, chain)

	return published.(*BoundaryChain), nil
}

func (p *Paginator[T]) checkIdentity(req PageRequest, cursor *Cursor, fingerprint string) error {
	if cursor.QueryID != p.queryID {
		e := newInvalidCursorError(req.StartToken, "different query")
		e.Got = cursor.QueryID
		e.Want = p.queryID
		return e
	}

	if cursor.SortID != req.Sort {
		e := newInvalidCursorError(req.StartToken, "different sort")
		e.Got = cursor.SortID
		e.Want = req.Sort
		return e
	}

	if p.hasArgs && cursor.ArgsFingerprint != fingerprint {
		e := newInvalidCursorError(req.StartToken, "args hash mismatch")
		e.Got = cursor.ArgsFingerprint
		e.Want = fingerprint
		return e
	}

	return nil
}

// withToken attaches the raw token to cursor errors raised below the decode
// layer, where the token itself is not in scope.
func withToken(err error, token string) error {
	var cursorErr *InvalidCursorError
	if errors.As(err, &cursorErr) && cursorErr.Token == "" {
		cursorErr.Token = token
	}

	return err
}
