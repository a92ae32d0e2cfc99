// Package vault turns the vault filter state into paginated queries against
// a tabular store and flattens accumulated pages for infinite-scroll style
// consumers.
//
// The package owns no storage. A Source (PostgreSQL in the server, or the
// in-memory MemorySource) executes the store-agnostic Query built here.
package vault

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/ragvault/internal/common"
)

// ErrInvalidOffset is returned for negative page offsets.
var ErrInvalidOffset = errors.New("invalid offset")

// Source is a tabular store able to run a Query. It returns the rows inside
// [q.From, q.To] plus the exact number of rows matching q.Conditions.
type Source interface {
	Select(ctx context.Context, q Query) ([]Item, int, error)
}

// Fetcher issues one Source round trip per page.
type Fetcher struct {
	source Source
	now    func() time.Time
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithClock overrides the wall clock used for the "new this week" boundary.
func WithClock(now func() time.Time) Option {
	return func(f *Fetcher) {
		f.now = now
	}
}

// NewFetcher builds a Fetcher over src.
func NewFetcher(src Source, opts ...Option) *Fetcher {
	f := &Fetcher{source: src, now: time.Now}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchPage returns the page starting at offset. Store errors are wrapped in
// common.ErrQueryFailed and returned as is; nothing is retried.
func (f *Fetcher) FetchPage(ctx context.Context, offset int, filters Filters) (*Page, error) {
	if offset < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidOffset, offset)
	}

	q := BuildQuery(offset, filters, f.now())

	items, total, err := f.source.Select(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrQueryFailed, err)
	}
	if items == nil {
		items = []Item{}
	}

	next := offset + len(items)
	return &Page{
		Items:      items,
		TotalCount: total,
		HasMore:    next < total,
		NextOffset: next,
	}, nil
}
