package storefront

import (
	"context"
	"errors"
	"net/url"
	"sync"
)

// ErrStale is returned by Load when a newer Load started before this one
// finished. Its result, if any, was discarded.
var ErrStale = errors.New("storefront: listing request superseded")

type Lister interface {
	ListProducts(ctx context.Context, params url.Values) (Page, error)
}

// Listing keeps the product list a page is showing. Every Load is tagged with
// an increasing sequence number; only the most recent tag may publish.
type Listing struct {
	lister Lister

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
	page   Page
	shown  uint64
}

func NewListing(lister Lister) *Listing {
	return &Listing{lister: lister}
}

// Load cancels any in-flight request and fetches params.
func (l *Listing) Load(ctx context.Context, params url.Values) (Page, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	l.mu.Lock()
	l.seq++
	tag := l.seq
	if l.cancel != nil {
		l.cancel()
	}
	l.cancel = cancel
	l.mu.Unlock()

	page, err := l.lister.ListProducts(ctx, params)

	l.mu.Lock()
	defer l.mu.Unlock()

	if tag != l.seq {
		return Page{}, ErrStale
	}
	l.cancel = nil
	if err != nil {
		return Page{}, err
	}

	l.page = page
	l.shown = tag
	return page, nil
}

// Current returns the last published page and the tag of the request that
// produced it (0 before the first successful Load).
func (l *Listing) Current() (Page, uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.page, l.shown
}
