package storefront

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"sync"
	"testing"
	"time"

	"go-storefront-api/internal/pkg/response"
	"go-storefront-api/internal/product"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	ctx    context.Context
	params url.Values
	reply  chan result
}

type result struct {
	page Page
	err  error
}

// scriptedLister hands every call to the test, which decides when and how it
// completes.
type scriptedLister struct {
	calls chan call
}

func newScriptedLister() *scriptedLister {
	return &scriptedLister{calls: make(chan call, 4)}
}

func (s *scriptedLister) ListProducts(ctx context.Context, params url.Values) (Page, error) {
	c := call{ctx: ctx, params: params, reply: make(chan result, 1)}
	s.calls <- c
	r := <-c.reply
	return r.page, r.err
}

func pageNamed(name string) Page {
	return Page{Items: []product.ProductResponse{{ID: name, Name: name}}}
}

func load(l *Listing, params url.Values) <-chan result {
	out := make(chan result, 1)
	go func() {
		p, err := l.Load(context.Background(), params)
		out <- result{p, err}
	}()
	return out
}

func TestListing_LateResponseIsDiscarded(t *testing.T) {
	lister := newScriptedLister()
	listing := NewListing(lister)

	first := load(listing, url.Values{"page": {"1"}})
	firstCall := <-lister.calls

	second := load(listing, url.Values{"page": {"2"}})
	secondCall := <-lister.calls

	secondCall.reply <- result{page: pageNamed("newer")}
	got := <-second
	require.NoError(t, got.err)
	assert.Equal(t, "newer", got.page.Items[0].ID)

	// the older request ignores cancellation and answers late
	firstCall.reply <- result{page: pageNamed("older")}
	late := <-first
	assert.ErrorIs(t, late.err, ErrStale)

	current, tag := listing.Current()
	assert.Equal(t, "newer", current.Items[0].ID)
	assert.Equal(t, uint64(2), tag)
}

func TestListing_NewLoadCancelsPrevious(t *testing.T) {
	lister := newScriptedLister()
	listing := NewListing(lister)

	first := load(listing, nil)
	firstCall := <-lister.calls

	second := load(listing, url.Values{"sort": {"rating"}})
	secondCall := <-lister.calls

	select {
	case <-firstCall.ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("previous request was not cancelled")
	}
	assert.NoError(t, secondCall.ctx.Err())

	firstCall.reply <- result{err: firstCall.ctx.Err()}
	assert.ErrorIs(t, (<-first).err, ErrStale)

	secondCall.reply <- result{page: pageNamed("rated")}
	assert.NoError(t, (<-second).err)
}

func TestListing_ErrorKeepsLastPage(t *testing.T) {
	lister := newScriptedLister()
	listing := NewListing(lister)

	ok := load(listing, nil)
	(<-lister.calls).reply <- result{page: pageNamed("good")}
	require.NoError(t, (<-ok).err)

	failed := load(listing, nil)
	(<-lister.calls).reply <- result{err: errors.New("boom")}
	assert.EqualError(t, (<-failed).err, "boom")

	current, tag := listing.Current()
	assert.Equal(t, "good", current.Items[0].ID)
	assert.Equal(t, uint64(1), tag)
}

func TestListing_OverHTTP(t *testing.T) {
	var once sync.Once
	firstArrived := make(chan struct{})

	srv := newServer(t, func(r *gin.Engine) {
		r.GET(listPath, func(c *gin.Context) {
			if c.Query("page") == "1" {
				once.Do(func() { close(firstArrived) })
				select {
				case <-c.Request.Context().Done():
					return
				case <-time.After(5 * time.Second):
				}
			}
			items := []product.ProductResponse{{ID: "page-" + c.Query("page")}}
			response.Success(c, http.StatusOK, items, response.NewPagination(24, 2, 12))
		})
	})
	listing := NewListing(NewCatalogClient(srv.URL, srv.Client()))

	first := load(listing, url.Values{"page": {"1"}})
	<-firstArrived

	page, err := listing.Load(context.Background(), url.Values{"page": {"2"}})
	require.NoError(t, err)
	assert.Equal(t, "page-2", page.Items[0].ID)

	assert.ErrorIs(t, (<-first).err, ErrStale)

	current, _ := listing.Current()
	assert.Equal(t, "page-2", current.Items[0].ID)
}
