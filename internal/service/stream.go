package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/opryshko/vitryna/internal/catalog"
	"github.com/opryshko/vitryna/internal/debounce"
	"github.com/opryshko/vitryna/internal/domain"
)

// QueryStream feeds BrowseCatalog from a stream of filter updates, waiting
// for the input to go quiet before issuing a query. A search box or facet
// panel can push every keystroke through Update; only the settled state
// reaches the upstream. Superseded results are swallowed, so emit only sees
// pages worth rendering.
//
// The stream remembers the last page it emitted: a request for a page
// outside the known range is a no-op and the current page is queried again
// instead.
type QueryStream struct {
	deb *debounce.Debouncer[domain.FilterState]

	mu         sync.Mutex
	page       int
	totalPages int
}

// NewQueryStream creates a stream over the given service. emit is called
// from a timer goroutine once per settled filter state.
func NewQueryStream(svc CatalogService, quiet time.Duration, emit func(*domain.CatalogPage, error)) *QueryStream {
	s := &QueryStream{}
	s.deb = debounce.New(quiet, func(f domain.FilterState) {
		f.Page = s.resolvePage(f.Page)

		page, err := svc.BrowseCatalog(context.Background(), f)
		if errors.Is(err, ErrQuerySuperseded) {
			return
		}
		if err == nil {
			s.remember(page.Meta)
		}
		emit(page, err)
	})
	return s
}

// Update records a new filter state and restarts the quiet period.
func (s *QueryStream) Update(f domain.FilterState) {
	s.deb.Update(f)
}

// Stop cancels any pending query. No value is emitted after Stop returns.
func (s *QueryStream) Stop() {
	s.deb.Stop()
}

func (s *QueryStream) resolvePage(requested int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Until a first result arrives there is no range to clamp against.
	if s.totalPages == 0 {
		return requested
	}
	return catalog.ResolvePage(requested, s.page, s.totalPages)
}

func (s *QueryStream) remember(meta domain.PageMeta) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.page = meta.Page
	s.totalPages = meta.TotalPages
}
