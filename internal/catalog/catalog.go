// Package catalog tracks the page being browsed and guards it against
// out-of-order fetch results.
package catalog

import (
	"context"

	"github.com/cristianoliveira/rmgrid/internal/domain"
)

// Request identifies one fetch started by Begin.
type Request struct {
	Generation uint64
	Page       int
	Ctx        context.Context
}

// Catalog holds the fetch state of the current page.
// It is not safe for concurrent use; the owner (the TUI loop or a CLI
// command) serializes calls.
type Catalog struct {
	page       int
	info       domain.PageInfo
	characters []domain.Character
	loading    bool
	err        error
	populated  bool
	generation uint64
	cancel     context.CancelFunc
}

// New returns a catalog positioned at startPage (at least 1).
func New(startPage int) *Catalog {
	if startPage < 1 {
		startPage = 1
	}
	return &Catalog{page: startPage}
}

// Begin starts a fetch of page and supersedes any fetch in flight.
// The returned request carries a context that is cancelled when a later
// Begin supersedes it or when the request completes.
func (c *Catalog) Begin(ctx context.Context, page int) Request {
	if page < 1 {
		page = 1
	}
	if c.cancel != nil {
		c.cancel()
	}
	reqCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.generation++
	c.page = page
	c.loading = true
	return Request{Generation: c.generation, Page: page, Ctx: reqCtx}
}

// Complete applies the result of req. It returns false and changes nothing
// when req was superseded by a later Begin.
func (c *Catalog) Complete(req Request, result *domain.CharacterPage, err error) bool {
	if req.Generation != c.generation {
		return false
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.loading = false
	if err != nil {
		c.err = err
		return true
	}
	c.err = nil
	c.populated = true
	if result == nil {
		c.characters = nil
		c.info = domain.PageInfo{}
		return true
	}
	c.info = result.Info
	c.characters = append([]domain.Character(nil), result.Results...)
	return true
}

// Cancel aborts the fetch in flight, if any. Its result will still be
// accepted by Complete as the latest.
func (c *Catalog) Cancel() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// Generation returns the number of fetches started so far.
func (c *Catalog) Generation() uint64 { return c.generation }

// CanPrev reports whether a previous page exists.
func (c *Catalog) CanPrev() bool {
	return c.page > 1
}

// CanNext reports whether a next page may exist. With unknown page info
// the next page is assumed to exist.
func (c *Catalog) CanNext() bool {
	if !c.info.Known() {
		return true
	}
	return c.page < c.info.Pages
}

// Next returns the page after the current one, or false at the last page.
func (c *Catalog) Next() (int, bool) {
	if !c.CanNext() {
		return c.page, false
	}
	return c.page + 1, true
}

// Prev returns the page before the current one, or false at page 1.
func (c *Catalog) Prev() (int, bool) {
	if !c.CanPrev() {
		return c.page, false
	}
	return c.page - 1, true
}

func (c *Catalog) Page() int             { return c.page }
func (c *Catalog) Info() domain.PageInfo { return c.info }
func (c *Catalog) Loading() bool         { return c.loading }
func (c *Catalog) Err() error            { return c.err }

// Populated reports whether at least one fetch succeeded.
func (c *Catalog) Populated() bool { return c.populated }

// Characters returns a copy of the raw list of the current page.
func (c *Catalog) Characters() []domain.Character {
	return append([]domain.Character(nil), c.characters...)
}

// Displayed returns the raw list filtered and sorted by opts.
func (c *Catalog) Displayed(opts domain.ViewOptions) []domain.Character {
	return domain.Apply(c.characters, opts)
}
