package usecase

import (
	"fmt"

	"github.com/chatlens/bot/internal/domain"
)

// Paginator is the navigation state over a fixed sequence of prepared result
// pages. The page set never changes after construction; navigation only moves
// the current index, wrapping at both ends.
type Paginator struct {
	pages []domain.Embed
	index int
}

// NewPaginator builds a paginator over prepared pages. At least one page is
// required.
func NewPaginator(pages []domain.Embed) (*Paginator, error) {
	if len(pages) == 0 {
		return nil, domain.ErrInvalidRequest
	}
	return &Paginator{pages: pages}, nil
}

// Len returns the number of pages.
func (p *Paginator) Len() int {
	return len(p.pages)
}

// Index returns the 0-based current page index.
func (p *Paginator) Index() int {
	return p.index
}

// Previous moves to the prior page, wrapping from the first to the last, and
// returns the newly current page.
func (p *Paginator) Previous() domain.Embed {
	p.index = (p.index - 1 + len(p.pages)) % len(p.pages)
	return p.Page()
}

// Next moves to the following page, wrapping from the last to the first, and
// returns the newly current page.
func (p *Paginator) Next() domain.Embed {
	p.index = (p.index + 1) % len(p.pages)
	return p.Page()
}

// Page returns the current page with its position indicator stamped into the
// footer. Only the current page is rendered; the others are untouched.
func (p *Paginator) Page() domain.Embed {
	page := p.pages[p.index]
	page.Footer = fmt.Sprintf("Page %d/%d", p.index+1, len(p.pages))
	return page
}
