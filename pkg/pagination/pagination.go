// Package pagination provides the paginated data source table grids render
// links for.
package pagination

import (
	"fmt"
	stdhtml "html"
	"html/template"
	"net/url"
	"strconv"
	"strings"

	"github.com/goliatone/go-htmlgrid/pkg/translation"
)

// DefaultPageName is the query parameter carrying the page number.
const DefaultPageName = "page"

// Label keys resolved through the translator.
const (
	LabelPrevious = "htmlgrid::pagination.previous"
	LabelNext     = "htmlgrid::pagination.next"
	LabelSummary  = "htmlgrid::pagination.summary"
)

// Paginator is a page of records that can render navigation links. Appends
// returns a copy carrying extra query parameters for every link.
type Paginator interface {
	Items() []any
	Appends(query url.Values) Paginator
	Links() template.HTML
}

// Option configures a Page.
type Option func(*Page)

// WithPath sets the base URL links point at.
func WithPath(path string) Option {
	return func(p *Page) {
		p.path = strings.TrimSpace(path)
	}
}

// WithPageName overrides the page query parameter.
func WithPageName(name string) Option {
	return func(p *Page) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			p.pageName = trimmed
		}
	}
}

// WithTranslator resolves the previous/next labels.
func WithTranslator(t translation.Translator, locale string) Option {
	return func(p *Page) {
		p.translator = t
		p.locale = locale
	}
}

// WithWindow sets how many pages are linked on each side of the current one.
func WithWindow(window int) Option {
	return func(p *Page) {
		if window > 0 {
			p.window = window
		}
	}
}

// Page is a length-aware Paginator.
type Page struct {
	items       []any
	total       int
	perPage     int
	currentPage int

	path       string
	pageName   string
	query      url.Values
	translator translation.Translator
	locale     string
	window     int
}

var _ Paginator = (*Page)(nil)

// New builds a page of items out of total records. perPage values below one
// are treated as one and currentPage is clamped to the valid range.
func New(items []any, total, perPage, currentPage int, options ...Option) *Page {
	if perPage < 1 {
		perPage = 1
	}
	if total < len(items) {
		total = len(items)
	}
	p := &Page{
		items:    items,
		total:    total,
		perPage:  perPage,
		pageName: DefaultPageName,
		query:    url.Values{},
		window:   3,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}
	p.currentPage = clamp(currentPage, 1, p.LastPage())
	return p
}

// FromSlice paginates an in-memory slice.
func FromSlice(all []any, perPage, currentPage int, options ...Option) *Page {
	if perPage < 1 {
		perPage = 1
	}
	lastPage := (len(all) + perPage - 1) / perPage
	currentPage = clamp(currentPage, 1, max(lastPage, 1))

	start := (currentPage - 1) * perPage
	end := min(start+perPage, len(all))
	var items []any
	if start < end {
		items = append(items, all[start:end]...)
	}
	return New(items, len(all), perPage, currentPage, options...)
}

// Items returns the records on the current page.
func (p *Page) Items() []any {
	return p.items
}

// Total is the record count across every page.
func (p *Page) Total() int { return p.total }

// PerPage is the page size.
func (p *Page) PerPage() int { return p.perPage }

// CurrentPage is the 1-based page number.
func (p *Page) CurrentPage() int { return p.currentPage }

// LastPage is the number of the final page, at least one.
func (p *Page) LastPage() int {
	return max((p.total+p.perPage-1)/p.perPage, 1)
}

// From is the 1-based index of the first record on the page, zero when empty.
func (p *Page) From() int {
	if len(p.items) == 0 {
		return 0
	}
	return (p.currentPage-1)*p.perPage + 1
}

// To is the 1-based index of the last record on the page.
func (p *Page) To() int {
	if len(p.items) == 0 {
		return 0
	}
	return p.From() + len(p.items) - 1
}

// Appends implements Paginator. The page parameter is never carried over.
func (p *Page) Appends(query url.Values) Paginator {
	clone := *p
	clone.query = url.Values{}
	for key, values := range p.query {
		clone.query[key] = append([]string(nil), values...)
	}
	for key, values := range query {
		if key == p.pageName {
			continue
		}
		clone.query[key] = append([]string(nil), values...)
	}
	return &clone
}

// URL returns the link to page.
func (p *Page) URL(page int) string {
	query := url.Values{}
	for key, values := range p.query {
		query[key] = values
	}
	query.Set(p.pageName, strconv.Itoa(page))
	return p.path + "?" + query.Encode()
}

// Summary renders "Showing :from to :to of :total" through the translator.
func (p *Page) Summary() string {
	return translation.Get(p.translator, p.locale, LabelSummary, nil, map[string]any{
		"from":  p.From(),
		"to":    p.To(),
		"total": p.total,
	})
}

// Links renders a bootstrap pagination list. A single page renders nothing.
func (p *Page) Links() template.HTML {
	last := p.LastPage()
	if last <= 1 {
		return ""
	}

	var b strings.Builder
	b.WriteString(`<ul class="pagination">`)

	previous := p.label(LabelPrevious, "&laquo;")
	if p.currentPage > 1 {
		p.writeLink(&b, p.currentPage-1, previous, "")
	} else {
		writeDisabled(&b, previous)
	}

	start := max(p.currentPage-p.window, 1)
	end := min(p.currentPage+p.window, last)
	if start > 1 {
		p.writeLink(&b, 1, "1", "")
		if start > 2 {
			writeDisabled(&b, "&hellip;")
		}
	}
	for page := start; page <= end; page++ {
		if page == p.currentPage {
			fmt.Fprintf(&b, `<li class="active"><span>%d</span></li>`, page)
			continue
		}
		p.writeLink(&b, page, strconv.Itoa(page), "")
	}
	if end < last {
		if end < last-1 {
			writeDisabled(&b, "&hellip;")
		}
		p.writeLink(&b, last, strconv.Itoa(last), "")
	}

	next := p.label(LabelNext, "&raquo;")
	if p.currentPage < last {
		p.writeLink(&b, p.currentPage+1, next, "next")
	} else {
		writeDisabled(&b, next)
	}

	b.WriteString(`</ul>`)
	return template.HTML(b.String())
}

// label resolves a catalog label. Catalog entries are trusted markup, so
// they are emitted unescaped.
func (p *Page) label(key, fallback string) string {
	return translation.Get(p.translator, p.locale, key, func(string, string, []any, error) string {
		return fallback
	})
}

func (p *Page) writeLink(b *strings.Builder, page int, text, rel string) {
	b.WriteString(`<li><a href="`)
	b.WriteString(stdhtml.EscapeString(p.URL(page)))
	b.WriteByte('"')
	if rel != "" {
		b.WriteString(` rel="`)
		b.WriteString(rel)
		b.WriteByte('"')
	}
	b.WriteByte('>')
	b.WriteString(text)
	b.WriteString(`</a></li>`)
}

func writeDisabled(b *strings.Builder, text string) {
	b.WriteString(`<li class="disabled"><span>`)
	b.WriteString(text)
	b.WriteString(`</span></li>`)
}

func clamp(value, lo, hi int) int {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
