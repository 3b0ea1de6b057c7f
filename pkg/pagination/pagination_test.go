package pagination

import (
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-htmlgrid/pkg/testsupport"
	"github.com/goliatone/go-htmlgrid/pkg/translation"
)

func numbers(n int) []any {
	out := make([]any, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestFromSlice_Windows(t *testing.T) {
	page := FromSlice(numbers(23), 10, 3)

	if diff := cmp.Diff([]any{21, 22, 23}, page.Items()); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}
	if page.LastPage() != 3 || page.CurrentPage() != 3 {
		t.Fatalf("unexpected pages: current=%d last=%d", page.CurrentPage(), page.LastPage())
	}
	if page.From() != 21 || page.To() != 23 || page.Total() != 23 {
		t.Fatalf("unexpected range: %d-%d of %d", page.From(), page.To(), page.Total())
	}
}

func TestFromSlice_ClampsPage(t *testing.T) {
	if got := FromSlice(numbers(5), 2, 99).CurrentPage(); got != 3 {
		t.Fatalf("expected page clamped to 3, got %d", got)
	}
	empty := FromSlice(nil, 10, 4)
	if empty.CurrentPage() != 1 || len(empty.Items()) != 0 || empty.From() != 0 {
		t.Fatalf("empty slice should yield an empty first page")
	}
}

func TestLinks_SinglePageRendersNothing(t *testing.T) {
	if got := FromSlice(numbers(3), 10, 1).Links(); got != "" {
		t.Fatalf("expected no links, got %q", got)
	}
}

func TestLinks_CarryAppendedQuery(t *testing.T) {
	page := FromSlice(numbers(30), 10, 2, WithPath("/users"))
	links := string(page.Appends(url.Values{"q": {"ann"}, "page": {"7"}}).Links())

	for _, want := range []string{
		`<ul class="pagination">`,
		`href="/users?page=1&amp;q=ann"`,
		`<li class="active"><span>2</span></li>`,
		`href="/users?page=3&amp;q=ann" rel="next"`,
	} {
		if !strings.Contains(links, want) {
			t.Fatalf("links missing %q:\n%s", want, links)
		}
	}
	if strings.Contains(links, "page=7") {
		t.Fatalf("appended page parameter must be ignored:\n%s", links)
	}
}

func TestAppends_DoesNotMutateOriginal(t *testing.T) {
	page := FromSlice(numbers(30), 10, 1, WithPath("/users"))
	_ = page.Appends(url.Values{"q": {"ann"}})
	if strings.Contains(page.URL(2), "q=") {
		t.Fatalf("original page picked up appended query: %s", page.URL(2))
	}
}

func TestLinks_TranslatedLabelsAndEllipsis(t *testing.T) {
	tr := testsupport.StaticTranslator{
		LabelPrevious: "Prev",
		LabelNext:     "More",
	}
	page := FromSlice(numbers(200), 10, 10, WithTranslator(tr, "en"), WithWindow(1))
	links := string(page.Links())

	for _, want := range []string{">Prev</a>", `rel="next">More</a>`, "&hellip;", ">20</a>", ">1</a>"} {
		if !strings.Contains(links, want) {
			t.Fatalf("links missing %q:\n%s", want, links)
		}
	}
}

func TestSummary_UsesCatalog(t *testing.T) {
	page := FromSlice(numbers(23), 10, 2, WithTranslator(translation.DefaultCatalog(), "en"))
	if got, want := page.Summary(), "Showing 11 to 20 of 23"; got != want {
		t.Fatalf("summary = %q, want %q", got, want)
	}
}
