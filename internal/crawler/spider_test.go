package crawler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/wordspider/wordspider/internal/model"
)

// fakeFetcher serves an in-memory page graph and records how often each
// address is fetched.
type fakeFetcher struct {
	mu    sync.Mutex
	pages map[string]*model.Page
	calls map[string]int

	// panicOn makes Fetch panic for one address, to exercise the
	// task-boundary recovery.
	panicOn string
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		pages: make(map[string]*model.Page),
		calls: make(map[string]int),
	}
}

func (f *fakeFetcher) addPage(addr, text string, links ...string) {
	f.pages[addr] = &model.Page{
		URL:        addr,
		StatusCode: 200,
		Text:       text,
		Links:      links,
	}
}

func (f *fakeFetcher) Fetch(_ context.Context, addr string) (*model.Page, error) {
	f.mu.Lock()
	f.calls[addr]++
	page, ok := f.pages[addr]
	f.mu.Unlock()

	if addr == f.panicOn {
		panic("fetcher exploded")
	}
	if !ok {
		return nil, fmt.Errorf("no page at %s", addr)
	}
	return page, nil
}

func (f *fakeFetcher) fetchCount(addr string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[addr]
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestSpiderCrawl tests the fork-join crawl core end to end against
// in-memory page graphs.
func TestSpiderCrawl(t *testing.T) {
	t.Parallel()

	t.Run("seed with fragment anchor and one same-host link", func(t *testing.T) {
		t.Parallel()

		fetcher := newFakeFetcher()
		fetcher.addPage("http://test.example/a.html",
			"word2 word2 abc x", "#", "/b.html")
		fetcher.addPage("http://test.example/b.html",
			"word2 word3 ab")

		spider := NewSpider(fetcher, WithMaxDepth(1), WithLogger(quietLogger()))
		report, err := spider.Crawl(context.Background(), "http://test.example/a.html")
		if err != nil {
			t.Fatalf("crawl failed: %v", err)
		}

		if len(report.Visited) != 2 {
			t.Errorf("expected 2 visited addresses, got %d: %v", len(report.Visited), report.Visited)
		}
		if report.PagesProcessed != 2 {
			t.Errorf("expected 2 pages processed, got %d", report.PagesProcessed)
		}
		if got := report.Words["word2"]; got != 3 {
			t.Errorf("expected word2 count 3 across both pages, got %d", got)
		}
		if got := report.Words["word3"]; got != 1 {
			t.Errorf("expected word3 count 1, got %d", got)
		}
		if got := report.Words["abc"]; got != 1 {
			t.Errorf("expected abc count 1, got %d", got)
		}
		// Tokens shorter than 3 characters never appear.
		for _, short := range []string{"x", "ab"} {
			if _, ok := report.Words[short]; ok {
				t.Errorf("short token %q must not be counted", short)
			}
		}
	})

	t.Run("max depth zero fetches only the seed", func(t *testing.T) {
		t.Parallel()

		fetcher := newFakeFetcher()
		fetcher.addPage("http://test.example/", "alpha beta",
			"/one.html", "/two.html", "/three.html")
		fetcher.addPage("http://test.example/one.html", "never reached")

		spider := NewSpider(fetcher, WithMaxDepth(0), WithLogger(quietLogger()))
		report, err := spider.Crawl(context.Background(), "http://test.example/")
		if err != nil {
			t.Fatalf("crawl failed: %v", err)
		}

		if len(report.Visited) != 1 {
			t.Errorf("expected 1 visited address, got %d: %v", len(report.Visited), report.Visited)
		}
		if report.PagesProcessed != 1 {
			t.Errorf("expected 1 page processed, got %d", report.PagesProcessed)
		}
		if fetcher.fetchCount("http://test.example/one.html") != 0 {
			t.Error("links must not be followed at max depth 0")
		}
	})

	t.Run("image extensions are skipped and never claimed", func(t *testing.T) {
		t.Parallel()

		fetcher := newFakeFetcher()
		fetcher.addPage("http://test.example/", "words here",
			"/photo.jpg", "/logo.SVG")

		spider := NewSpider(fetcher, WithMaxDepth(3), WithLogger(quietLogger()))
		report, err := spider.Crawl(context.Background(), "http://test.example/")
		if err != nil {
			t.Fatalf("crawl failed: %v", err)
		}

		if len(report.Visited) != 1 {
			t.Errorf("expected only the seed in the registry, got %v", report.Visited)
		}
		if report.SkippedLinks != 2 {
			t.Errorf("expected 2 skipped links, got %d", report.SkippedLinks)
		}
	})

	t.Run("other hosts are skipped", func(t *testing.T) {
		t.Parallel()

		fetcher := newFakeFetcher()
		fetcher.addPage("http://test.example/", "same host only",
			"http://other.example/page.html", "/local.html")
		fetcher.addPage("http://test.example/local.html", "local page")

		spider := NewSpider(fetcher, WithMaxDepth(1), WithLogger(quietLogger()))
		report, err := spider.Crawl(context.Background(), "http://test.example/")
		if err != nil {
			t.Fatalf("crawl failed: %v", err)
		}

		if fetcher.fetchCount("http://other.example/page.html") != 0 {
			t.Error("cross-host link must not be fetched")
		}
		if report.SkippedLinks != 1 {
			t.Errorf("expected 1 skipped link, got %d", report.SkippedLinks)
		}
		if report.PagesProcessed != 2 {
			t.Errorf("expected 2 pages processed, got %d", report.PagesProcessed)
		}
	})

	t.Run("shared link is fetched exactly once", func(t *testing.T) {
		t.Parallel()

		// Eight sibling pages all link to the same target; exactly one
		// claim may win no matter how the siblings interleave.
		fetcher := newFakeFetcher()
		siblings := make([]string, 8)
		for i := range siblings {
			addr := fmt.Sprintf("/s%d.html", i)
			siblings[i] = addr
			fetcher.addPage("http://test.example"+addr, "sibling page", "/shared.html")
		}
		fetcher.addPage("http://test.example/", "root", siblings...)
		fetcher.addPage("http://test.example/shared.html", "unique uniqueword")

		spider := NewSpider(fetcher, WithMaxDepth(2), WithLogger(quietLogger()))
		report, err := spider.Crawl(context.Background(), "http://test.example/")
		if err != nil {
			t.Fatalf("crawl failed: %v", err)
		}

		if got := fetcher.fetchCount("http://test.example/shared.html"); got != 1 {
			t.Errorf("shared page fetched %d times, want exactly 1", got)
		}
		if got := report.Words["uniqueword"]; got != 1 {
			t.Errorf("expected uniqueword counted once, got %d", got)
		}
		// root + 8 siblings + shared
		if report.PagesProcessed != 10 {
			t.Errorf("expected 10 pages processed, got %d", report.PagesProcessed)
		}
		if len(report.Visited) != 10 {
			t.Errorf("expected 10 visited addresses, got %d", len(report.Visited))
		}
	})

	t.Run("depth bound holds on a deep chain", func(t *testing.T) {
		t.Parallel()

		fetcher := newFakeFetcher()
		fetcher.addPage("http://test.example/0.html", "level zero", "/1.html")
		fetcher.addPage("http://test.example/1.html", "level one", "/2.html")
		fetcher.addPage("http://test.example/2.html", "level two", "/3.html")
		fetcher.addPage("http://test.example/3.html", "level three")

		spider := NewSpider(fetcher, WithMaxDepth(2), WithLogger(quietLogger()))
		report, err := spider.Crawl(context.Background(), "http://test.example/0.html")
		if err != nil {
			t.Fatalf("crawl failed: %v", err)
		}

		if fetcher.fetchCount("http://test.example/3.html") != 0 {
			t.Error("page beyond max depth must not be fetched")
		}
		if report.PagesProcessed != 3 {
			t.Errorf("expected 3 pages processed, got %d", report.PagesProcessed)
		}
	})

	t.Run("fetch failure contributes nothing and does not abort", func(t *testing.T) {
		t.Parallel()

		fetcher := newFakeFetcher()
		fetcher.addPage("http://test.example/", "root words",
			"/missing.html", "/ok.html")
		fetcher.addPage("http://test.example/ok.html", "surviving sibling")

		spider := NewSpider(fetcher, WithMaxDepth(1), WithLogger(quietLogger()))
		report, err := spider.Crawl(context.Background(), "http://test.example/")
		if err != nil {
			t.Fatalf("crawl failed: %v", err)
		}

		if got := report.Words["surviving"]; got != 1 {
			t.Errorf("sibling of a failed page must still be tallied, got %d", got)
		}
		// The failed page still ran as a task and still occupies a
		// registry slot: it was claimed before fetching.
		if report.PagesProcessed != 3 {
			t.Errorf("expected 3 pages processed, got %d", report.PagesProcessed)
		}
		if len(report.Visited) != 3 {
			t.Errorf("expected 3 visited addresses, got %d", len(report.Visited))
		}
	})

	t.Run("panicking task is contained at its boundary", func(t *testing.T) {
		t.Parallel()

		fetcher := newFakeFetcher()
		fetcher.addPage("http://test.example/", "root words", "/boom.html", "/fine.html")
		fetcher.addPage("http://test.example/boom.html", "never seen")
		fetcher.addPage("http://test.example/fine.html", "quiet page")
		fetcher.panicOn = "http://test.example/boom.html"

		spider := NewSpider(fetcher, WithMaxDepth(1), WithLogger(quietLogger()))
		report, err := spider.Crawl(context.Background(), "http://test.example/")
		if err != nil {
			t.Fatalf("crawl failed: %v", err)
		}

		if got := report.Words["quiet"]; got != 1 {
			t.Errorf("sibling of a panicking task must still be tallied, got %d", got)
		}
		if got := report.Words["root"]; got != 1 {
			t.Errorf("parent of a panicking task must keep its own words, got %d", got)
		}
	})

	t.Run("malformed links are counted and skipped", func(t *testing.T) {
		t.Parallel()

		fetcher := newFakeFetcher()
		fetcher.addPage("http://test.example/", "root words",
			"http://bad host/with space", "/good.html")
		fetcher.addPage("http://test.example/good.html", "good page")

		spider := NewSpider(fetcher, WithMaxDepth(1), WithLogger(quietLogger()))
		report, err := spider.Crawl(context.Background(), "http://test.example/")
		if err != nil {
			t.Fatalf("crawl failed: %v", err)
		}

		if report.BadLinks != 1 {
			t.Errorf("expected 1 bad link, got %d", report.BadLinks)
		}
		if report.PagesProcessed != 2 {
			t.Errorf("expected 2 pages processed, got %d", report.PagesProcessed)
		}
	})

	t.Run("malformed seed is fatal", func(t *testing.T) {
		t.Parallel()

		spider := NewSpider(newFakeFetcher(), WithLogger(quietLogger()))
		if _, err := spider.Crawl(context.Background(), "not a url at all"); err == nil {
			t.Error("expected error for seed without scheme")
		}
	})

	t.Run("merge totals are independent of completion order", func(t *testing.T) {
		t.Parallel()

		// Run the same graph several times; the worker pool makes
		// sibling completion order nondeterministic, but the totals
		// must never change.
		build := func() *fakeFetcher {
			f := newFakeFetcher()
			f.addPage("http://test.example/", "alpha beta beta",
				"/x.html", "/y.html", "/z.html")
			f.addPage("http://test.example/x.html", "beta gamma")
			f.addPage("http://test.example/y.html", "gamma gamma delta")
			f.addPage("http://test.example/z.html", "alpha delta")
			return f
		}

		want := map[string]int{"alpha": 2, "beta": 3, "gamma": 3, "delta": 2}
		for i := 0; i < 5; i++ {
			spider := NewSpider(build(), WithMaxDepth(1), WithWorkers(2), WithLogger(quietLogger()))
			report, err := spider.Crawl(context.Background(), "http://test.example/")
			if err != nil {
				t.Fatalf("crawl %d failed: %v", i, err)
			}
			for word, count := range want {
				if got := report.Words[word]; got != count {
					t.Errorf("run %d: word %q count = %d, want %d", i, word, got, count)
				}
			}
		}
	})
}

// TestSpiderOptions tests option handling.
func TestSpiderOptions(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		s := NewSpider(newFakeFetcher())
		if s.maxDepth != DefaultMaxDepth {
			t.Errorf("expected default max depth %d, got %d", DefaultMaxDepth, s.maxDepth)
		}
		if s.workers != DefaultWorkers {
			t.Errorf("expected default workers %d, got %d", DefaultWorkers, s.workers)
		}
		if !s.skipExts["jpg"] || !s.skipExts["svg"] {
			t.Error("expected default skip extensions to include image formats")
		}
	})

	t.Run("non-positive worker count is ignored", func(t *testing.T) {
		t.Parallel()

		s := NewSpider(newFakeFetcher(), WithWorkers(0))
		if s.workers != DefaultWorkers {
			t.Errorf("expected workers to stay at default, got %d", s.workers)
		}
	})

	t.Run("skip extensions are matched case-insensitively", func(t *testing.T) {
		t.Parallel()

		s := NewSpider(newFakeFetcher(), WithSkipExtensions([]string{"PDF"}))
		if !s.skipExts["pdf"] {
			t.Error("expected extension set to be lower-cased")
		}
	})
}
