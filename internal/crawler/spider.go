package crawler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/wordspider/wordspider/internal/fetch"
	"github.com/wordspider/wordspider/internal/link"
	"github.com/wordspider/wordspider/internal/model"
	"github.com/wordspider/wordspider/internal/registry"
	"github.com/wordspider/wordspider/internal/tally"
)

// Defaults for a Spider when no option overrides them.
const (
	// DefaultMaxDepth limits link recursion from the seed.
	// 0 means only the seed page, 1 adds its links, and so on.
	DefaultMaxDepth = 10

	// DefaultWorkers bounds how many pages are fetched at once.
	// Task goroutines beyond this block before their fetch, not after,
	// so the fork-join tree itself is never starved.
	DefaultWorkers = 8
)

// DefaultSkipExtensions lists file extensions that are never crawled.
// These are binary image formats that contain no words to tally.
func DefaultSkipExtensions() []string {
	return []string{"jpg", "jpeg", "png", "gif", "tiff", "bmp", "svg"}
}

// Spider crawls same-host pages from a seed address and aggregates
// word frequencies across every page visited exactly once.
//
// A Spider is safe to reuse: all per-run state (visited registry,
// counters) lives in a crawlRun created inside Crawl, so concurrent
// Crawl calls do not interfere and every test gets isolated state.
type Spider struct {
	// fetcher retrieves pages. Injected so tests can crawl in-memory
	// page graphs without a network.
	fetcher fetch.Fetcher

	// maxDepth limits how deep to follow links from the seed.
	maxDepth int

	// workers is the maximum number of concurrent page fetches.
	workers int64

	// skipExts are lower-cased file extensions never crawled.
	skipExts map[string]bool

	// logger receives per-task progress and warnings.
	logger *slog.Logger
}

// SpiderOption configures a Spider.
type SpiderOption func(*Spider)

// WithMaxDepth sets the maximum crawl depth.
// 0 = only the seed page, 1 = seed plus linked pages, etc.
func WithMaxDepth(depth int) SpiderOption {
	return func(s *Spider) {
		s.maxDepth = depth
	}
}

// WithWorkers sets the maximum number of concurrent page fetches.
func WithWorkers(n int) SpiderOption {
	return func(s *Spider) {
		if n > 0 {
			s.workers = int64(n)
		}
	}
}

// WithSkipExtensions replaces the set of file extensions that are
// skipped during link expansion. Extensions are matched case-insensitively.
func WithSkipExtensions(exts []string) SpiderOption {
	return func(s *Spider) {
		s.skipExts = make(map[string]bool, len(exts))
		for _, ext := range exts {
			s.skipExts[strings.ToLower(ext)] = true
		}
	}
}

// WithLogger sets a custom logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) SpiderOption {
	return func(s *Spider) {
		s.logger = logger
	}
}

// NewSpider creates a Spider using the given fetcher.
//
// Design decision: the fetcher is a required argument rather than an
// option because a Spider without one cannot do anything, and because
// injecting it keeps transport and parsing concerns out of this package.
func NewSpider(fetcher fetch.Fetcher, opts ...SpiderOption) *Spider {
	s := &Spider{
		fetcher:  fetcher,
		maxDepth: DefaultMaxDepth,
		workers:  DefaultWorkers,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.skipExts == nil {
		WithSkipExtensions(DefaultSkipExtensions())(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	return s
}

// crawlRun holds the shared mutable state of one crawl: the visited
// registry, the progress counter, and the skip/bad link totals. The
// registry and the counters are the only state shared between tasks;
// every frequency map is owned by exactly one task until merged.
type crawlRun struct {
	registry *registry.Registry
	progress *registry.Progress
	sem      *semaphore.Weighted
	skipped  atomic.Int64
	bad      atomic.Int64
}

// task is one unit of crawl work: a single page to fetch, identified by
// its address, its depth relative to the seed, and its domain-of-origin.
type task struct {
	addr  *url.URL
	depth int

	// domain is derived once at construction from the task's own
	// address, and is what root-relative child links resolve against.
	// Child links are filtered to this task's host, not the seed's;
	// a crawl may therefore wander across transitively discovered
	// subdomains. That behavior is deliberate.
	domain string
}

// newTask constructs a task for the given address and depth.
func newTask(addr *url.URL, depth int) *task {
	return &task{
		addr:   addr,
		depth:  depth,
		domain: link.DomainOf(addr),
	}
}

// Crawl seeds a fresh visited registry with the starting address, runs
// the root task to completion, and returns the merged frequency map
// plus the final visited set wrapped in a CrawlReport.
//
// A malformed seed is the only fatal error. Every failure below the
// seed (bad links, fetch errors, panicking tasks) is contained at the
// smallest scope and reflected only in counters and logs.
func (s *Spider) Crawl(ctx context.Context, seed string) (*model.CrawlReport, error) {
	addr, err := url.Parse(strings.TrimSpace(seed))
	if err != nil {
		return nil, fmt.Errorf("invalid seed address %q: %w", seed, err)
	}
	if addr.Scheme == "" {
		return nil, fmt.Errorf("invalid seed address %q: missing scheme", seed)
	}

	report := model.NewCrawlReport(addr.String(), s.maxDepth)
	run := &crawlRun{
		registry: registry.New(),
		progress: &registry.Progress{},
		sem:      semaphore.NewWeighted(s.workers),
	}

	// The registry is empty, so claiming the seed must succeed.
	if !run.registry.Claim(addr) {
		return nil, fmt.Errorf("seed address %q could not be claimed", seed)
	}
	run.progress.Add(1) // the root task

	s.logger.Info("starting crawl",
		"run_id", report.RunID,
		"seed", report.Seed,
		"max_depth", s.maxDepth,
		"workers", s.workers,
	)

	report.Words = s.runTask(ctx, run, newTask(addr, 0))

	report.Elapsed = time.Since(report.StartedAt)
	report.Visited = run.registry.Snapshot()
	report.PagesProcessed = run.progress.Count()
	report.SkippedLinks = int(run.skipped.Load())
	report.BadLinks = int(run.bad.Load())

	s.logger.Info("crawl complete",
		"run_id", report.RunID,
		"pages", report.PagesProcessed,
		"distinct_words", len(report.Words),
		"elapsed", report.Elapsed,
	)

	return report, nil
}

// runTask executes one crawl task: fetch, tally, expand, await
// children, merge. It always returns a usable map; failures inside the
// task shrink its contribution, never abort siblings or ancestors.
func (s *Spider) runTask(ctx context.Context, run *crawlRun, t *task) (freq model.FrequencyMap) {
	freq = model.FrequencyMap{}

	// Task boundary: a panic anywhere below is logged and the task
	// returns whatever it had accumulated so far.
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("task panicked",
				"url", t.addr.String(),
				"depth", t.depth,
				"panic", r,
			)
		}
	}()

	page, err := s.fetchPage(ctx, run, t)
	if err != nil {
		s.logger.Warn("fetch failed",
			"url", t.addr.String(),
			"depth", t.depth,
			"error", err,
		)
		return freq
	}

	freq = tally.Count(page.Text)

	if t.depth == s.maxDepth {
		return freq
	}

	children := s.expand(run, t, page.Links)

	// Await all children, then merge in scheduling order. The order
	// only makes iteration deterministic; the merge itself is
	// commutative, so correctness never depends on it.
	results := make([]model.FrequencyMap, len(children))
	var g errgroup.Group
	for i, child := range children {
		i, child := i, child
		g.Go(func() error {
			results[i] = s.runTask(ctx, run, child)
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // child tasks never return errors

	for _, result := range results {
		freq.Merge(result)
	}

	completed := run.progress.Add(len(children))
	s.logger.Debug("task merged",
		"url", t.addr.String(),
		"depth", t.depth,
		"completed", completed,
		"claimed", run.registry.Len(),
	)

	return freq
}

// expand classifies the raw outbound links of a page and claims the
// crawlable ones. Each successful claim yields a child task at
// depth+1; everything else bumps the run's skip or bad counters.
func (s *Spider) expand(run *crawlRun, t *task, links []string) []*task {
	var children []*task
	var skipped, bad int

	for _, raw := range links {
		resolved, err := link.Resolve(raw, t.addr)
		if errors.Is(err, link.ErrNotResolvable) {
			// Fragment-only or empty href: not a link at all.
			continue
		}
		if err != nil {
			bad++
			continue
		}

		// Same-host filter compares against this task's address, and
		// the extension filter runs before the claim so image links
		// never occupy a registry slot.
		if !link.SameHost(resolved, t.addr) || s.skipExts[link.Ext(resolved)] {
			skipped++
			continue
		}

		if !run.registry.Claim(resolved) {
			// Another task got there first.
			skipped++
			continue
		}

		children = append(children, newTask(resolved, t.depth+1))
	}

	run.skipped.Add(int64(skipped))
	run.bad.Add(int64(bad))

	s.logger.Debug("expanded page",
		"url", t.addr.String(),
		"domain", t.domain,
		"depth", t.depth,
		"spawned", len(children),
		"skipped", skipped,
		"bad", bad,
	)

	return children
}

// fetchPage fetches the task's page under the worker-pool bound. The
// semaphore is held only for the duration of the fetch and is released
// before the task awaits its children; holding it across the join would
// deadlock once the tree grows deeper than the pool.
func (s *Spider) fetchPage(ctx context.Context, run *crawlRun, t *task) (*model.Page, error) {
	if err := run.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer run.sem.Release(1)

	start := time.Now()
	page, err := s.fetcher.Fetch(ctx, t.addr.String())
	if err != nil {
		return nil, err
	}

	s.logger.Debug("fetched page",
		"url", t.addr.String(),
		"status", page.StatusCode,
		"links", len(page.Links),
		"elapsed", time.Since(start),
	)
	return page, nil
}
