package model

import (
	"time"

	"github.com/google/uuid"
)

// CrawlReport is the final result of one crawl run: the merged word
// frequencies, the set of addresses visited, and run-level counters.
//
// Design decision: The report is a plain value assembled once by the
// coordinator after the task tree has fully joined. Nothing in it is
// shared with running tasks, so readers never need synchronization.
type CrawlReport struct {
	// RunID uniquely identifies this crawl run in logs and reports.
	RunID string `json:"run_id"`

	// Seed is the normalized starting address.
	Seed string `json:"seed"`

	// MaxDepth is the configured maximum link depth for the run.
	MaxDepth int `json:"max_depth"`

	// StartedAt is when the crawl began.
	StartedAt time.Time `json:"started_at"`

	// Elapsed is the total wall-clock duration of the crawl.
	Elapsed time.Duration `json:"elapsed"`

	// Visited contains every address claimed during the run, sorted.
	Visited []string `json:"visited"`

	// PagesProcessed is the number of crawl tasks that ran
	// (the root plus every spawned child).
	PagesProcessed int `json:"pages_processed"`

	// SkippedLinks counts links dropped during expansion: wrong host,
	// filtered extension, or already claimed by another task.
	SkippedLinks int `json:"skipped_links"`

	// BadLinks counts links that failed address resolution.
	BadLinks int `json:"bad_links"`

	// Words is the merged frequency map across all fetched pages.
	Words FrequencyMap `json:"words"`
}

// NewCrawlReport creates a report shell for a run against the given seed.
// Counters and results are filled in by the coordinator when the run ends.
func NewCrawlReport(seed string, maxDepth int) *CrawlReport {
	return &CrawlReport{
		RunID:     uuid.NewString(),
		Seed:      seed,
		MaxDepth:  maxDepth,
		StartedAt: time.Now(),
		Visited:   []string{},
		Words:     FrequencyMap{},
	}
}
