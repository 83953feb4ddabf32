package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultMaxDepth limits link recursion from the seed address.
	// Ten levels reaches effectively all of a typical site while still
	// terminating on pathological link structures.
	DefaultMaxDepth = 10

	// DefaultWorkers is the size of the fetch worker pool. Eight
	// concurrent fetches keeps a single-host crawl fast without
	// hammering the target like an attack.
	DefaultWorkers = 8

	// DefaultTimeout is the per-request HTTP timeout. The crawl core
	// itself never times out; this bound lives in the fetcher so one
	// stalled server cannot hang a branch of the crawl forever.
	DefaultTimeout = 30 * time.Second

	// DefaultTopWords is how many (word, count) pairs the report
	// prints, highest counts first.
	DefaultTopWords = 100

	// DefaultMaxBodySize limits the response bytes read per page.
	// 5MB covers HTML while preventing memory exhaustion from
	// unexpectedly large responses.
	DefaultMaxBodySize = 5 * 1024 * 1024

	// DefaultUserAgent identifies wordspider in HTTP requests so site
	// operators can recognize crawler traffic in their logs.
	DefaultUserAgent = "wordspider/1.0 (+https://github.com/wordspider/wordspider)"

	// AppName is the application name used for XDG directory paths.
	AppName = "wordspider"
)

// DefaultSkipExtensions returns the extensions excluded from crawling:
// binary image formats that contain no words to tally. The config file
// can extend this set per host.
func DefaultSkipExtensions() []string {
	return []string{"jpg", "jpeg", "png", "gif", "tiff", "bmp", "svg"}
}

// Config holds all options for a crawl run. It is populated from CLI
// flags and the optional config file, then passed down by value through
// dependency injection rather than global state.
type Config struct {
	// Seed is the starting address for the crawl.
	Seed string

	// MaxDepth is the maximum link recursion depth.
	// 0 means only the seed page is fetched.
	MaxDepth int

	// Workers is the maximum number of concurrent page fetches.
	Workers int

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration

	// TopWords is the number of word/count pairs to print.
	TopWords int

	// MaxBodySize is the maximum response body size in bytes.
	MaxBodySize int64

	// UserAgent is the User-Agent header for HTTP requests.
	UserAgent string

	// SkipExtensions are file extensions excluded from crawling.
	SkipExtensions []string

	// Verbose enables debug-level logging.
	Verbose bool

	// ConfigFilePath is an explicit config file path. Empty means
	// search the standard locations (cwd, home, XDG config dir).
	ConfigFilePath string

	// Hosts holds per-host overrides loaded from the config file.
	Hosts *File

	// JSONReport selects JSON report output.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport selects Markdown report output.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile, when set, writes the report there instead of stdout.
	ReportFile string
}

// NewConfig creates a Config with default values. Non-zero defaults
// (timeout, depth, worker count) make a zero-value struct unusable, so
// a constructor documents and applies them in one place.
func NewConfig() *Config {
	return &Config{
		MaxDepth:       DefaultMaxDepth,
		Workers:        DefaultWorkers,
		Timeout:        DefaultTimeout,
		TopWords:       DefaultTopWords,
		MaxBodySize:    DefaultMaxBodySize,
		UserAgent:      DefaultUserAgent,
		SkipExtensions: DefaultSkipExtensions(),
	}
}

// XDGConfigDir returns the XDG config directory for wordspider.
// On Linux: ~/.config/wordspider.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the configuration and returns the first problem found
// as a sentinel error. It runs once after flag parsing, before the
// crawl starts, so misconfiguration fails fast with a clear message.
func (c *Config) Validate() error {
	if c.Seed == "" {
		return ErrNoSeed
	}
	if c.MaxDepth < 0 {
		return ErrInvalidDepth
	}
	if c.Workers <= 0 {
		return ErrInvalidWorkers
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.TopWords < 0 {
		return ErrInvalidTopWords
	}
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	return nil
}
