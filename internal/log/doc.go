// Package log provides slog-based logging helpers for wordspider.
//
// Crawl logging attaches page text fragments, URLs, and link lists as
// attributes; the TruncatingHandler caps those values so one oversized
// page cannot flood the log output.
package log
