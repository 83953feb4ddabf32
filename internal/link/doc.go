// Package link classifies raw href strings discovered during a crawl.
//
// It resolves links to absolute addresses, derives the domain string
// used for same-host filtering, and extracts file extensions for the
// skip filter. All functions are pure and safe for concurrent use.
package link
