// Package tally counts word occurrences in page text.
//
// Count is a pure function with no shared state, safe to call from any
// number of crawl tasks at once.
package tally
