// Package fetch retrieves pages over HTTP and extracts the text content
// and outbound links the crawl core consumes.
//
// The crawl core depends only on the Fetcher interface; the HTTP
// implementation here is one collaborator satisfying it. Tests inject
// in-memory fetchers instead.
package fetch
