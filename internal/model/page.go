package model

// Page represents a single fetched web page with the pieces the crawl
// core needs: extracted text for tallying and raw outbound links for
// expansion.
//
// Design decision: Links holds the raw href strings exactly as they
// appear in the document, in document order. Resolution against the
// page's address is the link classifier's job, not the fetcher's, so
// that the classifier's prefix rules stay in one place and are testable
// without a parser.
type Page struct {
	// URL is the absolute address the page was fetched from.
	URL string `json:"url"`

	// StatusCode is the HTTP response status code.
	StatusCode int `json:"status_code"`

	// ContentType is the MIME type from the Content-Type header.
	ContentType string `json:"content_type"`

	// Title is the page title from the <title> tag, if any.
	Title string `json:"title,omitempty"`

	// Text is the visible text content of the page body.
	// Script and style contents are excluded.
	Text string `json:"-"`

	// Links contains the raw href values of anchor elements,
	// unresolved, in document order.
	Links []string `json:"links,omitempty"`
}
