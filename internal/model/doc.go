// Package model defines the core data structures shared across wordspider:
// fetched pages, word-frequency maps, and the final crawl report.
//
// This package has no dependencies on other internal packages, allowing
// it to be imported from anywhere without circular imports.
package model
