// Package report renders crawl results: the visited-address set and
// the top word counts, as plain text or Markdown.
package report
