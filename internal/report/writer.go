package report

import (
	"fmt"
	"io"
	"time"

	"github.com/wordspider/wordspider/internal/model"
)

// Writer renders a crawl report to some destination.
//
// Design decision: an interface rather than free functions so the
// command layer can pick text or Markdown output through the same call,
// and tests can render into buffers.
type Writer interface {
	// Write outputs the report. It returns the number of bytes written
	// and any error encountered.
	Write(report *model.CrawlReport, topWords int) (int, error)
}

// baseWriter provides the shared output destination for writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// TextWriter renders the report as plain text: the visited-address set
// first, then up to topWords "word: count" lines by descending count.
type TextWriter struct {
	baseWriter
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer) *TextWriter {
	return &TextWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the report in plain text.
func (w *TextWriter) Write(report *model.CrawlReport, topWords int) (int, error) {
	var total int

	n, err := fmt.Fprintf(w.output, "Visited addresses (%d):\n", len(report.Visited))
	total += n
	if err != nil {
		return total, err
	}
	for _, addr := range report.Visited {
		n, err = fmt.Fprintf(w.output, "  %s\n", addr)
		total += n
		if err != nil {
			return total, err
		}
	}

	n, err = fmt.Fprintf(w.output, "\nTop %d words (%d distinct, %d total):\n",
		topWords, len(report.Words), report.Words.Total())
	total += n
	if err != nil {
		return total, err
	}
	for _, wc := range report.Words.Top(topWords) {
		n, err = fmt.Fprintf(w.output, "%s: %d\n", wc.Word, wc.Count)
		total += n
		if err != nil {
			return total, err
		}
	}

	n, err = fmt.Fprintf(w.output, "\nPages processed: %d, skipped links: %d, bad links: %d, elapsed: %s\n",
		report.PagesProcessed, report.SkippedLinks, report.BadLinks, report.Elapsed.Round(time.Millisecond))
	total += n
	return total, err
}
