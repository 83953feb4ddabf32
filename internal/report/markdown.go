package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/wordspider/wordspider/internal/model"
)

// MarkdownWriter outputs crawl reports in Markdown, for documentation
// and sharing.
//
// Design decision: the nao1215/markdown library gives type-safe,
// fluent markdown generation with table support, which keeps the word
// table and run summary readable without hand-rolled formatting.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given
// writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.CrawlReport, topWords int) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Crawl Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Run ID", "`" + report.RunID + "`"},
			{"Seed", "`" + report.Seed + "`"},
			{"Max Depth", strconv.Itoa(report.MaxDepth)},
			{"Started", report.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Elapsed", report.Elapsed.String()},
			{"Pages Processed", strconv.Itoa(report.PagesProcessed)},
			{"Skipped Links", strconv.Itoa(report.SkippedLinks)},
			{"Bad Links", strconv.Itoa(report.BadLinks)},
		},
	})
	md.PlainText("")

	w.writeVisited(md, report)
	w.writeWords(md, report, topWords)

	return len(md.String()), md.Build()
}

// writeVisited writes the visited-address section.
func (w *MarkdownWriter) writeVisited(md *markdown.Markdown, report *model.CrawlReport) {
	md.H2("Visited Addresses (" + strconv.Itoa(len(report.Visited)) + ")")
	md.PlainText("")

	if len(report.Visited) == 0 {
		md.PlainText("No addresses visited.")
		md.PlainText("")
		return
	}

	items := make([]string, len(report.Visited))
	for i, addr := range report.Visited {
		items[i] = "`" + addr + "`"
	}
	md.BulletList(items...)
	md.PlainText("")
}

// writeWords writes the word-frequency table.
func (w *MarkdownWriter) writeWords(md *markdown.Markdown, report *model.CrawlReport, topWords int) {
	top := report.Words.Top(topWords)

	md.H2("Top Words")
	md.PlainText("")

	if len(top) == 0 {
		md.PlainText("No words tallied.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(top))
	for i, wc := range top {
		rows[i] = []string{strconv.Itoa(i + 1), wc.Word, strconv.Itoa(wc.Count)}
	}
	md.Table(markdown.TableSet{
		Header: []string{"#", "Word", "Count"},
		Rows:   rows,
	})
	md.PlainText("")
}
