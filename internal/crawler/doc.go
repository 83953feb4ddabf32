// Package crawler implements the concurrent crawl core: a fork-join
// tree of per-page tasks that share a visited registry for exactly-once
// fetching and merge word frequencies bottom-up.
package crawler
