// Package registry provides the shared mutable state of a crawl run:
// the visited-address registry and the task progress counter.
//
// The registry's Claim operation is the single synchronization point
// guaranteeing that each distinct address is fetched by exactly one
// task, no matter how many tasks expand concurrently.
package registry
