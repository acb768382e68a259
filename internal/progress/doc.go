// Package progress computes throughput and ETA figures for long runs and
// keeps a concurrently readable snapshot of where a run currently is.
package progress
