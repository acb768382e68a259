// Package results persists the outcome of a run: the JSON collection written
// at the end, an optional SQL table appended per batch, and per-scenario
// summaries.
package results
