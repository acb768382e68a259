// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package dispatch sends scenario variants to the calculation endpoint.
//
// A batch is fanned out concurrently, one goroutine per variant, and every
// variant yields exactly one VariantResult at its own index. Transient
// failures are retried with exponential backoff. A variant that still fails
// is written to the artifact store and recorded with the "Calculation error"
// reason. One variant failing never cancels its siblings.
//
// DispatchAll splits a large set of variants into chunks and runs them one
// chunk at a time, logging throughput and a completion forecast after each.
package dispatch
