// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model holds the records that flow through a sensitivity run.
//
// # Core Concepts
//
//   - BaseInput: a project as read from the project data source, with its
//     engine-input document. It is read-only to the rest of the system. A base
//     without a document is valid and means the upstream data was incomplete.
//
//   - ScenarioVariant: a base input transformed by one combination of sweep
//     values. It carries its own document, derived from the base's document and
//     independent of it.
//
//   - VariantResult: the outcome of calculating one variant. It holds either a
//     CalculationResult or a FailureReason. When the base had no document, it
//     holds neither, so "nothing to compute" and "computation failed" stay
//     distinguishable from the result alone.
//
//   - Collection: the append-only container the orchestrator accumulates
//     results into.
//
// Variants and results are created per batch and discarded once they are
// persisted. Nothing in this package is safe for concurrent mutation, and
// nothing needs to be: results are appended by a single goroutine after each
// batch drains.
package model
