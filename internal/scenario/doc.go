// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package scenario expands sensitivity settings into scenario variants.
//
// For every scenario, every combination of its sweeps and every base input,
// the Builder derives one variant by applying the combination's values to a
// copy of the base's engine input through the adjustment registry. Variants
// are produced lazily in fixed-size batches so a run never holds more than one
// batch of transformed documents in memory.
//
// Iteration order is scenario, then combination, then base input. The order
// is stable across runs for the same inputs.
package scenario
