// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package sensitivity defines the declarative vocabulary of a sensitivity run:
// the components that can be perturbed, the adjustment kinds that describe how
// a value is applied, and the scenarios that group independent parameter
// sweeps.
//
// # Core Concepts
//
//   - Component: a named axis of the project model (discount rate, capex,
//     energy yield, ...). Components are closed enums; every component that a
//     scenario references must have an adjustment registered for it.
//
//   - AdjustmentKind: the semantics of a sweep value. A percentage adjustment
//     is a delta applied to an existing field, an override replaces a field,
//     a generic adder is an absolute offset and a per-MW capex adder adds a
//     cost line scaled by installed capacity.
//
//   - ParameterSweep: one axis of variation, an ordered list of values for a
//     single component.
//
//   - ScenarioDefinition: a named group of sweeps. Sweeps are orthogonal, so
//     the scenario's variants are the cartesian product of their values.
//
//   - Combination: one point of that product, one value per swept component,
//     kept in sweep declaration order.
//
// Enumeration order is part of the contract. The first declared sweep varies
// slowest and the last varies fastest, the same nesting as an ordinary
// cartesian-product iterator. Two runs over the same settings therefore emit
// variants in the same order.
package sensitivity
