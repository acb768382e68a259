// Package registry maps sensitivity components to the transforms that apply a
// sweep value to an engine-input document.
//
// Transforms are contributed by modules (see the modules/ tree). Each module
// registers one or more components together with the adjustment kinds it
// accepts. The registry is populated once at startup by New and is read-only
// afterwards, so it can be shared by any number of goroutines.
//
// Before a run, Validate checks every sweep of the settings against the
// registered transforms, so configuration mistakes surface before any
// variant is built.
package registry
