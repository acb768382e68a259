// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the run lifecycle: load settings and base
// inputs, build variants batch by batch, dispatch them, and persist the
// results. It is decoupled from any specific entrypoint like a CLI.
package app
