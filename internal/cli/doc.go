// Package cli defines the Cobra command tree for the mce CLI. Each file in
// this package registers one top-level command (init, doctor, config,
// version) with the root command. Command implementations delegate to
// internal packages for business logic and only handle flag parsing, I/O
// formatting, and settings resolution.
package cli
