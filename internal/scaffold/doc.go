// Package scaffold creates and patches a Vite + React + TypeScript browser
// extension project. It powers "mce init" and "mce doctor": an ordered list
// of steps is walked, each one creating a missing target from embedded
// defaults or applying a narrow idempotent patch to an existing one, so a
// second run over the same directory changes nothing.
package scaffold
