// Package document loads, transforms and saves the JSON documents a scaffolded
// project carries (package.json, tsconfig.json, manifest.json).
//
// Transforms are pure: each takes a *Document and returns a new one together
// with a flag reporting whether anything changed. Unknown fields and key order
// survive every transform, so a document is only rewritten when one of the
// keys the caller owns actually had to change.
package document
