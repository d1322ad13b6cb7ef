// Package manifest defines the Manifest V3 extension manifest (manifest.json)
// and validates it against an embedded JSON Schema. Validation issues are
// reported as data rather than errors so callers can surface them as warnings.
package manifest
