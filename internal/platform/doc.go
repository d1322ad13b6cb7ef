// Package platform provides small cross-platform filesystem helpers: permission
// changes that degrade to no-ops on Windows, and atomic file replacement used
// when patching documents that already exist on disk.
package platform
