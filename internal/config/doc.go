// Package config resolves project settings from defaults, the project-level
// .mce.yaml file and MCE_* environment variables. It provides functions to
// load, read, and write keys such as the package manager and vite root.
package config
