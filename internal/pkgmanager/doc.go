// Package pkgmanager drives the external JavaScript package manager (npm, pnpm
// or yarn) that initializes package.json and installs dependencies, and checks
// the local Node.js version. Lookup selects the implementation by name.
package pkgmanager
