package pkgmanager

import (
	"context"
	"errors"
	"fmt"
)

// Installer is the package manager collaborator used by the scaffolder.
type Installer interface {
	// Init creates a package.json in dir.
	Init(ctx context.Context, dir string) error
	// Install adds packages to the dependencies of the project in dir.
	Install(ctx context.Context, dir string, packages []string) error
}

// Supported package manager identifiers.
const (
	NPM  = "npm"
	PNPM = "pnpm"
	Yarn = "yarn"
)

// ErrUnknownManager is returned for package manager names Lookup does not know.
var ErrUnknownManager = errors.New("unknown package manager")

// Lookup returns the NodePackageManager for name, or ErrUnknownManager.
func Lookup(name string) (*NodePackageManager, error) {
	switch name {
	case NPM, PNPM, Yarn:
		return &NodePackageManager{Name: name}, nil
	default:
		return nil, fmt.Errorf("%w %q: supported managers are %q, %q and %q", ErrUnknownManager, name, NPM, PNPM, Yarn)
	}
}
