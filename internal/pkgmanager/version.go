package pkgmanager

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// DefaultNodeConstraint is the Node.js range Vite 5 supports.
const DefaultNodeConstraint = ">= 18.0.0"

// NodeCheck is the outcome of CheckNode.
type NodeCheck struct {
	Path       string
	Version    string
	Constraint string
	Satisfied  bool
}

// CheckNode locates node, reads its version and checks it against constraint.
func CheckNode(ctx context.Context, constraint string) (*NodeCheck, error) {
	if constraint == "" {
		constraint = DefaultNodeConstraint
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return nil, fmt.Errorf("parsing node constraint %q: %w", constraint, err)
	}

	bin, err := exec.LookPath("node")
	if err != nil {
		return nil, fmt.Errorf("node not found: %w", err)
	}
	out, err := exec.CommandContext(ctx, bin, "--version").Output()
	if err != nil {
		return nil, fmt.Errorf("running node --version: %w", err)
	}

	raw := strings.TrimSpace(string(out))
	v, err := parseSemver(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing node version %q: %w", raw, err)
	}

	return &NodeCheck{
		Path:       bin,
		Version:    v.String(),
		Constraint: constraint,
		Satisfied:  c.Check(v),
	}, nil
}

// RangeAllows reports whether a declared dependency range such as "^5.0.0"
// admits version. Ranges that are not semver (tags, URLs) report false.
func RangeAllows(declared, version string) bool {
	c, err := semver.NewConstraint(declared)
	if err != nil {
		return false
	}
	v, err := parseSemver(version)
	if err != nil {
		return false
	}
	return c.Check(v)
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(version, "v")
	return semver.NewVersion(version)
}
