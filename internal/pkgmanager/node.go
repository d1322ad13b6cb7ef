package pkgmanager

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// NodePackageManager runs npm, pnpm or yarn as a child process.
type NodePackageManager struct {
	// Name is the binary to run: npm, pnpm or yarn.
	Name string
	// Stdout and Stderr can be set for testing; defaults to os.Stdout/os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// ExitError reports a package manager run that exited non-zero.
type ExitError struct {
	Command  string
	ExitCode int
	Stderr   string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s exited with code %d", e.Command, e.ExitCode)
	if tail := lastLine(e.Stderr); tail != "" {
		msg += ": " + tail
	}
	return msg
}

// Init runs "<pm> init -y" in dir.
func (n *NodePackageManager) Init(ctx context.Context, dir string) error {
	return n.run(ctx, dir, "init", "-y")
}

// Install runs "npm install <pkgs>" or "<pnpm|yarn> add <pkgs>" in dir. An
// empty package list does nothing.
func (n *NodePackageManager) Install(ctx context.Context, dir string, packages []string) error {
	if len(packages) == 0 {
		return nil
	}
	verb := "add"
	if n.Name == NPM {
		verb = "install"
	}
	return n.run(ctx, dir, append([]string{verb}, packages...)...)
}

// Version returns the trimmed output of "<pm> --version".
func (n *NodePackageManager) Version(ctx context.Context) (string, error) {
	bin, err := exec.LookPath(n.Name)
	if err != nil {
		return "", fmt.Errorf("%s not found: %w", n.Name, err)
	}
	out, err := exec.CommandContext(ctx, bin, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("running %s --version: %w", n.Name, err)
	}
	return strings.TrimSpace(string(out)), nil
}

func (n *NodePackageManager) run(ctx context.Context, dir string, args ...string) error {
	bin, err := exec.LookPath(n.Name)
	if err != nil {
		return fmt.Errorf("%s not found: %w", n.Name, err)
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir

	stdout := n.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := n.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	var stderrBuf bytes.Buffer
	cmd.Stdout = stdout
	cmd.Stderr = io.MultiWriter(stderr, &stderrBuf)

	command := n.Name + " " + strings.Join(args, " ")
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Command: command, ExitCode: exitErr.ExitCode(), Stderr: stderrBuf.String()}
		}
		return fmt.Errorf("running %s: %w", command, err)
	}
	return nil
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
