package pkgmanager

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestLookup(t *testing.T) {
	for _, name := range []string{NPM, PNPM, Yarn} {
		pm, err := Lookup(name)
		if err != nil {
			t.Errorf("Lookup(%q) error: %v", name, err)
			continue
		}
		if pm.Name != name {
			t.Errorf("Lookup(%q).Name = %q", name, pm.Name)
		}
	}
}

func TestLookup_Unknown(t *testing.T) {
	pm, err := Lookup("bun")
	if !errors.Is(err, ErrUnknownManager) {
		t.Fatalf("Lookup(bun) error = %v, want ErrUnknownManager", err)
	}
	if pm != nil {
		t.Errorf("Lookup(bun) = %v, want nil", pm)
	}
	if !strings.Contains(err.Error(), `"bun"`) {
		t.Errorf("error %q does not name the manager", err)
	}
}

func TestNodePackageManager_Args(t *testing.T) {
	tests := []struct {
		name     string
		manager  string
		call     func(pm *NodePackageManager, dir string) error
		wantArgs string
	}{
		{
			name:    "npm init",
			manager: NPM,
			call: func(pm *NodePackageManager, dir string) error {
				return pm.Init(context.Background(), dir)
			},
			wantArgs: "init -y",
		},
		{
			name:    "npm install",
			manager: NPM,
			call: func(pm *NodePackageManager, dir string) error {
				return pm.Install(context.Background(), dir, []string{"vite", "react"})
			},
			wantArgs: "install vite react",
		},
		{
			name:    "pnpm add",
			manager: PNPM,
			call: func(pm *NodePackageManager, dir string) error {
				return pm.Install(context.Background(), dir, []string{"typescript"})
			},
			wantArgs: "add typescript",
		},
		{
			name:    "yarn add",
			manager: Yarn,
			call: func(pm *NodePackageManager, dir string) error {
				return pm.Install(context.Background(), dir, []string{"react-dom"})
			},
			wantArgs: "add react-dom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := installFakeBinary(t, tt.manager, 0)
			project := t.TempDir()
			var stdout, stderr bytes.Buffer
			pm := &NodePackageManager{Name: tt.manager, Stdout: &stdout, Stderr: &stderr}

			if err := tt.call(pm, project); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			got := readLog(t, log)
			if !strings.Contains(got, tt.wantArgs) {
				t.Errorf("args = %q, want %q", got, tt.wantArgs)
			}
			if !strings.Contains(got, "cwd="+project) {
				t.Errorf("command did not run in project dir: %q", got)
			}
		})
	}
}

func TestNodePackageManager_InstallEmptyIsNoop(t *testing.T) {
	log := installFakeBinary(t, NPM, 0)
	pm := &NodePackageManager{Name: NPM, Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}

	if err := pm.Install(context.Background(), t.TempDir(), nil); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(log); !os.IsNotExist(err) {
		t.Error("package manager was invoked for an empty package list")
	}
}

func TestNodePackageManager_NonZeroExit(t *testing.T) {
	installFakeBinary(t, NPM, 3)
	var stderr bytes.Buffer
	pm := &NodePackageManager{Name: NPM, Stdout: &bytes.Buffer{}, Stderr: &stderr}

	err := pm.Install(context.Background(), t.TempDir(), []string{"vite"})
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("error = %v, want *ExitError", err)
	}
	if exitErr.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", exitErr.ExitCode)
	}
	if exitErr.Command != "npm install vite" {
		t.Errorf("Command = %q, want %q", exitErr.Command, "npm install vite")
	}
	if !strings.Contains(err.Error(), "fake failure") {
		t.Errorf("error should carry stderr tail, got %q", err.Error())
	}
	if !strings.Contains(stderr.String(), "fake failure") {
		t.Error("stderr was not streamed to the configured writer")
	}
}

func TestNodePackageManager_MissingBinary(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	pm := &NodePackageManager{Name: PNPM}
	if err := pm.Init(context.Background(), t.TempDir()); err == nil {
		t.Fatal("expected error when binary is missing")
	}
}

// installFakeBinary writes a shell script named name onto an isolated PATH.
// The script logs its arguments and working directory, then exits with code.
func installFakeBinary(t *testing.T, name string, code int) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fakes are not supported on Windows")
	}

	binDir := t.TempDir()
	log := filepath.Join(t.TempDir(), "args.log")
	script := "#!/bin/sh\n" +
		"echo \"$@ cwd=$(pwd)\" >> \"" + log + "\"\n"
	if code != 0 {
		script += "echo 'fake failure' >&2\nexit " + itoa(code) + "\n"
	}
	if err := os.WriteFile(filepath.Join(binDir, name), []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", binDir)
	return log
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading fake binary log: %v", err)
	}
	return string(data)
}

func itoa(n int) string {
	return string(rune('0' + n))
}
