package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoad_Defaults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "my-ext")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}

	c, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := Settings{
		PackageManager: "npm",
		Name:           "my-ext",
		Root:           ".",
		NodeConstraint: ">= 18.0.0",
		LogLevel:       "info",
	}
	if diff := cmp.Diff(want, c.Settings()); diff != "" {
		t.Errorf("Settings mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Layers(t *testing.T) {
	dir := t.TempDir()
	yaml := "package_manager: pnpm\nroot: src\nname: from-file\n"
	if err := os.WriteFile(FilePath(dir), []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MCE_ROOT", "web")

	c, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := c.Get(KeyPackageManager); got != "pnpm" {
		t.Errorf("package_manager = %q, want pnpm (file)", got)
	}
	if got := c.Get(KeyRoot); got != "web" {
		t.Errorf("root = %q, want web (env beats file)", got)
	}

	c.Override(KeyName, "from-flag")
	c.Override(KeyRoot, "")
	if got := c.Get(KeyName); got != "from-flag" {
		t.Errorf("name = %q, want from-flag", got)
	}
	if got := c.Get(KeyRoot); got != "web" {
		t.Errorf("empty override changed root to %q", got)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(FilePath(dir), []byte("root: [unclosed\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatal("expected error for malformed config file")
	}
}

func TestSet(t *testing.T) {
	dir := t.TempDir()
	c, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Set(KeyPackageManager, "yarn"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := c.Get(KeyPackageManager); got != "yarn" {
		t.Errorf("Get after Set = %q", got)
	}

	data, err := os.ReadFile(FilePath(dir))
	if err != nil {
		t.Fatalf("reading config file: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "package_manager: yarn") {
		t.Errorf("config file missing key:\n%s", content)
	}
	if strings.Contains(content, "node_constraint") {
		t.Errorf("defaults should not be persisted:\n%s", content)
	}

	reloaded, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got := reloaded.Get(KeyPackageManager); got != "yarn" {
		t.Errorf("reloaded package_manager = %q", got)
	}
}

func TestSet_KeepsExistingKeys(t *testing.T) {
	dir := t.TempDir()
	c, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Set(KeyRoot, "app"); err != nil {
		t.Fatal(err)
	}
	if err := c.Set(KeyName, "demo"); err != nil {
		t.Fatal(err)
	}

	reloaded, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.Get(KeyRoot) != "app" || reloaded.Get(KeyName) != "demo" {
		t.Errorf("got root=%q name=%q", reloaded.Get(KeyRoot), reloaded.Get(KeyName))
	}
}

func TestSet_UnknownKey(t *testing.T) {
	c, err := Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	err = c.Set("mirror", "x")
	if !errors.Is(err, ErrUnknownKey) {
		t.Fatalf("Set error = %v, want ErrUnknownKey", err)
	}
}
