package scaffold

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Brice1994/minimal-chrome-extension/internal/document"
)

// fakeInstaller stands in for npm: Init writes a package.json like
// "npm init -y" does and Install records the packages into dependencies.
type fakeInstaller struct {
	initCalls  int
	installs   [][]string
	initErr    error
	installErr error
}

const initPackageJSON = `{
  "name": "fake",
  "version": "1.0.0",
  "main": "index.js",
  "scripts": {
    "test": "echo \"Error: no test specified\" && exit 1"
  },
  "license": "ISC"
}
`

func (f *fakeInstaller) Init(_ context.Context, dir string) error {
	f.initCalls++
	if f.initErr != nil {
		return f.initErr
	}
	return os.WriteFile(filepath.Join(dir, PackageJSON), []byte(initPackageJSON), 0644)
}

func (f *fakeInstaller) Install(_ context.Context, dir string, packages []string) error {
	f.installs = append(f.installs, append([]string(nil), packages...))
	if f.installErr != nil {
		return f.installErr
	}
	path := filepath.Join(dir, PackageJSON)
	doc, err := document.Load(path)
	if err != nil {
		return err
	}
	doc, _, err = document.EnsureObject(doc, document.Key("dependencies"))
	if err != nil {
		return err
	}
	for _, p := range packages {
		doc, _, err = document.SetString(doc, document.Key("dependencies", p), "^1.0.0")
		if err != nil {
			return err
		}
	}
	return document.Save(path, doc)
}

func newTestScaffolder(t *testing.T, root string, inst *fakeInstaller) *Scaffolder {
	t.Helper()
	return New(root, NewScaffoldData("my-ext", "."), Options{Installer: inst})
}

// stepsThrough returns Steps() up to and including the named step.
func stepsThrough(t *testing.T, name string) []Step {
	t.Helper()
	steps := Steps()
	for i, st := range steps {
		if st.Name == name {
			return steps[:i+1]
		}
	}
	t.Fatalf("no step named %q", name)
	return nil
}

// snapshot maps every path under root to its contents ("<dir>" for directories).
func snapshot(t *testing.T, root string) map[string]string {
	t.Helper()
	tree := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, path)
		if d.IsDir() {
			tree[rel] = "<dir>"
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		tree[rel] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("walking %s: %v", root, err)
	}
	return tree
}

func outcomes(r *Result) map[string]Outcome {
	m := make(map[string]Outcome)
	for _, s := range r.Steps {
		m[s.Step] = s.Outcome
	}
	return m
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("reading %s: %v", rel, err)
	}
	return string(data)
}

func assertContains(t *testing.T, content, substr string) {
	t.Helper()
	if !strings.Contains(content, substr) {
		t.Errorf("expected content to contain %q, got:\n%s", substr, content)
	}
}

func assertNotContains(t *testing.T, content, substr string) {
	t.Helper()
	if strings.Contains(content, substr) {
		t.Errorf("expected content NOT to contain %q, got:\n%s", substr, content)
	}
}
