package scaffold

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/Brice1994/minimal-chrome-extension/internal/manifest"
	"github.com/Brice1994/minimal-chrome-extension/internal/pkgmanager"
	"github.com/Brice1994/minimal-chrome-extension/internal/ui"
)

// RequiredDependencies are the packages every project needs. The dependencies
// step installs whichever of them neither dependency section declares.
var RequiredDependencies = []string{"vite", "react", "react-dom", "typescript"}

// DefaultViteRoot is the vite root inserted when the config has none.
const DefaultViteRoot = "."

// Outcome is what a step did to its target.
type Outcome string

const (
	Created   Outcome = "created"
	Skipped   Outcome = "skipped"
	Patched   Outcome = "patched"
	Unchanged Outcome = "unchanged"
	Installed Outcome = "installed"
)

// Changed reports whether the outcome wrote to disk or ran the installer.
func (o Outcome) Changed() bool {
	return o == Created || o == Patched || o == Installed
}

// ScaffoldData holds all template variables available to scaffold templates.
type ScaffoldData struct {
	Name        string // e.g., "my-extension"
	Description string // Human-readable description
	Version     string // Manifest version string, e.g., "0.1.0"
	Root        string // Vite root, e.g., "."
}

// NewScaffoldData creates a ScaffoldData with defaults filled in.
func NewScaffoldData(name, root string) *ScaffoldData {
	if root == "" {
		root = DefaultViteRoot
	}
	return &ScaffoldData{
		Name:        name,
		Description: fmt.Sprintf("%s browser extension", name),
		Version:     "0.1.0",
		Root:        root,
	}
}

// StepResult records one evaluated step.
type StepResult struct {
	Step    string
	Path    string
	Outcome Outcome
	Detail  string
}

// Result holds the outcome of a scaffold run.
type Result struct {
	Root     string
	Steps    []StepResult
	Warnings []string
}

// Changed reports whether any step modified the project.
func (r *Result) Changed() bool {
	for _, s := range r.Steps {
		if s.Outcome.Changed() {
			return true
		}
	}
	return false
}

// Options configures a Scaffolder. Zero values fall back to defaults.
type Options struct {
	Installer pkgmanager.Installer
	Logger    *slog.Logger
	Printer   *ui.Printer
	Required  []string
}

// Scaffolder walks the step list against one project directory.
type Scaffolder struct {
	root      string
	data      *ScaffoldData
	installer pkgmanager.Installer
	required  []string
	log       *slog.Logger
	out       *ui.Printer
}

// New creates a Scaffolder for the project at root.
func New(root string, data *ScaffoldData, opts Options) *Scaffolder {
	if data == nil {
		data = NewScaffoldData(filepath.Base(root), DefaultViteRoot)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	required := opts.Required
	if required == nil {
		required = RequiredDependencies
	}
	return &Scaffolder{
		root:      root,
		data:      data,
		installer: opts.Installer,
		required:  required,
		log:       logger,
		out:       opts.Printer,
	}
}

// Root returns the project directory.
func (s *Scaffolder) Root() string { return s.root }

// Run executes every step in order and then validates the manifest.
func (s *Scaffolder) Run(ctx context.Context) (*Result, error) {
	return s.RunSteps(ctx, Steps())
}

// RunSteps executes steps in order. The first failure stops the run; the
// partial result is returned alongside a *StepError. Nothing is rolled back.
func (s *Scaffolder) RunSteps(ctx context.Context, steps []Step) (*Result, error) {
	result := &Result{Root: s.root}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return result, &StepError{Step: step.Name, Path: step.Path, Err: err}
		}

		path := s.abs(step.Path)
		s.log.Debug("step", "name", step.Name, "path", path)

		outcome, detail, err := step.apply(ctx, s, path)
		if err != nil {
			s.out.Status(ui.TagFail, "%s: %v", step.Name, err)
			return result, &StepError{Step: step.Name, Path: step.Path, Err: err}
		}
		if outcome.Changed() {
			s.log.Info("wrote", "step", step.Name, "path", path, "outcome", string(outcome))
		}

		sr := StepResult{Step: step.Name, Path: step.Path, Outcome: outcome, Detail: detail}
		result.Steps = append(result.Steps, sr)
		s.report(sr)
	}

	result.Warnings = append(result.Warnings, s.validateManifest()...)
	for _, w := range result.Warnings {
		s.out.Status(ui.TagWarn, "%s", w)
	}
	return result, nil
}

// validateManifest validates the manifest against JSON Schema. Problems are
// warnings, never errors.
func (s *Scaffolder) validateManifest() []string {
	path := s.abs(ManifestPath)
	valResult, err := manifest.ValidateFile(path)
	if err != nil {
		// A run that stopped before the manifest step has nothing to check.
		if !fileExists(path) {
			return nil
		}
		return []string{fmt.Sprintf("Could not validate manifest: %v", err)}
	}
	if valResult.Valid {
		return nil
	}
	var warnings []string
	for _, issue := range valResult.Issues {
		warnings = append(warnings, "manifest.json "+issue.String())
	}
	return warnings
}

func (s *Scaffolder) report(sr StepResult) {
	display := sr.Path
	if display == "" {
		display = s.root
	}
	switch sr.Outcome {
	case Created:
		s.out.Status(ui.TagOK, "Created %s", display)
	case Skipped:
		s.out.Status(ui.TagSkip, "%s already exists", display)
	case Patched:
		s.out.Status(ui.TagPatch, "Patched %s (%s)", display, sr.Detail)
	case Unchanged:
		s.out.Status(ui.TagSkip, "%s up to date (%s)", display, sr.Step)
	case Installed:
		s.out.Status(ui.TagInstall, "Installed %s", sr.Detail)
	}
}

func (s *Scaffolder) abs(rel string) string {
	if rel == "" {
		return s.root
	}
	return filepath.Join(s.root, filepath.FromSlash(rel))
}

// rel returns path relative to the project root for display.
func (s *Scaffolder) rel(path string) string {
	r, err := filepath.Rel(s.root, path)
	if err != nil || r == "." {
		return path
	}
	return filepath.ToSlash(r)
}
