package scaffold

import (
	"fmt"
	"os"
	"strings"

	"github.com/Brice1994/minimal-chrome-extension/internal/branding"
	"github.com/Brice1994/minimal-chrome-extension/internal/document"
	"github.com/Brice1994/minimal-chrome-extension/internal/ui"
	"github.com/Brice1994/minimal-chrome-extension/internal/viteconfig"
)

// Finding is one line of a project check. An empty Tag means the step had
// nothing to report.
type Finding struct {
	Step    string
	Path    string
	Tag     ui.Tag
	Message string
}

// Report is the outcome of Check.
type Report struct {
	Root     string
	Findings []Finding
}

// ManifestSchemaStep names the findings produced by manifest schema
// validation. They are advisory, like the warnings of a run.
const ManifestSchemaStep = "manifest-schema"

// Problems counts findings that "mce init" would resolve or that need
// manual attention. Schema warnings are not counted; see Warnings.
func (r *Report) Problems() int {
	n := 0
	for _, f := range r.Findings {
		if f.Tag != ui.TagOK && f.Step != ManifestSchemaStep {
			n++
		}
	}
	return n
}

// Warnings counts the manifest schema issues found.
func (r *Report) Warnings() int {
	n := 0
	for _, f := range r.Findings {
		if f.Tag != ui.TagOK && f.Step == ManifestSchemaStep {
			n++
		}
	}
	return n
}

// Check inspects the project without modifying it. Every step reports
// whether its target is present and already in its patched state, then the
// manifest is validated against the schema.
func (s *Scaffolder) Check() *Report {
	report := &Report{Root: s.root}
	add := func(f Finding) {
		if f.Tag == "" {
			return
		}
		report.Findings = append(report.Findings, f)
		s.out.Status(f.Tag, "%s", f.Message)
	}

	s.out.Heading("Project check:")
	if info, err := os.Stat(s.root); err != nil || !info.IsDir() {
		add(Finding{Step: "project-dir", Tag: ui.TagMiss, Message: fmt.Sprintf("%s does not exist", s.root)})
		s.out.Hint("Run '%s init' to create", branding.CLIName())
		return report
	}

	for _, step := range Steps() {
		if step.check == nil {
			continue
		}
		f := step.check(s, s.abs(step.Path))
		f.Step, f.Path = step.Name, step.Path
		add(f)
	}

	if fileExists(s.abs(ManifestPath)) {
		warnings := s.validateManifest()
		for _, w := range warnings {
			add(Finding{Step: ManifestSchemaStep, Path: ManifestPath, Tag: ui.TagWarn, Message: w})
		}
		if len(warnings) == 0 {
			add(Finding{Step: ManifestSchemaStep, Path: ManifestPath, Tag: ui.TagOK, Message: "manifest.json matches the Manifest V3 schema"})
		}
	}
	return report
}

func checkDir(s *Scaffolder, path string) Finding {
	info, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		return Finding{Tag: ui.TagMiss, Message: fmt.Sprintf("%s does not exist", s.rel(path))}
	case err != nil:
		return Finding{Tag: ui.TagFail, Message: err.Error()}
	case !info.IsDir():
		return Finding{Tag: ui.TagFail, Message: fmt.Sprintf("%s %v", s.rel(path), ErrNotDirectory)}
	}
	return Finding{Tag: ui.TagOK, Message: fmt.Sprintf("%s exists", s.rel(path))}
}

func checkFile(s *Scaffolder, path string) Finding {
	if !fileExists(path) {
		return Finding{Tag: ui.TagMiss, Message: fmt.Sprintf("%s does not exist", s.rel(path))}
	}
	return Finding{Tag: ui.TagOK, Message: fmt.Sprintf("%s exists", s.rel(path))}
}

func checkDependencies(s *Scaffolder, path string) Finding {
	if !fileExists(path) {
		return Finding{}
	}
	doc, err := document.Load(path)
	if err != nil {
		return Finding{Tag: ui.TagFail, Message: err.Error()}
	}
	missing, err := document.MissingDependencies(doc, s.required)
	if err != nil {
		return Finding{Tag: ui.TagFail, Message: err.Error()}
	}
	if len(missing) > 0 {
		return Finding{Tag: ui.TagMiss, Message: "missing dependencies: " + strings.Join(missing, ", ")}
	}
	return Finding{Tag: ui.TagOK, Message: "dependencies declared: " + strings.Join(s.required, ", ")}
}

func checkViteRoot(s *Scaffolder, path string) Finding {
	src, err := os.ReadFile(path)
	if err != nil {
		return Finding{}
	}
	ok, err := viteconfig.HasProperty(src, "root")
	if err != nil {
		return Finding{Tag: ui.TagFail, Message: fmt.Sprintf("%s: %v", s.rel(path), err)}
	}
	if !ok {
		return Finding{Tag: ui.TagWarn, Message: fmt.Sprintf("%s has no root property", s.rel(path))}
	}
	return Finding{Tag: ui.TagOK, Message: fmt.Sprintf("%s sets root", s.rel(path))}
}

func checkGitignore(s *Scaffolder, path string) Finding {
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Finding{Tag: ui.TagMiss, Message: fmt.Sprintf("%s does not exist", s.rel(path))}
	}
	if err != nil {
		return Finding{Tag: ui.TagFail, Message: err.Error()}
	}
	if missing := missingLines(string(content), GitignoreLines); len(missing) > 0 {
		return Finding{Tag: ui.TagWarn, Message: fmt.Sprintf("%s does not ignore %s", s.rel(path), strings.Join(missing, ", "))}
	}
	return Finding{Tag: ui.TagOK, Message: fmt.Sprintf("%s ignores %s", s.rel(path), strings.Join(GitignoreLines, ", "))}
}
