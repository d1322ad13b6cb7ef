package scaffold

import (
	"context"
	"fmt"
	"strings"

	"github.com/Brice1994/minimal-chrome-extension/internal/document"
	"github.com/Brice1994/minimal-chrome-extension/internal/ui"
	"github.com/Brice1994/minimal-chrome-extension/internal/viteconfig"
)

// Project-relative paths of the patched targets.
const (
	PackageJSON    = "package.json"
	TSConfigPath   = "tsconfig.json"
	ViteConfigPath = "vite.config.ts"
	ManifestPath   = "public/manifest.json"
	GitignorePath  = ".gitignore"
)

// PopupPage is the page the toolbar action opens once the popup is wired in.
const PopupPage = "popup.html"

// GitignoreLines must each appear as a line of .gitignore.
var GitignoreLines = []string{"node_modules", "dist"}

type applyFunc func(ctx context.Context, s *Scaffolder, path string) (Outcome, string, error)

type checkFunc func(s *Scaffolder, path string) Finding

// Step is one entry of the scaffold checklist. Path is slash-separated and
// relative to the project root; the empty path is the root itself.
type Step struct {
	Name  string
	Path  string
	apply applyFunc
	check checkFunc
}

// Steps returns the checklist in execution order.
func Steps() []Step {
	return []Step{
		dirStep("project-dir", ""),
		{Name: "package-init", Path: PackageJSON, apply: initPackage, check: checkFile},
		{Name: "dependencies", Path: PackageJSON, apply: installDependencies, check: checkDependencies},
		documentStep("package-scripts", PackageJSON, "scripts.dev, scripts.build, scripts.preview",
			document.EnsureObjectAt("scripts"),
			document.SetStringAt("scripts.dev", "vite"),
			document.SetStringAt("scripts.build", "tsc && vite build"),
			document.SetStringAt("scripts.preview", "vite preview"),
		),
		dirStep("src-dir", "src"),
		dirStep("components-dir", "src/components"),
		dirStep("public-dir", "public"),
		templateStep("tsconfig", TSConfigPath, "tsconfig.json"),
		documentStep("tsconfig-jsx", TSConfigPath, "compilerOptions.jsx",
			document.EnsureObjectAt("compilerOptions"),
			document.SetStringAt("compilerOptions.jsx", "react-jsx"),
		),
		templateStep("vite-config", ViteConfigPath, "vite.config.ts"),
		{Name: "vite-root", Path: ViteConfigPath, apply: patchViteRoot, check: checkViteRoot},
		templateStep("manifest", ManifestPath, "manifest.json"),
		templateStep("index-html", "index.html", "index.html"),
		templateStep("main-tsx", "src/main.tsx", "main.tsx"),
		templateStep("app-tsx", "src/App.tsx", "App.tsx"),
		{Name: "icon", Path: "public/icon.png", apply: ensureIcon, check: checkFile},
		templateStep("popup-html", PopupPage, "popup.html"),
		templateStep("popup-tsx", "src/popup.tsx", "popup.tsx"),
		templateStep("popup-component", "src/components/Popup.tsx", "popup-component.tsx"),
		documentStep("manifest-popup", ManifestPath, "action.default_popup",
			document.EnsureObjectAt("action"),
			document.SetStringAt("action.default_popup", PopupPage),
		),
		{Name: "gitignore", Path: GitignorePath, apply: ensureGitignore, check: checkGitignore},
	}
}

func dirStep(name, path string) Step {
	return Step{
		Name: name,
		Path: path,
		apply: func(_ context.Context, _ *Scaffolder, p string) (Outcome, string, error) {
			o, err := ensureDir(p)
			return o, "", err
		},
		check: checkDir,
	}
}

func templateStep(name, path, tmpl string) Step {
	return Step{
		Name: name,
		Path: path,
		apply: func(_ context.Context, s *Scaffolder, p string) (Outcome, string, error) {
			if fileExists(p) {
				return Skipped, "", nil
			}
			content, err := render(tmpl, s.data)
			if err != nil {
				return "", "", err
			}
			o, err := ensureFile(p, content)
			return o, "", err
		},
		check: checkFile,
	}
}

// documentStep loads a JSON document, applies transforms and saves it only
// when one of them reported a change.
func documentStep(name, path, detail string, transforms ...document.Transform) Step {
	return Step{
		Name: name,
		Path: path,
		apply: func(_ context.Context, _ *Scaffolder, p string) (Outcome, string, error) {
			doc, err := document.Load(p)
			if err != nil {
				return "", "", err
			}
			patched, changed, err := document.Apply(doc, transforms...)
			if err != nil {
				return "", "", err
			}
			if !changed {
				return Unchanged, detail, nil
			}
			if err := document.Save(p, patched); err != nil {
				return "", "", err
			}
			return Patched, detail, nil
		},
		check: func(_ *Scaffolder, p string) Finding {
			if !fileExists(p) {
				return Finding{}
			}
			doc, err := document.Load(p)
			if err != nil {
				return Finding{Tag: ui.TagFail, Message: err.Error()}
			}
			_, changed, err := document.Apply(doc, transforms...)
			if err != nil {
				return Finding{Tag: ui.TagFail, Message: err.Error()}
			}
			if changed {
				return Finding{Tag: ui.TagWarn, Message: fmt.Sprintf("%s needs %s", path, detail)}
			}
			return Finding{Tag: ui.TagOK, Message: fmt.Sprintf("%s has %s", path, detail)}
		},
	}
}

func initPackage(ctx context.Context, s *Scaffolder, path string) (Outcome, string, error) {
	if fileExists(path) {
		return Skipped, "", nil
	}
	if s.installer == nil {
		return "", "", ErrNoInstaller
	}
	s.log.Info("initializing package", "dir", s.root)
	if err := s.installer.Init(ctx, s.root); err != nil {
		return "", "", err
	}
	return Created, "", nil
}

func installDependencies(ctx context.Context, s *Scaffolder, path string) (Outcome, string, error) {
	doc, err := document.Load(path)
	if err != nil {
		return "", "", err
	}
	missing, err := document.MissingDependencies(doc, s.required)
	if err != nil {
		return "", "", err
	}
	if len(missing) == 0 {
		return Unchanged, "", nil
	}
	if s.installer == nil {
		return "", "", ErrNoInstaller
	}
	s.log.Info("installing dependencies", "packages", missing)
	if err := s.installer.Install(ctx, s.root, missing); err != nil {
		return "", "", err
	}
	return Installed, strings.Join(missing, ", "), nil
}

func patchViteRoot(_ context.Context, s *Scaffolder, path string) (Outcome, string, error) {
	changed, err := viteconfig.PatchFile(path, "root", s.data.Root)
	if err != nil {
		return "", "", err
	}
	if !changed {
		return Unchanged, "", nil
	}
	return Patched, fmt.Sprintf("root: %q", s.data.Root), nil
}

func ensureIcon(_ context.Context, _ *Scaffolder, path string) (Outcome, string, error) {
	if fileExists(path) {
		return Skipped, "", nil
	}
	data, err := icon()
	if err != nil {
		return "", "", err
	}
	o, err := ensureFile(path, data)
	return o, "", err
}

func ensureGitignore(_ context.Context, _ *Scaffolder, path string) (Outcome, string, error) {
	o, added, err := ensureLines(path, GitignoreLines)
	return o, strings.Join(added, ", "), err
}
