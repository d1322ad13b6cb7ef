package cli

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/Brice1994/minimal-chrome-extension/internal/config"
	"github.com/Brice1994/minimal-chrome-extension/internal/document"
	"github.com/Brice1994/minimal-chrome-extension/internal/manifest"
	"github.com/Brice1994/minimal-chrome-extension/internal/pkgmanager"
	"github.com/Brice1994/minimal-chrome-extension/internal/scaffold"
	"github.com/Brice1994/minimal-chrome-extension/internal/ui"
	"github.com/spf13/cobra"
)

// ErrProblemsFound is returned by doctor when the project check fails.
var ErrProblemsFound = errors.New("project check found problems")

var (
	doctorFix          bool
	doctorSkipRuntime  bool
	doctorManifestPath string
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Run init to repair missing or unpatched targets")
	doctorCmd.Flags().BoolVar(&doctorSkipRuntime, "skip-runtime", false, "Skip the node and package manager checks")
	doctorCmd.Flags().StringVar(&doctorManifestPath, "check-manifest", "", "Validate a manifest file at the given path only")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor [dir]",
	Short: "Health check for an extension project",
	Long: `Run diagnostic checks on the project in dir (default: the current
directory) and on the local toolchain. Nothing is modified unless --fix is
given. Manifest schema warnings are reported but do not fail the check.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := ui.NewPrinter(cmd.OutOrStdout())

		if doctorManifestPath != "" {
			return runManifestCheck(out, doctorManifestPath)
		}

		cfg, err := loadProjectConfig(args)
		if err != nil {
			return err
		}
		settings := cfg.Settings()

		if !doctorSkipRuntime {
			runRuntimeCheck(cmd, out, settings)
		}

		s, err := newScaffolder(cmd, cfg)
		if err != nil {
			return err
		}
		report := s.Check()
		runDependencyCheck(out, cfg.Dir())

		if n := report.Warnings(); n > 0 {
			out.Hint("%d manifest schema warning(s) need manual edits", n)
		}
		if report.Problems() == 0 {
			return nil
		}
		if doctorFix {
			out.Status(ui.TagFix, "Running init...")
			return runInit(cmd, s, settings.PackageManager)
		}
		return fmt.Errorf("%w: %d issue(s)", ErrProblemsFound, report.Problems())
	},
}

func runRuntimeCheck(cmd *cobra.Command, out *ui.Printer, settings config.Settings) {
	out.Heading("Runtime check:")

	node, err := pkgmanager.CheckNode(cmd.Context(), settings.NodeConstraint)
	switch {
	case errors.Is(err, exec.ErrNotFound):
		out.Status(ui.TagMiss, "node not found")
	case err != nil:
		out.Status(ui.TagFail, "node: %v", err)
	case !node.Satisfied:
		out.Status(ui.TagWarn, "node %s at %s does not satisfy %s", node.Version, node.Path, node.Constraint)
	default:
		out.Status(ui.TagOK, "node %s found at %s (%s)", node.Version, node.Path, node.Constraint)
	}

	pm, err := pkgmanager.Lookup(settings.PackageManager)
	if err != nil {
		out.Status(ui.TagFail, "%v", err)
		return
	}
	version, err := pm.Version(cmd.Context())
	if err != nil {
		out.Status(ui.TagMiss, "%s not found", pm.Name)
		return
	}
	out.Status(ui.TagOK, "%s %s", pm.Name, version)
}

// runDependencyCheck compares declared ranges of the required packages with
// the versions installed under node_modules.
func runDependencyCheck(out *ui.Printer, dir string) {
	doc, err := document.Load(filepath.Join(dir, scaffold.PackageJSON))
	if err != nil {
		return
	}
	declared, err := document.DeclaredDependencies(doc)
	if err != nil {
		return
	}

	out.Heading("Installed dependencies:")
	for _, name := range scaffold.RequiredDependencies {
		rng, ok := declared[name]
		if !ok {
			continue
		}
		installed, err := installedVersion(dir, name)
		switch {
		case err != nil:
			out.Status(ui.TagMiss, "%s %s is not installed", name, rng)
		case !pkgmanager.RangeAllows(rng, installed):
			out.Status(ui.TagWarn, "%s %s installed, declared %s", name, installed, rng)
		default:
			out.Status(ui.TagOK, "%s %s (%s)", name, installed, rng)
		}
	}
}

func installedVersion(dir, name string) (string, error) {
	doc, err := document.Load(filepath.Join(dir, "node_modules", name, "package.json"))
	if err != nil {
		return "", err
	}
	v := doc.Get("version")
	if !v.Exists() {
		return "", fmt.Errorf("%s has no version", name)
	}
	return v.String(), nil
}

func runManifestCheck(out *ui.Printer, path string) error {
	out.Heading(fmt.Sprintf("Manifest validation: %s", path))

	// Validate against JSON Schema.
	result, err := manifest.ValidateFile(path)
	if err != nil {
		out.Status(ui.TagFail, "%v", err)
		return fmt.Errorf("manifest validation failed: %w", err)
	}

	if result.Valid {
		m, err := manifest.ParseFile(path)
		if err != nil {
			out.Status(ui.TagOK, "Valid manifest")
			return nil
		}
		out.Status(ui.TagOK, "Valid manifest: %s (v%s)", m.Name, m.Version)
		return nil
	}

	// Report validation issues.
	out.Status(ui.TagFail, "%d validation issue(s):", len(result.Issues))
	for _, issue := range result.Issues {
		out.Hint("- %s", issue.String())
	}
	return fmt.Errorf("manifest %s has %d validation issue(s)", path, len(result.Issues))
}
