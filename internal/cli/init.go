package cli

import (
	"fmt"

	"github.com/Brice1994/minimal-chrome-extension/internal/branding"
	"github.com/Brice1994/minimal-chrome-extension/internal/config"
	"github.com/Brice1994/minimal-chrome-extension/internal/pkgmanager"
	"github.com/Brice1994/minimal-chrome-extension/internal/scaffold"
	"github.com/Brice1994/minimal-chrome-extension/internal/ui"
	"github.com/spf13/cobra"
)

var (
	initPackageManager string
	initName           string
	initRoot           string
)

func init() {
	initCmd.Flags().StringVar(&initPackageManager, "package-manager", "", "Package manager to run: npm, pnpm or yarn (default from settings)")
	initCmd.Flags().StringVar(&initName, "name", "", "Extension name (default: directory name)")
	initCmd.Flags().StringVar(&initRoot, "root", "", "Vite root inserted when the config has none (default \".\")")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Create or update an extension project",
	Long: `Create the directory structure, configuration and starter sources of a
Manifest V3 extension in dir (default: the current directory).

Existing files are never overwritten. package.json, tsconfig.json,
vite.config.ts and public/manifest.json receive narrow patches, and missing
dependencies are installed with the configured package manager. Running the
command again changes nothing.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadProjectConfig(args)
		if err != nil {
			return err
		}
		cfg.Override(config.KeyPackageManager, initPackageManager)
		cfg.Override(config.KeyName, initName)
		cfg.Override(config.KeyRoot, initRoot)

		s, err := newScaffolder(cmd, cfg)
		if err != nil {
			return err
		}
		return runInit(cmd, s, cfg.Get(config.KeyPackageManager))
	},
}

func runInit(cmd *cobra.Command, s *scaffold.Scaffolder, pm string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Scaffolding extension in %s\n", s.Root())

	result, err := s.Run(cmd.Context())
	if err != nil {
		return err
	}

	if !result.Changed() {
		fmt.Fprintln(out, "\nProject already up to date.")
		return nil
	}
	fmt.Fprintln(out, "\nProject ready. Next steps:")
	fmt.Fprintf(out, "  %s run build   # bundle into dist/\n", pm)
	fmt.Fprintln(out, "  Load dist/ as an unpacked extension in chrome://extensions")
	if len(result.Warnings) > 0 {
		fmt.Fprintf(out, "\n%d manifest warning(s); run '%s doctor' for details.\n", len(result.Warnings), branding.CLIName())
	}
	return nil
}

// loadProjectConfig loads settings for the optional [dir] argument.
func loadProjectConfig(args []string) (*config.Config, error) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	return config.Load(dir)
}

// newScaffolder wires the resolved settings into a Scaffolder. Package
// manager output goes to stderr so stdout carries only status lines.
func newScaffolder(cmd *cobra.Command, cfg *config.Config) (*scaffold.Scaffolder, error) {
	settings := cfg.Settings()

	pm, err := pkgmanager.Lookup(settings.PackageManager)
	if err != nil {
		return nil, err
	}
	pm.Stdout = cmd.ErrOrStderr()
	pm.Stderr = cmd.ErrOrStderr()

	logger := commandLogger(settings.LogLevel, cmd.ErrOrStderr())
	logger.Debug("settings resolved",
		"dir", cfg.Dir(),
		"package_manager", settings.PackageManager,
		"name", settings.Name,
		"root", settings.Root,
	)

	data := scaffold.NewScaffoldData(settings.Name, settings.Root)
	return scaffold.New(cfg.Dir(), data, scaffold.Options{
		Installer: pm,
		Logger:    logger,
		Printer:   ui.NewPrinter(cmd.OutOrStdout()),
	}), nil
}
