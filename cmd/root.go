package cmd

import (
	"fmt"
	"os"

	"cforge/internal/cerrors"
	"cforge/pkg/logging"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the cforge application.
var rootCmd = &cobra.Command{
	Use:   "cforge",
	Short: "Declarative build orchestration for C and C++ projects",
	Long: `cforge drives an external native build system (CMake) from a single
declarative cforge.toml manifest: it resolves host toolchains, acquires
dependencies across several backends, emits native build input, and runs
the configure/build/test/install pipeline, plus multi-project workspaces
with topologically ordered builds.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := logging.ParseLevel(verbosity)
		if os.Getenv("CFORGE_VERBOSE") == "1" {
			level = logging.LevelDebug
		}
		logging.Init(level, os.Stderr)
		return nil
	},
}

// SetVersion sets the version for the root command. Called from main at
// build time, typically via -ldflags "-X main.version=...".
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the entry point called by main.main(). It runs the root
// command and maps any returned error onto the process exit code
// (spec.md §6.1: 0 on success, 1 on any failure).
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "cforge version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cerrors.Render(err))
		os.Exit(cerrors.ExitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&verbosity, "verbosity", "normal", "log verbosity: quiet, normal, verbose")

	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newBuildCmd())
	rootCmd.AddCommand(newCleanCmd())
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newTestCmd())
	rootCmd.AddCommand(newInstallCmd())
	rootCmd.AddCommand(newDepsCmd())
	rootCmd.AddCommand(newScriptCmd())
	rootCmd.AddCommand(newStartupCmd())
	rootCmd.AddCommand(newIDECmd())
	rootCmd.AddCommand(newPackageCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newVersionCmd())
}
