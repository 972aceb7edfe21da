package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"

	"cforge/internal/cli"
	"cforge/internal/manifest"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var listWhatValues = []string{"configs", "variants", "targets", "scripts", "all"}

func newListCmd() *cobra.Command {
	var plain bool

	c := &cobra.Command{
		Use:   "list [what] [project]",
		Short: "List a project's configurations, variants, targets, or scripts",
		Long:  "what is one of: configs, variants, targets, scripts, all (default: all)",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			what := argAt(args, 0)
			if what == "" {
				what = "all"
			}
			if !validListWhat(what) {
				return fmt.Errorf("unknown list target %q (want one of %v)", what, listWhatValues)
			}
			projectArg := argAt(args, 1)
			if !plain {
				plain = !isTerminal(cmd.OutOrStdout())
			}

			return forEachProject(projectArg, func(t projectTarget) error {
				fmt.Fprintf(cmd.OutOrStdout(), "%s:\n", t.Name)
				if what == "configs" || what == "all" {
					listConfigs(cmd, t.Manifest, plain)
				}
				if what == "variants" || what == "all" {
					listVariants(cmd, t.Manifest, plain)
				}
				if what == "targets" || what == "all" {
					listTargets(cmd, t.Manifest, plain)
				}
				if what == "scripts" || what == "all" {
					listScripts(cmd, t.Manifest, plain)
				}
				return nil
			})
		},
	}

	c.Flags().BoolVar(&plain, "plain", false, "render kubectl-style unboxed tables (default when stdout isn't a terminal)")
	return c
}

func validListWhat(what string) bool {
	for _, v := range listWhatValues {
		if what == v {
			return true
		}
	}
	return false
}

// renderRows dispatches to the boxed go-pretty renderer or the kubectl-style
// plain one, per the `--plain` flag (or a non-terminal stdout).
func renderRows(w io.Writer, plain bool, headers []string, rows [][]string) {
	if plain {
		cli.RenderPlainTable(w, headers, rows)
		return
	}
	cli.RenderTable(w, headers, rows)
}

// isTerminal reports whether w is an interactive terminal; piping into
// another command (or a file) falls back to the plain renderer by default.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func listConfigs(cmd *cobra.Command, m *manifest.ProjectManifest, plain bool) {
	names := sortedKeys(m.Build.Configs)
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		p := m.Build.Configs[name]
		def := ""
		if name == m.Build.DefaultConfig {
			def = "*"
		}
		rows = append(rows, []string{name, def, fmt.Sprintf("%d defines, %d flags", len(p.Defines), len(p.Flags))})
	}
	renderRows(cmd.OutOrStdout(), plain, []string{"config", "default", "summary"}, rows)
}

func listVariants(cmd *cobra.Command, m *manifest.ProjectManifest, plain bool) {
	if m.Variants == nil {
		return
	}
	names := sortedKeys(m.Variants.Variants)
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		v := m.Variants.Variants[name]
		def := ""
		if name == m.Variants.Default {
			def = "*"
		}
		rows = append(rows, []string{name, def, v.Description})
	}
	renderRows(cmd.OutOrStdout(), plain, []string{"variant", "default", "description"}, rows)
}

func listTargets(cmd *cobra.Command, m *manifest.ProjectManifest, plain bool) {
	names := sortedKeys(m.Targets)
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		spec := m.Targets[name]
		rows = append(rows, []string{name, fmt.Sprintf("%d", len(spec.Sources)), fmt.Sprintf("%d", len(spec.Links))})
	}
	renderRows(cmd.OutOrStdout(), plain, []string{"target", "sources", "links"}, rows)
}

func listScripts(cmd *cobra.Command, m *manifest.ProjectManifest, plain bool) {
	if m.Scripts == nil {
		return
	}
	names := sortedKeys(m.Scripts.Scripts)
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		rows = append(rows, []string{name, m.Scripts.Scripts[name]})
	}
	renderRows(cmd.OutOrStdout(), plain, []string{"script", "command"}, rows)
}

// sortedKeys returns the keys of any string-keyed map in sorted order, so
// list output is deterministic run to run.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
