package cmd

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"gitconf/internal/config"
)

// newListCmd creates the "list" subcommand.
func newListCmd(provider *AppProvider) *cobra.Command {
	var local, global, system bool
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List configuration values",
		Long: `List configuration key-value pairs.

By default the merged view is shown: local values win over global, global
over system. A single scope can be selected with --local, --global or
--system; selecting an absent scope is an error.

Examples:
  gitconf list
  gitconf list --global
  gitconf list --format yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			var entries map[string]string
			switch {
			case local:
				entries, err = app.Config.All(config.LevelLocal)
			case global:
				entries, err = app.Config.All(config.LevelGlobal)
			case system:
				entries, err = app.Config.All(config.LevelSystem)
			default:
				entries, err = app.Config.Merged()
			}
			if err != nil {
				return err
			}

			switch {
			case app.JSON || format == "json":
				return json.NewEncoder(app.Out).Encode(entries)
			case format == "yaml":
				data, err := yaml.Marshal(entries)
				if err != nil {
					return fmt.Errorf("encoding config: %w", err)
				}
				_, err = app.Out.Write(data)
				return err
			case format != "":
				return fmt.Errorf("invalid --format %q (valid: json, yaml)", format)
			}

			if len(entries) == 0 {
				fmt.Fprintln(app.Out, "No configuration set")
				return nil
			}

			for _, k := range sortedKeys(entries) {
				fmt.Fprintf(app.Out, "%s = %s\n", k, entries[k])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "List only the repository-local scope")
	cmd.Flags().BoolVar(&global, "global", false, "List only the per-user global scope")
	cmd.Flags().BoolVar(&system, "system", false, "List only the host-wide system scope")
	cmd.Flags().StringVar(&format, "format", "", "Output format: json or yaml")
	return cmd
}

// sortedKeys returns the sorted keys of a map.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
