package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"gitconf/internal/config"
	"gitconf/internal/gitfile"
)

// newSetCmd creates the "set" subcommand.
func newSetCmd(provider *AppProvider) *cobra.Command {
	var valueType string
	var global, system bool

	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set a configuration key to a value in exactly one scope.

Writes go to the local scope unless --global or --system is given.
Writing to a scope that has no configuration file is an error; the write
never falls back to another scope.

Examples:
  gitconf set user.name alice
  gitconf set core.bare true --type bool
  gitconf set user.email alice@example.com --global`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			key, value := args[0], args[1]

			if global && system {
				return fmt.Errorf("cannot combine --global and --system")
			}
			level := config.LevelLocal
			if global {
				level = config.LevelGlobal
			}
			if system {
				level = config.LevelSystem
			}

			switch valueType {
			case "string":
				err = config.Set(app.Config, key, value, level)
			case "bool":
				var v bool
				if v, err = gitfile.ParseBool(value); err == nil {
					err = config.Set(app.Config, key, v, level)
				}
			case "int":
				var v int32
				if v, err = gitfile.ParseInt32(value); err == nil {
					err = config.Set(app.Config, key, v, level)
				}
			case "int64":
				var v int64
				if v, err = gitfile.ParseInt64(value); err == nil {
					err = config.Set(app.Config, key, v, level)
				}
			default:
				return fmt.Errorf("invalid --type %q (valid: string, bool, int, int64)", valueType)
			}
			if err != nil {
				return fmt.Errorf("setting %s: %w", key, err)
			}

			if app.JSON {
				result := map[string]string{
					"key":   key,
					"value": value,
					"scope": level.String(),
				}
				return json.NewEncoder(app.Out).Encode(result)
			}

			fmt.Fprintf(app.Out, "Set %s = %s\n", key, value)
			return nil
		},
	}

	cmd.Flags().StringVar(&valueType, "type", "string", "Value type: string, bool, int, int64")
	cmd.Flags().BoolVar(&global, "global", false, "Write to the per-user global config")
	cmd.Flags().BoolVar(&system, "system", false, "Write to the host-wide system config")
	return cmd
}
