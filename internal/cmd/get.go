package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"gitconf/internal/config"
	"gitconf/internal/gitfile"
)

// newGetCmd creates the "get" subcommand.
func newGetCmd(provider *AppProvider) *cobra.Command {
	var valueType string
	var defaultVal string

	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Long: `Get the value of a configuration key.

The key is looked up in the local scope first, then global, then system.
A missing key is an error unless --default is given.

Examples:
  gitconf get user.name
  gitconf get core.bare --type bool --default false
  gitconf get branch.main.remote`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			key := args[0]
			hasDefault := cmd.Flags().Changed("default")

			raw, found, err := app.Config.Lookup(key)
			if err != nil {
				return err
			}
			if !found && !hasDefault {
				return fmt.Errorf("%s is not set", key)
			}

			var value any
			switch valueType {
			case "string":
				if value, err = config.Get(app.Config, key, defaultVal); err != nil {
					return err
				}
			case "bool":
				var def bool
				if hasDefault {
					if def, err = gitfile.ParseBool(defaultVal); err != nil {
						return fmt.Errorf("invalid --default: %w", err)
					}
				}
				if value, err = config.Get(app.Config, key, def); err != nil {
					return err
				}
			case "int":
				var def int32
				if hasDefault {
					if def, err = gitfile.ParseInt32(defaultVal); err != nil {
						return fmt.Errorf("invalid --default: %w", err)
					}
				}
				if value, err = config.Get(app.Config, key, def); err != nil {
					return err
				}
			case "int64":
				var def int64
				if hasDefault {
					if def, err = gitfile.ParseInt64(defaultVal); err != nil {
						return fmt.Errorf("invalid --default: %w", err)
					}
				}
				if value, err = config.Get(app.Config, key, def); err != nil {
					return err
				}
			default:
				return fmt.Errorf("invalid --type %q (valid: string, bool, int, int64)", valueType)
			}

			if app.JSON {
				result := map[string]any{
					"key":   key,
					"value": value,
					"set":   found,
				}
				if found {
					result["raw"] = raw
				}
				return json.NewEncoder(app.Out).Encode(result)
			}

			fmt.Fprintf(app.Out, "%v\n", value)
			return nil
		},
	}

	cmd.Flags().StringVar(&valueType, "type", "string", "Value type: string, bool, int, int64")
	cmd.Flags().StringVar(&defaultVal, "default", "", "Value to use if the key is not set")
	return cmd
}
