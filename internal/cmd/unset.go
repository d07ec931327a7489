package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// newUnsetCmd creates the "unset" subcommand.
func newUnsetCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unset <key>",
		Short: "Remove a configuration value",
		Long: `Remove a key from the repository-local configuration.

Unsetting a key that is not set is an error, unlike get's defaulting.

Examples:
  gitconf unset user.name
  gitconf unset branch.main.remote`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			key := args[0]
			if err := app.Config.Delete(key); err != nil {
				return fmt.Errorf("unsetting config: %w", err)
			}

			if app.JSON {
				result := map[string]string{
					"key": key,
				}
				return json.NewEncoder(app.Out).Encode(result)
			}

			fmt.Fprintf(app.Out, "Unset %s\n", key)
			return nil
		},
	}

	return cmd
}
