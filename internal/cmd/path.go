package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// newPathCmd creates the "path" subcommand.
func newPathCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "path",
		Short: "Show resolved configuration file paths",
		Long: `Show the configuration file each scope resolves to.

The local path always resolves (the file may not exist until the first
write). The global and system paths are shown only if a file was found
when the repository was opened.

Examples:
  gitconf path
  gitconf path --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			type scopePath struct {
				Path   string `json:"path,omitempty"`
				Exists bool   `json:"exists"`
			}
			paths := map[string]scopePath{
				"local": {
					Path:   app.Config.LocalPath(),
					Exists: statExists(app.Config.LocalPath()),
				},
				"global": {
					Path:   app.Config.GlobalPath(),
					Exists: app.Config.HasGlobalConfig(),
				},
				"system": {
					Path:   app.Config.SystemPath(),
					Exists: app.Config.HasSystemConfig(),
				},
			}

			if app.JSON {
				return json.NewEncoder(app.Out).Encode(paths)
			}

			for _, scope := range []string{"local", "global", "system"} {
				p := paths[scope]
				switch {
				case p.Path == "":
					fmt.Fprintf(app.Out, "%s: %s\n", scope, app.WarnColor("(not found)"))
				case !p.Exists:
					fmt.Fprintf(app.Out, "%s: %s %s\n", scope, p.Path, app.WarnColor("(missing)"))
				default:
					fmt.Fprintf(app.Out, "%s: %s\n", scope, p.Path)
				}
			}
			return nil
		},
	}

	return cmd
}

func statExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
