package cmd

import (
	"io"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"gitconf/internal/logging"
	"gitconf/internal/repository"
)

// AppProvider lazily initializes the App on first use.
type AppProvider struct {
	once sync.Once
	app  *App
	err  error

	// Config captured from flags before Execute()
	RepoPath   string
	JSONOutput bool
	Verbose    bool
	Out        io.Writer
	Err        io.Writer
}

// Get returns the App, initializing it on first call.
func (p *AppProvider) Get() (*App, error) {
	p.once.Do(func() {
		if p.app == nil {
			p.app, p.err = p.init()
		}
	})
	return p.app, p.err
}

// NewTestProvider creates a provider pre-initialized with the given App.
// Used for testing commands with a mock/test App.
func NewTestProvider(app *App) *AppProvider {
	return &AppProvider{
		app: app,
		Out: app.Out,
		Err: app.Err,
	}
}

func (p *AppProvider) init() (*App, error) {
	level := ""
	if p.Verbose {
		level = "debug"
	}
	logging.Configure(logging.Config{Level: level})

	repo, err := repository.Discover(p.RepoPath)
	if err != nil {
		return nil, err
	}
	cfg, err := repo.Config()
	if err != nil {
		return nil, err
	}

	out := p.Out
	if out == nil {
		out = os.Stdout
	}
	errOut := p.Err
	if errOut == nil {
		errOut = os.Stderr
	}

	return &App{
		Repo:   repo,
		Config: cfg,
		Out:    out,
		Err:    errOut,
		JSON:   p.JSONOutput,
	}, nil
}

// Execute runs the CLI.
func Execute() error {
	provider := &AppProvider{
		Out: os.Stdout,
		Err: os.Stderr,
	}

	rootCmd := newRootCmd(provider)
	return rootCmd.Execute()
}

// newRootCmd creates the root command with all subcommands.
func newRootCmd(provider *AppProvider) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gitconf",
		Short: "Read and write layered git repository configuration",
		Long: `Gitconf reads and writes git configuration across its three scopes:
the repository-local .git/config, the per-user global file (~/.gitconfig or
$XDG_CONFIG_HOME/git/config), and the host-wide /etc/gitconfig.

Reads cascade from local through global to system; writes target exactly
one scope and fail if that scope has no config file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags - these populate the provider config
	rootCmd.PersistentFlags().BoolVar(&provider.JSONOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&provider.RepoPath, "path", "", "Directory to search for the repository (default: cwd)")
	rootCmd.PersistentFlags().BoolVar(&provider.Verbose, "verbose", false, "Enable debug logging")

	// Register all commands
	rootCmd.AddCommand(newGetCmd(provider))
	rootCmd.AddCommand(newSetCmd(provider))
	rootCmd.AddCommand(newUnsetCmd(provider))
	rootCmd.AddCommand(newListCmd(provider))
	rootCmd.AddCommand(newPathCmd(provider))
	rootCmd.AddCommand(newVersionCmd(provider))

	return rootCmd
}
