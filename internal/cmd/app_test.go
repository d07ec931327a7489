package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"

	"gitconf/internal/config"
	"gitconf/testutil"
)

// setupTestApp builds an App backed by a throwaway repository with no
// global or system config, capturing output in the returned buffer.
func setupTestApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()
	testutil.IsolateEnv(t)
	return appForRepo(t)
}

// appForRepo builds an App for a fresh temp repository using whatever
// discovery environment is already in place.
func appForRepo(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()
	repo := testutil.TempRepo(t)
	cfg, err := repo.Config()
	if err != nil {
		t.Fatalf("opening config: %v", err)
	}

	out := &bytes.Buffer{}
	app := &App{
		Repo:   repo,
		Config: cfg,
		Out:    out,
		Err:    &bytes.Buffer{},
	}
	return app, out
}

// runCmd executes a command with the given args, silencing cobra's own
// output streams.
func runCmd(t *testing.T, cmd *cobra.Command, args ...string) error {
	t.Helper()
	cmd.SetArgs(args)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	return cmd.Execute()
}

// setLocal writes a key directly through the config facade.
func setLocal(t *testing.T, app *App, key, value string) {
	t.Helper()
	if err := config.Set(app.Config, key, value, config.LevelLocal); err != nil {
		t.Fatalf("seeding %s: %v", key, err)
	}
}
