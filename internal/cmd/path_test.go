package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"gitconf/testutil"
)

func TestPathCmd_Text(t *testing.T) {
	app, out := setupTestApp(t)

	cmd := newPathCmd(NewTestProvider(app))
	if err := runCmd(t, cmd); err != nil {
		t.Fatalf("path: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "local: "+app.Config.LocalPath()) {
		t.Errorf("missing local path:\n%s", got)
	}
	// No write has happened yet, so the local file does not exist.
	if !strings.Contains(got, "(missing)") {
		t.Errorf("local path not flagged as missing:\n%s", got)
	}
	if !strings.Contains(got, "global: (not found)") {
		t.Errorf("absent global scope not reported:\n%s", got)
	}
	if !strings.Contains(got, "system: (not found)") {
		t.Errorf("absent system scope not reported:\n%s", got)
	}
}

func TestPathCmd_GlobalResolved(t *testing.T) {
	path := testutil.GlobalConfig(t, "[user]\n\tname = alice\n")
	app, out := appForRepo(t)

	cmd := newPathCmd(NewTestProvider(app))
	if err := runCmd(t, cmd); err != nil {
		t.Fatalf("path: %v", err)
	}
	if !strings.Contains(out.String(), "global: "+path) {
		t.Errorf("resolved global path not shown:\n%s", out.String())
	}
}

func TestPathCmd_JSON(t *testing.T) {
	app, out := setupTestApp(t)
	app.JSON = true
	setLocal(t, app, "user.name", "alice")

	cmd := newPathCmd(NewTestProvider(app))
	if err := runCmd(t, cmd); err != nil {
		t.Fatalf("path --json: %v", err)
	}

	var paths map[string]struct {
		Path   string `json:"path"`
		Exists bool   `json:"exists"`
	}
	if err := json.Unmarshal(out.Bytes(), &paths); err != nil {
		t.Fatalf("invalid JSON %q: %v", out.String(), err)
	}
	if p := paths["local"]; p.Path != app.Config.LocalPath() || !p.Exists {
		t.Errorf("local = %+v, want existing local path", p)
	}
	if p := paths["global"]; p.Path != "" || p.Exists {
		t.Errorf("global = %+v, want absent", p)
	}
}
