package cmd

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestGetCmd_Value(t *testing.T) {
	app, out := setupTestApp(t)
	setLocal(t, app, "user.name", "alice")

	cmd := newGetCmd(NewTestProvider(app))
	if err := runCmd(t, cmd, "user.name"); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got := out.String(); got != "alice\n" {
		t.Errorf("output = %q, want %q", got, "alice\n")
	}
}

func TestGetCmd_NotSet(t *testing.T) {
	app, _ := setupTestApp(t)

	cmd := newGetCmd(NewTestProvider(app))
	err := runCmd(t, cmd, "user.name")
	if err == nil || !strings.Contains(err.Error(), "is not set") {
		t.Errorf("get missing = %v, want not-set error", err)
	}
}

func TestGetCmd_Default(t *testing.T) {
	app, out := setupTestApp(t)

	cmd := newGetCmd(NewTestProvider(app))
	if err := runCmd(t, cmd, "user.name", "--default", "nobody"); err != nil {
		t.Fatalf("get with default: %v", err)
	}
	if got := out.String(); got != "nobody\n" {
		t.Errorf("output = %q, want default", got)
	}
}

func TestGetCmd_TypedBool(t *testing.T) {
	app, out := setupTestApp(t)
	setLocal(t, app, "core.bare", "yes")

	cmd := newGetCmd(NewTestProvider(app))
	if err := runCmd(t, cmd, "core.bare", "--type", "bool"); err != nil {
		t.Fatalf("get bool: %v", err)
	}
	if got := out.String(); got != "true\n" {
		t.Errorf("output = %q, want %q", got, "true\n")
	}
}

func TestGetCmd_TypedIntSuffix(t *testing.T) {
	app, out := setupTestApp(t)
	setLocal(t, app, "pack.windowmemory", "2k")

	cmd := newGetCmd(NewTestProvider(app))
	if err := runCmd(t, cmd, "pack.windowmemory", "--type", "int64"); err != nil {
		t.Fatalf("get int64: %v", err)
	}
	if got := out.String(); got != "2048\n" {
		t.Errorf("output = %q, want %q", got, "2048\n")
	}
}

func TestGetCmd_InvalidType(t *testing.T) {
	app, _ := setupTestApp(t)
	setLocal(t, app, "user.name", "alice")

	cmd := newGetCmd(NewTestProvider(app))
	err := runCmd(t, cmd, "user.name", "--type", "float")
	if err == nil || !strings.Contains(err.Error(), "invalid --type") {
		t.Errorf("get float = %v, want invalid-type error", err)
	}
}

func TestGetCmd_JSON(t *testing.T) {
	app, out := setupTestApp(t)
	app.JSON = true
	setLocal(t, app, "user.name", "alice")

	cmd := newGetCmd(NewTestProvider(app))
	if err := runCmd(t, cmd, "user.name"); err != nil {
		t.Fatalf("get --json: %v", err)
	}

	var result map[string]any
	if err := json.Unmarshal(out.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON %q: %v", out.String(), err)
	}
	if result["key"] != "user.name" || result["value"] != "alice" || result["set"] != true {
		t.Errorf("JSON result = %v", result)
	}
}
