// Package testutil provides shared fixtures for gitconf tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"gitconf/internal/repository"
)

// TempRepo creates a repository layout (workdir with a .git directory)
// under a temp dir and returns the opened Repository. The config file is
// not created; it appears on the first write.
func TempRepo(t *testing.T) *repository.Repository {
	t.Helper()

	workDir := t.TempDir()
	gitDir := filepath.Join(workDir, ".git")
	if err := os.Mkdir(gitDir, 0o755); err != nil {
		t.Fatalf("creating .git dir: %v", err)
	}

	repo, err := repository.Discover(workDir)
	if err != nil {
		t.Fatalf("discovering repo: %v", err)
	}
	t.Cleanup(func() {
		_ = repo.Close()
	})
	return repo
}

// WriteConfig writes a config file with the given content, creating
// parent directories as needed.
func WriteConfig(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating config dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
}

// IsolateEnv points all config discovery at locations under temp dirs so
// tests never see the host's real git configuration. It returns the fake
// home directory.
func IsolateEnv(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("GIT_CONFIG_GLOBAL", "")
	t.Setenv("GIT_CONFIG_SYSTEM", "")
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	return home
}

// GlobalConfig points global discovery at a config file under a temp dir
// and writes content to it. It implies IsolateEnv.
func GlobalConfig(t *testing.T, content string) string {
	t.Helper()

	IsolateEnv(t)
	path := filepath.Join(t.TempDir(), "gitconfig")
	WriteConfig(t, path, content)
	t.Setenv("GIT_CONFIG_GLOBAL", path)
	return path
}

// SystemConfig points system discovery at a config file under a temp dir
// and writes content to it. Call after IsolateEnv or GlobalConfig.
func SystemConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "gitconfig")
	WriteConfig(t, path, content)
	t.Setenv("GIT_CONFIG_NOSYSTEM", "")
	t.Setenv("GIT_CONFIG_SYSTEM", path)
	return path
}
