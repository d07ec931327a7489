// Package repository locates a git repository on disk and owns its
// layered configuration.
package repository

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gitconf/internal/config"
)

// Repository is an opened repository: its git directory, working
// directory, and (once requested) its configuration.
type Repository struct {
	GitDir  string
	WorkDir string

	cfg *config.Configuration
}

// Discover walks up from start (or the current directory if start is
// empty) looking for a .git entry. A .git directory is used directly; a
// .git file is read as a worktree pointer ("gitdir: <path>").
func Discover(start string) (*Repository, error) {
	if start == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("cannot get current directory: %w", err)
		}
		start = cwd
	}
	start, err := filepath.Abs(start)
	if err != nil {
		return nil, fmt.Errorf("resolving start directory: %w", err)
	}

	dir := start
	for {
		dotGit := filepath.Join(dir, ".git")
		info, err := os.Stat(dotGit)
		if err == nil {
			if info.IsDir() {
				return &Repository{GitDir: dotGit, WorkDir: dir}, nil
			}
			gitDir, err := readGitDirPointer(dotGit)
			if err != nil {
				return nil, err
			}
			return &Repository{GitDir: gitDir, WorkDir: dir}, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, fmt.Errorf("no git repository found (searched from %s to %s)", start, dir)
		}
		dir = parent
	}
}

// Open wraps an already known git directory without any discovery walk.
// The working directory is taken to be the git directory's parent, which
// holds for the standard <workdir>/.git layout.
func Open(gitDir string) (*Repository, error) {
	gitDir, err := filepath.Abs(gitDir)
	if err != nil {
		return nil, fmt.Errorf("resolving git directory: %w", err)
	}
	info, err := os.Stat(gitDir)
	if err != nil {
		return nil, fmt.Errorf("opening git directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", gitDir)
	}
	return &Repository{GitDir: gitDir, WorkDir: filepath.Dir(gitDir)}, nil
}

// readGitDirPointer parses a worktree .git file of the form
// "gitdir: <path>", resolving a relative path against the file's
// directory.
func readGitDirPointer(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	line := strings.TrimSpace(string(raw))
	target, ok := strings.CutPrefix(line, "gitdir:")
	if !ok {
		return "", fmt.Errorf("%s is not a gitdir pointer", path)
	}
	target = strings.TrimSpace(target)
	if target == "" {
		return "", fmt.Errorf("%s has an empty gitdir pointer", path)
	}

	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(path), target)
	}
	return filepath.Clean(target), nil
}

// ConfigPath returns the repository-local config file path.
func (r *Repository) ConfigPath() string {
	return filepath.Join(r.GitDir, "config")
}

// Config opens the repository's layered configuration on first use and
// returns the same instance afterwards. The repository owns it; Close
// releases it.
func (r *Repository) Config() (*config.Configuration, error) {
	if r.cfg == nil {
		cfg, err := config.Open(r)
		if err != nil {
			return nil, err
		}
		r.cfg = cfg
	}
	return r.cfg, nil
}

// Close releases the repository's configuration if it was opened. It is
// idempotent.
func (r *Repository) Close() error {
	if r.cfg != nil {
		err := r.cfg.Close()
		r.cfg = nil
		return err
	}
	return nil
}
