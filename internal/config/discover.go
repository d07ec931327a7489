package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gitconf/internal/gitfile"
	"gitconf/internal/logging"
)

// systemConfigFile is the host-wide config path on Unix-like systems.
const systemConfigFile = "/etc/gitconfig"

// globalConfigPath resolves the per-user config file. The search order is
// GIT_CONFIG_GLOBAL, $XDG_CONFIG_HOME/git/config (or ~/.config/git/config),
// then ~/.gitconfig; the first candidate that exists wins. An empty path
// with a nil error means no global config file is present, which is not a
// failure. A non-nil error means the lookup itself could not run.
func globalConfigPath() (string, error) {
	var candidates []string
	if p := os.Getenv("GIT_CONFIG_GLOBAL"); p != "" {
		candidates = append(candidates, p)
	} else {
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			candidates = append(candidates, filepath.Join(xdg, "git", "config"))
			if home, err := os.UserHomeDir(); err == nil {
				candidates = append(candidates, filepath.Join(home, ".gitconfig"))
			}
		} else {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("resolving home directory: %w", err)
			}
			candidates = append(candidates,
				filepath.Join(home, ".config", "git", "config"),
				filepath.Join(home, ".gitconfig"))
		}
	}

	for _, p := range candidates {
		if fileExists(p) {
			return p, nil
		}
	}
	return "", nil
}

// systemConfigPath resolves the host-wide config file. GIT_CONFIG_NOSYSTEM
// disables it entirely; GIT_CONFIG_SYSTEM overrides the default location.
func systemConfigPath() (string, error) {
	if raw := os.Getenv("GIT_CONFIG_NOSYSTEM"); raw != "" {
		skip, err := gitfile.ParseBool(raw)
		if err != nil {
			// Any non-empty unparsable value still means "set".
			logger := logging.Logger()
			logger.Debug().Str("value", raw).Msg("unrecognised GIT_CONFIG_NOSYSTEM, treating as set")
			skip = true
		}
		if skip {
			return "", nil
		}
	}

	if p := os.Getenv("GIT_CONFIG_SYSTEM"); p != "" {
		if fileExists(p) {
			return p, nil
		}
		return "", nil
	}

	if fileExists(systemConfigFile) {
		return systemConfigFile, nil
	}
	return "", nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
