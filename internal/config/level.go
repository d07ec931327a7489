package config

import "fmt"

// Level selects which of the three cascading configuration stores an
// operation targets.
type Level int

const (
	// LevelLocal is the repository's own config file (.git/config).
	LevelLocal Level = iota
	// LevelGlobal is the per-user config file (~/.gitconfig or XDG).
	LevelGlobal
	// LevelSystem is the host-wide config file (/etc/gitconfig).
	LevelSystem
)

// String returns the level name, or "level(n)" for unrecognised values.
func (l Level) String() string {
	switch l {
	case LevelLocal:
		return "local"
	case LevelGlobal:
		return "global"
	case LevelSystem:
		return "system"
	}
	return fmt.Sprintf("level(%d)", int(l))
}
