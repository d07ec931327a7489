// Package config implements the layered configuration store for a
// repository. It resolves the three cascading scopes (system-wide,
// user-global, repository-local), exposes typed access to dotted
// "section.name" keys, and manages the lifecycle of the underlying
// file-backed stores.
//
// The local store is always present. The global and system stores exist
// only if their config files were discoverable on the host; writes to an
// absent scope fail rather than falling back. Reads go through the local
// store, which consults the global and system files when a key is missing
// locally.
package config

import (
	"errors"
	"fmt"

	"gitconf/internal/gitfile"
	"gitconf/internal/logging"
)

// Repository supplies the on-disk location of the repository-local config
// file. The configuration holds it only to reopen stores on Save.
type Repository interface {
	ConfigPath() string
}

// Scalar is the closed set of value types a configuration key can hold.
type Scalar interface {
	~int32 | ~int64 | ~bool | ~string
}

// Configuration is a facade over up to three gitfile stores, one per
// scope. Instances are not safe for concurrent use; callers must
// serialise access, since Save and Close invalidate the open stores.
type Configuration struct {
	repo       Repository
	local      *gitfile.Store
	global     *gitfile.Store
	system     *gitfile.Store
	globalPath string
	systemPath string
}

// Open resolves the global and system config paths once, then opens the
// local store (with the resolved paths as read fallbacks) and whichever
// of the global and system stores have a file. A missing global or system
// file is not an error; any other failure aborts construction.
func Open(repo Repository) (*Configuration, error) {
	globalPath, err := globalConfigPath()
	if err != nil {
		logger := logging.Logger()
		logger.Warn().Err(err).Msg("global config discovery failed")
		return nil, fmt.Errorf("discovering global config: %w", err)
	}
	systemPath, err := systemConfigPath()
	if err != nil {
		logger := logging.Logger()
		logger.Warn().Err(err).Msg("system config discovery failed")
		return nil, fmt.Errorf("discovering system config: %w", err)
	}

	c := &Configuration{
		repo:       repo,
		globalPath: globalPath,
		systemPath: systemPath,
	}
	if err := c.openStores(); err != nil {
		c.closeStores()
		return nil, err
	}

	logger := logging.Logger()
	logger.Debug().
		Str("local", repo.ConfigPath()).
		Str("global", globalPath).
		Str("system", systemPath).
		Msg("configuration opened")
	return c, nil
}

// HasGlobalConfig reports whether a per-user config file was found at
// construction time.
func (c *Configuration) HasGlobalConfig() bool {
	return c.globalPath != ""
}

// HasSystemConfig reports whether a host-wide config file was found at
// construction time.
func (c *Configuration) HasSystemConfig() bool {
	return c.systemPath != ""
}

// LocalPath returns the repository-local config file path.
func (c *Configuration) LocalPath() string {
	return c.repo.ConfigPath()
}

// GlobalPath returns the resolved per-user config file path, or "" if
// none was found.
func (c *Configuration) GlobalPath() string {
	return c.globalPath
}

// SystemPath returns the resolved host-wide config file path, or "" if
// none was found.
func (c *Configuration) SystemPath() string {
	return c.systemPath
}

// Get reads key from the local store (falling through to global and
// system values when the key is absent locally) and returns def if the
// key is not set anywhere. Any failure other than a missing key is
// returned as-is.
func Get[T Scalar](c *Configuration, key string, def T) (T, error) {
	if c.local == nil {
		return def, ErrClosed
	}

	out := def
	var err error
	switch p := any(&out).(type) {
	case *int32:
		*p, err = c.local.Int32(key)
	case *int64:
		*p, err = c.local.Int64(key)
	case *bool:
		*p, err = c.local.Bool(key)
	case *string:
		*p, err = c.local.String(key)
	default:
		return def, fmt.Errorf("%w: %T", ErrUnsupportedType, out)
	}

	if err != nil {
		if errors.Is(err, gitfile.ErrKeyNotFound) {
			return def, nil
		}
		return def, err
	}
	return out, nil
}

// Set writes key = value to the store selected by level. Writing to a
// scope whose store is not open fails with ErrScopeNotAvailable; it never
// falls back to another scope.
func Set[T Scalar](c *Configuration, key string, value T, level Level) error {
	store, err := c.storeFor(level)
	if err != nil {
		return err
	}

	switch v := any(value).(type) {
	case int32:
		return store.SetInt32(key, v)
	case int64:
		return store.SetInt64(key, v)
	case bool:
		return store.SetBool(key, v)
	case string:
		return store.SetString(key, v)
	}
	return fmt.Errorf("%w: %T", ErrUnsupportedType, value)
}

// Lookup reports the raw string value for key from the local store (with
// cascading fallthrough) and whether the key was found. Unlike Get it
// lets callers distinguish a missing key from an empty value.
func (c *Configuration) Lookup(key string) (string, bool, error) {
	if c.local == nil {
		return "", false, ErrClosed
	}
	v, err := c.local.String(key)
	if errors.Is(err, gitfile.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

// Delete removes key from the local store only. Deleting a key that does
// not exist is an error (ErrKeyNotFound), unlike Get's defaulted reads.
func (c *Configuration) Delete(key string) error {
	if c.local == nil {
		return ErrClosed
	}
	return c.local.Delete(key)
}

// All returns the key-value pairs defined in the store for one scope,
// without cascading.
func (c *Configuration) All(level Level) (map[string]string, error) {
	store, err := c.storeFor(level)
	if err != nil {
		return nil, err
	}
	return store.All(), nil
}

// Merged overlays the system, global and local entries, with local values
// winning over global and global over system.
func (c *Configuration) Merged() (map[string]string, error) {
	if c.local == nil {
		return nil, ErrClosed
	}
	out := make(map[string]string)
	for _, s := range []*gitfile.Store{c.system, c.global, c.local} {
		if s == nil {
			continue
		}
		for k, v := range s.All() {
			out[k] = v
		}
	}
	return out, nil
}

// Save closes all open stores and reopens them from the paths resolved at
// construction; discovery is not repeated. A value written before Save is
// visible to a fresh open afterwards. If reopening fails the instance is
// left closed and must not be used further.
func (c *Configuration) Save() error {
	if c.local == nil {
		return ErrClosed
	}
	c.closeStores()
	if err := c.openStores(); err != nil {
		c.closeStores()
		return fmt.Errorf("reopening configuration: %w", err)
	}
	logger := logging.Logger()
	logger.Debug().Str("local", c.repo.ConfigPath()).Msg("configuration saved and reloaded")
	return nil
}

// Close releases all open stores. It is idempotent and safe to call
// multiple times; it does not imply Save.
func (c *Configuration) Close() error {
	c.closeStores()
	return nil
}

// openStores opens the local store plus whichever of global and system
// have a resolved path. Paths must already be resolved.
func (c *Configuration) openStores() error {
	var fallbacks []string
	if c.globalPath != "" {
		fallbacks = append(fallbacks, c.globalPath)
	}
	if c.systemPath != "" {
		fallbacks = append(fallbacks, c.systemPath)
	}

	local, err := gitfile.Open(c.repo.ConfigPath(), gitfile.WithFallback(fallbacks...))
	if err != nil {
		return fmt.Errorf("opening local config: %w", err)
	}
	c.local = local

	if c.globalPath != "" {
		if c.global, err = gitfile.Open(c.globalPath); err != nil {
			return fmt.Errorf("opening global config: %w", err)
		}
	}
	if c.systemPath != "" {
		if c.system, err = gitfile.Open(c.systemPath); err != nil {
			return fmt.Errorf("opening system config: %w", err)
		}
	}
	return nil
}

// closeStores releases whichever stores are present. It is total over the
// three slots and never assumes a particular subset is open.
func (c *Configuration) closeStores() {
	for _, s := range []**gitfile.Store{&c.local, &c.global, &c.system} {
		if *s != nil {
			_ = (*s).Close()
			*s = nil
		}
	}
}

// storeFor maps a level to its open store. An unrecognised level is an
// error naming the offending value; a recognised level whose store was
// never opened is ErrScopeNotAvailable.
func (c *Configuration) storeFor(level Level) (*gitfile.Store, error) {
	switch level {
	case LevelLocal:
		if c.local == nil {
			return nil, ErrClosed
		}
		return c.local, nil
	case LevelGlobal:
		if c.global == nil {
			return nil, fmt.Errorf("global scope: %w", ErrScopeNotAvailable)
		}
		return c.global, nil
	case LevelSystem:
		if c.system == nil {
			return nil, fmt.Errorf("system scope: %w", ErrScopeNotAvailable)
		}
		return c.system, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrInvalidLevel, level)
}
