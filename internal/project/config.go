package project

import (
	"fmt"
	"math"
	"strings"

	"github.com/BurntSushi/toml"

	"pycheck/internal/diag"
)

// Config is the resolved project configuration. Zero values are filled from
// Default before use; the CLI may override individual fields with flags.
type Config struct {
	Check checkConfig `toml:"check"`
	Cache cacheConfig `toml:"cache"`

	// selectSet/ignoreSet кэшируются в finalize, чтобы Enabled не парсил
	// строки на каждый вызов.
	selectSet map[diag.Code]struct{}
	ignoreSet map[diag.Code]struct{}
}

type checkConfig struct {
	// MaxBlankLines is the E303 threshold.
	MaxBlankLines int `toml:"max-blank-lines"`
	// MaxDiagnostics caps the total number of reported diagnostics.
	// Load rejects values outside [1, 65535].
	MaxDiagnostics int `toml:"max-diagnostics"`
	// Jobs is the parallelism of directory checks, 0 means GOMAXPROCS.
	Jobs int `toml:"jobs"`
	// Select restricts checking to the listed codes; empty means all.
	Select []string `toml:"select"`
	// Ignore disables the listed codes. Ignore wins over Select.
	Ignore []string `toml:"ignore"`
}

type cacheConfig struct {
	Enabled bool `toml:"enabled"`
}

// DefaultMaxDiagnostics bounds diagnostic collection when the manifest does
// not say otherwise.
const DefaultMaxDiagnostics = 256

// Default returns the configuration used when no pycheck.toml exists.
func Default() *Config {
	cfg := &Config{
		Check: checkConfig{
			MaxBlankLines:  2,
			MaxDiagnostics: DefaultMaxDiagnostics,
		},
		Cache: cacheConfig{Enabled: true},
	}
	if err := cfg.finalize(); err != nil {
		panic(err) // дефолт не содержит кодов
	}
	return cfg
}

// Load reads and validates a pycheck.toml manifest.
func Load(path string) (*Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if cfg.Check.MaxBlankLines < 0 {
		return nil, fmt.Errorf("%s: [check].max-blank-lines must be non-negative", path)
	}
	if cfg.Check.Jobs < 0 {
		return nil, fmt.Errorf("%s: [check].jobs must be non-negative", path)
	}
	// Bag держит лимит в uint16; отрицательное или переполняющее значение
	// должно умирать здесь, а не в make() на каждом проверяемом файле
	if cfg.Check.MaxDiagnostics < 1 || cfg.Check.MaxDiagnostics > math.MaxUint16 {
		return nil, fmt.Errorf("%s: [check].max-diagnostics must be between 1 and %d", path, math.MaxUint16)
	}
	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromDir walks up from startDir looking for pycheck.toml and loads it;
// falls back to Default when no manifest exists.
func LoadFromDir(startDir string) (*Config, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

func (c *Config) finalize() error {
	var err error
	if c.selectSet, err = parseCodeList(c.Check.Select); err != nil {
		return fmt.Errorf("[check].select: %w", err)
	}
	if c.ignoreSet, err = parseCodeList(c.Check.Ignore); err != nil {
		return fmt.Errorf("[check].ignore: %w", err)
	}
	return nil
}

func parseCodeList(ids []string) (map[diag.Code]struct{}, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	set := make(map[diag.Code]struct{}, len(ids))
	for _, id := range ids {
		code, ok := diag.ParseCheckID(strings.TrimSpace(id))
		if !ok {
			return nil, fmt.Errorf("unknown check %q", id)
		}
		set[code] = struct{}{}
	}
	return set, nil
}

// Enabled reports whether diagnostics with the given code should be emitted.
func (c *Config) Enabled(code diag.Code) bool {
	if c.selectSet != nil {
		if _, ok := c.selectSet[code]; !ok {
			return false
		}
	}
	if _, ok := c.ignoreSet[code]; ok {
		return false
	}
	return true
}
