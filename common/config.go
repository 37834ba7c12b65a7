package common

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml"
)

// Config is the resolver's explicit configuration object. Spec §9's Design
// Notes calls out that the source's global mutable state (the mixin-sharing
// flag, the synthetic-id counter) "maps to explicit configuration passed to
// the resolver [and] a per-compilation id allocator owned by the driver" —
// this struct and IDAllocator are exactly that. It is loaded from TOML the
// same way the teacher loads `chai-mod.toml` in `src/mods/load.go`.
type Config struct {
	// MixinSharing selects interning strategy (b) from spec §4.4 when true,
	// strategy (a) (non-sharing) when false.
	MixinSharing bool `toml:"mixin-sharing"`

	// RootClassName is the conventional name of the designated root class
	// ("Object" unless a host renames it).
	RootClassName string `toml:"root-class-name"`

	// BlacklistedTypes names the platform types ordinary library code may
	// not extend/implement/mix in (spec §4.3's blacklist policy): the
	// dynamic type, bool, the numeric tower, string, and the null type.
	BlacklistedTypes []string `toml:"blacklisted-types"`

	// CoreLibraryIDs and BackendLibraryIDs name the libraries exempt from
	// the blacklist policy because they define those very types.
	CoreLibraryIDs    []string `toml:"core-library-ids"`
	BackendLibraryIDs []string `toml:"backend-library-ids"`
}

// tomlConfigFile is the on-disk shape: a top-level `[resolver]` table,
// matching the teacher's `tomlModuleFile{ Module *tomlModule }` wrapping
// convention in `src/mods/load.go`.
type tomlConfigFile struct {
	Resolver *Config `toml:"resolver"`
}

// DefaultConfig returns the configuration used when no TOML file is
// supplied: non-sharing mixin interning, "Object" as root, and the
// conventional blacklist with no exempt libraries.
func DefaultConfig() *Config {
	return &Config{
		MixinSharing:  false,
		RootClassName: "Object",
		BlacklistedTypes: []string{
			"dynamic", "bool", "int", "float", "string", "null",
		},
	}
}

// LoadConfig reads a resolver configuration from a TOML file at path. A
// missing file is not an error: DefaultConfig is returned instead, since a
// host compiler is not required to ship a config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	} else if err != nil {
		return nil, fmt.Errorf("reading resolver config: %w", err)
	}

	var file tomlConfigFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing resolver config: %w", err)
	}

	if file.Resolver == nil {
		return DefaultConfig(), nil
	}

	cfg := file.Resolver
	if cfg.RootClassName == "" {
		cfg.RootClassName = "Object"
	}

	return cfg, nil
}

// IsExemptLibrary reports whether libraryID is a core or backend-internal
// library exempt from the blacklist policy (spec §4.3).
func (c *Config) IsExemptLibrary(libraryID string) bool {
	for _, id := range c.CoreLibraryIDs {
		if id == libraryID {
			return true
		}
	}
	for _, id := range c.BackendLibraryIDs {
		if id == libraryID {
			return true
		}
	}
	return false
}

// IsBlacklisted reports whether typeName names a blacklisted platform type.
func (c *Config) IsBlacklisted(typeName string) bool {
	for _, name := range c.BlacklistedTypes {
		if name == typeName {
			return true
		}
	}
	return false
}
