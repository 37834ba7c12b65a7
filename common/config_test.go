package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "resolver.toml"))
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigParsesResolverTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resolver.toml")
	contents := `
[resolver]
mixin-sharing = true
root-class-name = "Root"
blacklisted-types = ["dynamic", "bool"]
core-library-ids = ["core"]
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.True(t, cfg.MixinSharing)
	require.Equal(t, "Root", cfg.RootClassName)
	require.True(t, cfg.IsBlacklisted("bool"))
	require.False(t, cfg.IsBlacklisted("string"))
	require.True(t, cfg.IsExemptLibrary("core"))
	require.False(t, cfg.IsExemptLibrary("app"))
}

func TestDefaultConfigBlacklist(t *testing.T) {
	cfg := DefaultConfig()
	require.True(t, cfg.IsBlacklisted("int"))
	require.False(t, cfg.IsExemptLibrary("core"))
}
