package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkgaudit/pkgaudit/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearPkgauditEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PKGAUDIT_DEST", "PKGAUDIT_REPORTER", "PKGAUDIT_STRICT"} {
		old, had := os.LookupEnv(key)
		require.NoError(t, os.Unsetenv(key))
		t.Cleanup(func() {
			if had {
				os.Setenv(key, old)
			}
		})
	}
}

func TestLoadReadsEnvFile(t *testing.T) {
	clearPkgauditEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte(
		"PKGAUDIT_DEST=out.xml\nPKGAUDIT_REPORTER=xml\nPKGAUDIT_STRICT=true\n",
	), 0o644))

	settings, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "out.xml", settings.Dest)
	assert.Equal(t, "xml", settings.ReporterKind)
	assert.True(t, settings.Strict)
}

func TestLoadToleratesMissingEnvFile(t *testing.T) {
	clearPkgauditEnv(t)

	settings, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Empty(t, settings.Dest)
	assert.Empty(t, settings.ReporterKind)
	assert.False(t, settings.Strict)
}
