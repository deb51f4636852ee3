package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SCHEDULE_CONFIG_DIR", dir)
	t.Setenv("SCHEDULE_LOG_FILE", "")
	t.Setenv("SCHEDULE_LOG_LEVEL", "")
	t.Setenv("SCHEDULE_LOG_FORMAT", "")
	t.Setenv("SCHEDULE_ADDR", "")

	cfg, err := Load(filepath.Join(dir, "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.Dir)
	assert.Equal(t, DefaultLogFile, cfg.LogFile)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, DefaultAddr, cfg.Addr)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("SCHEDULE_ADDR=127.0.0.1:9999\nSCHEDULE_LOG_LEVEL=debug\n"), 0o644))

	t.Setenv("SCHEDULE_CONFIG_DIR", dir)
	// godotenv never overrides variables that are already set
	t.Setenv("SCHEDULE_LOG_LEVEL", "warn")
	t.Setenv("SCHEDULE_ADDR", "")
	require.NoError(t, os.Unsetenv("SCHEDULE_ADDR"))

	cfg, err := Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9999", cfg.Addr)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestDefaultDir(t *testing.T) {
	dir, err := DefaultDir()
	require.NoError(t, err)

	if filepath.Separator == '\\' {
		assert.Equal(t, "ScheduleManager", filepath.Base(dir))
	} else {
		assert.Equal(t, filepath.Join(".config", "schedulemanager"), filepath.Join(filepath.Base(filepath.Dir(dir)), filepath.Base(dir)))
	}
}

func TestStoreRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "config")
	store := NewStore(dir, nil)

	assert.Equal(t, "", store.LoadLastPDFPath(), "no config yet")

	pdfPath := filepath.Join(t.TempDir(), "schedule.pdf")
	require.NoError(t, os.WriteFile(pdfPath, []byte("%PDF"), 0o644))
	require.NoError(t, store.SaveLastPDFPath(pdfPath))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	var saved map[string]string
	require.NoError(t, json.Unmarshal(data, &saved))
	assert.Equal(t, map[string]string{"last_pdf_path": pdfPath, "version": "1.0.0"}, saved)
	assert.Contains(t, string(data), "\n  \"version\"")

	assert.Equal(t, pdfPath, store.LoadLastPDFPath())

	require.NoError(t, os.Remove(pdfPath))
	assert.Equal(t, "", store.LoadLastPDFPath(), "stale paths are ignored")
}

func TestStoreCorruptConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0o644))

	assert.Equal(t, "", NewStore(dir, nil).LoadLastPDFPath())
}

func TestFindIcon(t *testing.T) {
	exeDir := t.TempDir()
	assert.Equal(t, "", FindIcon(exeDir))

	icon := filepath.Join(exeDir, "resources", "calendar_icon.ico")
	require.NoError(t, os.MkdirAll(filepath.Dir(icon), 0o755))
	require.NoError(t, os.WriteFile(icon, []byte{0, 0, 1, 0}, 0o644))

	assert.Equal(t, icon, FindIcon(exeDir))
	assert.Len(t, IconCandidates(""), 2)
}
