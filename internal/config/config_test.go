package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := `{
		"logLevel": "debug",
		"convert": { "swapCoordinates": true },
		"catalog": { "enabled": true, "db": { "host": "10.0.0.1" } }
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigName), []byte(cfg), 0644))

	err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", viper.GetString("logLevel"))
	assert.True(t, viper.GetBool("convert.swapCoordinates"))
	assert.True(t, viper.GetBool("catalog.enabled"))
	assert.Equal(t, "10.0.0.1", viper.GetString("catalog.db.host"))
	// Untouched keys keep their defaults.
	assert.Equal(t, "5432", viper.GetString("catalog.db.port"))
}

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigName), []byte(`{}`), 0644))

	err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "info", viper.GetString("logLevel"))
	assert.Equal(t, "./mrklogs", viper.GetString("logsDir"))
	assert.Equal(t, false, viper.GetBool("convert.swapCoordinates"))
	assert.Equal(t, ".", viper.GetString("output.dir"))
	assert.Equal(t, false, viper.GetBool("output.compress"))
	assert.Equal(t, false, viper.GetBool("catalog.enabled"))
	assert.Equal(t, "./mrkconvert.db", viper.GetString("catalog.sqlitePath"))
	assert.Equal(t, "", viper.GetString("catalog.db.host"))
	assert.Equal(t, "postgres", viper.GetString("catalog.db.username"))
	assert.Equal(t, "mrkconvert", viper.GetString("catalog.db.database"))
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Cleanup(viper.Reset)

	err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "info", viper.GetString("logLevel"))
}

func TestLoad_MalformedFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigName), []byte(`{not json`), 0644))

	err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestAccessors(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("testKey", "testValue")
	viper.Set("testInt", 42)
	viper.Set("testBool", true)

	assert.Equal(t, "testValue", GetString("testKey"))
	assert.Equal(t, 42, GetInt("testInt"))
	assert.Equal(t, true, GetBool("testBool"))
}
