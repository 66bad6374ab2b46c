package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type scraperConfig struct {
	BaseUrl        string `json:"base_url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
	Debug          bool   `json:"debug"`
}

func writeConfig(t *testing.T, path, contents string) {
	err := os.WriteFile(path, []byte(contents), 0600)
	if err != nil {
		t.Fatal(err)
	}
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scraper.json5")
	writeConfig(t, path, `{
		// json5 comments are fine
		base_url: "https://fc2ppvdb.com",
		timeout_seconds: 10,
	}`)

	config, err := ReadConfig[scraperConfig](path)
	require.NoError(t, err)
	require.Equal(t, scraperConfig{
		BaseUrl:        "https://fc2ppvdb.com",
		TimeoutSeconds: 10,
	}, config)
}

func TestReadConfigLocalOverride(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, filepath.Join(dir, "scraper.json5"), `{
		base_url: "https://fc2ppvdb.com",
		timeout_seconds: 10,
	}`)
	writeConfig(t, filepath.Join(dir, "scraper.local.json5"), `{
		base_url: "https://staging.fc2ppvdb.com",
		debug: true,
	}`)

	config, err := ReadConfig[scraperConfig](filepath.Join(dir, "scraper.json5"))
	require.NoError(t, err)
	require.Equal(t, scraperConfig{
		BaseUrl:        "https://staging.fc2ppvdb.com",
		TimeoutSeconds: 10,
		Debug:          true,
	}, config)
}

func TestReadConfigOnlyLocal(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, filepath.Join(dir, "scraper.local.json5"), `{debug: true}`)

	config, err := ReadConfig[scraperConfig](filepath.Join(dir, "scraper.json5"))
	require.NoError(t, err)
	require.True(t, config.Debug)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[scraperConfig](filepath.Join(t.TempDir(), "scraper.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
