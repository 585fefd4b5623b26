package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "keys.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadCatalogs(t *testing.T) {
	path := writeCatalog(t, `
daily:
  "01/01": DIA-0101
  "15/03": DIA-1503
annual:
  - ANUAL-AAAA
  - ANUAL-BBBB
lifetime:
  - VITALICIA-XXXX
`)

	catalogs, err := LoadCatalogs(path)
	require.NoError(t, err)

	key, ok := catalogs.DailyKey("15/03")
	require.True(t, ok)
	assert.Equal(t, "DIA-1503", key)

	_, ok = catalogs.DailyKey("16/03")
	assert.False(t, ok)

	assert.True(t, catalogs.ContainsAnnual("ANUAL-AAAA"))
	assert.False(t, catalogs.ContainsAnnual("ANUAL-ZZZZ"))
	assert.True(t, catalogs.ContainsLifetime("VITALICIA-XXXX"))
	assert.False(t, catalogs.ContainsLifetime("ANUAL-AAAA"))
}

func TestLoadCatalogsMissingFile(t *testing.T) {
	_, err := LoadCatalogs(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNewKeyCatalogsValidation(t *testing.T) {
	tests := []struct {
		name     string
		daily    map[string]string
		annual   []string
		lifetime []string
		wantErr  string
	}{
		{name: "bad date format", daily: map[string]string{"2026-01-01": "K"}, wantErr: "DD/MM"},
		{name: "month out of range", daily: map[string]string{"01/13": "K"}, wantErr: "DD/MM"},
		{name: "empty daily key", daily: map[string]string{"01/01": ""}, wantErr: "empty daily key"},
		{name: "empty annual key", annual: []string{""}, wantErr: "annual"},
		{name: "empty lifetime key", lifetime: []string{""}, wantErr: "lifetime"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewKeyCatalogs(tt.daily, tt.annual, tt.lifetime)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewKeyCatalogsEmptyTablesAllowed(t *testing.T) {
	catalogs, err := NewKeyCatalogs(nil, nil, nil)
	require.NoError(t, err)

	_, ok := catalogs.DailyKey("01/01")
	assert.False(t, ok)
	assert.False(t, catalogs.ContainsAnnual("X"))
}
