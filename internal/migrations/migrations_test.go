package migrations

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	cases := []struct {
		name    string
		version int
		ok      bool
	}{
		{"V1__init.sql", 1, true},
		{"V12__add_photos.sql", 12, true},
		{"init.sql", 0, false},
		{"Vx__bad.sql", 0, false},
	}
	for _, tc := range cases {
		version, ok := parseVersion(tc.name)
		assert.Equal(t, tc.ok, ok, tc.name)
		assert.Equal(t, tc.version, version, tc.name)
	}
}

func TestListMigrationsOrdersByVersion(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"V10__later.sql", "V2__second.sql", "V1__init.sql", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1"), 0o644))
	}

	migs, err := listMigrations(dir)
	require.NoError(t, err)
	require.Len(t, migs, 3)
	assert.Equal(t, "V1__init.sql", migs[0].Name)
	assert.Equal(t, "V2__second.sql", migs[1].Name)
	assert.Equal(t, "V10__later.sql", migs[2].Name)
}
