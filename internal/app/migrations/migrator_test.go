package migrations

import (
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList_SortsAndSkipsNonSQL(t *testing.T) {
	fsys := fstest.MapFS{
		"002_boards.sql":  {Data: []byte("SELECT 1;")},
		"001_init.sql":    {Data: []byte("SELECT 1;")},
		"README.md":       {Data: []byte("docs")},
		"archive/003.sql": {Data: []byte("SELECT 1;")},
	}

	got, err := List(fsys)
	require.NoError(t, err)
	assert.Equal(t, []Migration{
		{Version: "001", Name: "001_init.sql"},
		{Version: "002", Name: "002_boards.sql"},
	}, got)
}

func TestList_RejectsDuplicateVersions(t *testing.T) {
	fsys := fstest.MapFS{
		"001_init.sql":  {Data: []byte("SELECT 1;")},
		"001_other.sql": {Data: []byte("SELECT 1;")},
	}

	_, err := List(fsys)
	assert.ErrorContains(t, err, "duplicate migration version 001")
}

func TestBundledMigrations(t *testing.T) {
	got, err := List(Files())
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, "001", got[0].Version)

	for _, m := range got {
		data, err := fs.ReadFile(Files(), m.Name)
		require.NoError(t, err)
		assert.NotEmpty(t, data, m.Name)
	}
}
