package fetcher

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXLSX_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.xlsx")
	header := []string{"first_name", "last_name", "decision_maker_source"}
	rows := [][]string{
		{"Jane", "Doe", "https://example.com"},
		{"John", "Smith", "https://example.org"},
	}

	require.NoError(t, WriteXLSX(path, header, rows))

	gotHeader, gotRows, err := ReadXLSX(path)
	require.NoError(t, err)
	assert.Equal(t, header, gotHeader)
	assert.Equal(t, rows, gotRows)
}

func TestReadXLSX_MissingFile(t *testing.T) {
	_, _, err := ReadXLSX(filepath.Join(t.TempDir(), "absent.xlsx"))
	assert.Error(t, err)
}

func TestWriteXLSX_HeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")

	require.NoError(t, WriteXLSX(path, []string{"a", "b"}, nil))

	header, rows, err := ReadXLSX(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, header)
	assert.Empty(t, rows)
}
