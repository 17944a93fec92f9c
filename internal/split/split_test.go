package split

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Up-Bizz/ContactVerifier/internal/fetcher"
)

func writeSourceCSV(t *testing.T, rows int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "contacts.csv")
	content := "first_name,decision_maker_source\n"
	for i := 0; i < rows; i++ {
		content += fmt.Sprintf("Person%d,https://example.com/%d\n", i, i)
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFile_EvenSplit(t *testing.T) {
	src := writeSourceCSV(t, 9)
	outDir := t.TempDir()

	written, err := File(src, outDir, 3, false)

	require.NoError(t, err)
	require.Len(t, written, 3)
	assert.Equal(t, filepath.Join(outDir, "01_contacts.csv"), written[0])
	assert.Equal(t, filepath.Join(outDir, "03_contacts.csv"), written[2])

	for _, p := range written {
		header, rows, err := fetcher.ReadCSV(p)
		require.NoError(t, err)
		assert.Equal(t, []string{"first_name", "decision_maker_source"}, header)
		assert.Len(t, rows, 3)
	}
}

func TestFile_RemainderGoesToLastPart(t *testing.T) {
	src := writeSourceCSV(t, 10)
	outDir := t.TempDir()

	written, err := File(src, outDir, 3, false)

	require.NoError(t, err)
	require.Len(t, written, 3)

	var total int
	for i, p := range written {
		_, rows, err := fetcher.ReadCSV(p)
		require.NoError(t, err)
		total += len(rows)
		if i < 2 {
			assert.Len(t, rows, 3)
		} else {
			assert.Len(t, rows, 4)
		}
	}
	assert.Equal(t, 10, total, "no row is lost or duplicated")
}

func TestFile_XLSXToCSV(t *testing.T) {
	srcDir := t.TempDir()
	src := filepath.Join(srcDir, "contacts.xlsx")
	require.NoError(t, fetcher.WriteXLSX(src,
		[]string{"first_name", "decision_maker_source"},
		[][]string{
			{"Jane", "https://example.com/1"},
			{"John", "https://example.com/2"},
		}))
	outDir := t.TempDir()

	written, err := File(src, outDir, 2, true)

	require.NoError(t, err)
	require.Len(t, written, 2)
	assert.Equal(t, ".csv", filepath.Ext(written[0]))

	_, rows, err := fetcher.ReadCSV(written[0])
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestFile_RejectsSinglePart(t *testing.T) {
	_, err := File("contacts.csv", t.TempDir(), 1, false)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 2")
}

func TestFile_UnsupportedExtension(t *testing.T) {
	_, err := File("contacts.txt", t.TempDir(), 2, false)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file format")
}
