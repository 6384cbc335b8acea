package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/embed-rewriter/internal/entity"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 8, 26, 10, 30, 0, 0, time.UTC)

	rewrites := []entity.Rewrite{
		{SiteID: 1, PostID: 42, Permalink: "https://example.com/a/", OriginalURL: "https://youtu.be/x", ReplacedURL: "https://youtube.com/embed/x"},
		{SiteID: 2, PostID: 7, Permalink: "https://two.example.com/b/", OriginalURL: "https://youtu.be/y", ReplacedURL: "https://youtube.com/embed/y"},
	}

	path, err := WriteCSV(dir, rewrites, now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "youtube-embed-rewrites-2026-08-26-103000.csv"), path)

	records := readCSV(t, path)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Site ID", "Post ID", "Permalink", "Original URL", "Replaced URL"}, records[0])
	assert.Equal(t, []string{"1", "42", "https://example.com/a/", "https://youtu.be/x", "https://youtube.com/embed/x"}, records[1])
	assert.Equal(t, []string{"2", "7", "https://two.example.com/b/", "https://youtu.be/y", "https://youtube.com/embed/y"}, records[2])
}

func TestWriteCSVEmptyLogProducesHeaderOnlyFile(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteCSV(dir, nil, time.Now())
	require.NoError(t, err)

	records := readCSV(t, path)
	require.Len(t, records, 1)
	assert.Equal(t, []string{"Site ID", "Post ID", "Permalink", "Original URL", "Replaced URL"}, records[0])
}

func TestWriteCSVCreatesUploadsDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads", "nested")

	path, err := WriteCSV(dir, nil, time.Now())
	require.NoError(t, err)
	assert.FileExists(t, path)
}
