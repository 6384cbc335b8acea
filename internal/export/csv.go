package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/user/embed-rewriter/internal/entity"
)

// filePrefix plus a timestamp names the export file.
const filePrefix = "youtube-embed-rewrites-"

var header = []string{"Site ID", "Post ID", "Permalink", "Original URL", "Replaced URL"}

// WriteCSV writes the run's rewrite log to a timestamped CSV file in dir and
// returns the written path. An empty log still produces a header-only file.
func WriteCSV(dir string, rewrites []entity.Rewrite, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create uploads directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s%s.csv", filePrefix, now.Format("2006-01-02-150405")))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("failed to write header: %w", err)
	}
	for _, rw := range rewrites {
		row := []string{
			strconv.FormatInt(rw.SiteID, 10),
			strconv.FormatInt(rw.PostID, 10),
			rw.Permalink,
			rw.OriginalURL,
			rw.ReplacedURL,
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("failed to write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush export file: %w", err)
	}

	return path, nil
}
