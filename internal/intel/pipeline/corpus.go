// internal/intel/pipeline/corpus.go
package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"brand-intel/internal/common/logger"
	"brand-intel/internal/intel/normalize"
	"brand-intel/internal/models"
)

// CorpusProvider enumerates the uploaded export files for one pipeline run.
type CorpusProvider interface {
	Enumerate(ctx context.Context) ([]models.SourceFile, error)
}

// DirCorpus reads every recognizable export file from an uploads directory.
// Files are returned in name order so repeated runs over the same bytes
// produce identical reports.
type DirCorpus struct {
	dir    string
	logger logger.Logger
}

func NewDirCorpus(dir string, log logger.Logger) *DirCorpus {
	return &DirCorpus{dir: dir, logger: log}
}

func (c *DirCorpus) Enumerate(ctx context.Context) ([]models.SourceFile, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			// Empty corpus is not an error; the run reports zeros.
			return nil, nil
		}
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if normalize.DetectFormat(entry.Name(), "") == "" {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	files := make([]models.SourceFile, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(c.dir, name))
		if err != nil {
			c.logger.Warn("skipping unreadable upload", map[string]interface{}{
				"file":  name,
				"error": err.Error(),
			})
			continue
		}
		files = append(files, models.SourceFile{
			Name:   name,
			Data:   data,
			Format: normalize.DetectFormat(name, ""),
		})
	}

	return files, nil
}

// StaticCorpus serves a fixed in-memory file set. Used by the quick-look
// worker and in tests.
type StaticCorpus []models.SourceFile

func (c StaticCorpus) Enumerate(_ context.Context) ([]models.SourceFile, error) {
	return c, nil
}
