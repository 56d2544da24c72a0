// Package importer loads workout history exported as CSV files into the
// database. A SQLite state database remembers which files were already
// imported, keyed by path, size, and content hash.
package importer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/meltforce/cadax/internal/models"
)

// Writer is the slice of persistence the importer needs.
type Writer interface {
	BulkUpsertWorkouts(ctx context.Context, userID int, records []models.WorkoutRecord) (int, error)
}

// Stats tracks import progress.
type Stats struct {
	FilesProcessed int
	FilesSkipped   int
	FilesErrored   int

	RecordsParsed  int
	RecordsSkipped int
	RecordsWritten int
}

// Importer reads .csv files from an export directory and inserts workout
// records into the DB.
type Importer struct {
	db     Writer
	state  *StateDB
	log    *slog.Logger
	userID int
	dryRun bool
	stats  Stats
}

// New creates a new Importer. state may be nil to disable skip tracking.
func New(db Writer, state *StateDB, userID int, log *slog.Logger, dryRun bool) *Importer {
	return &Importer{db: db, state: state, userID: userID, log: log, dryRun: dryRun}
}

// Import processes all .csv files under the given directory. Records from
// all files are merged by date before writing, so a date split across files
// ends up with the union of its muscle groups.
func (imp *Importer) Import(ctx context.Context, dir string) (*Stats, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return &imp.stats, fmt.Errorf("listing %s: %w", dir, err)
	}

	var all []models.WorkoutRecord
	var parsed []string
	for _, f := range files {
		records, ok := imp.readFile(f)
		if !ok {
			continue
		}
		all = append(all, records...)
		parsed = append(parsed, f)
	}

	if len(all) == 0 {
		return &imp.stats, nil
	}

	merged := Merge(all)
	if imp.dryRun {
		imp.stats.RecordsWritten = len(merged)
		return &imp.stats, nil
	}

	written, err := imp.db.BulkUpsertWorkouts(ctx, imp.userID, merged)
	if err != nil {
		return &imp.stats, fmt.Errorf("writing workouts: %w", err)
	}
	imp.stats.RecordsWritten = written

	// Only mark files that parsed cleanly, and only after the write landed.
	// A file that errored must stay unmarked so the next run retries it.
	if imp.state != nil {
		for _, f := range parsed {
			imp.markImported(f)
		}
	}

	return &imp.stats, nil
}

// readFile parses one CSV file, honoring the skip state. Returns false when
// the file was skipped or unreadable.
func (imp *Importer) readFile(path string) ([]models.WorkoutRecord, bool) {
	info, err := os.Stat(path)
	if err != nil {
		imp.log.Warn("stat failed", "file", path, "error", err)
		imp.stats.FilesErrored++
		return nil, false
	}

	var hash string
	if imp.state != nil {
		hash, err = HashFile(path)
		if err != nil {
			imp.log.Warn("hash failed", "file", path, "error", err)
			imp.stats.FilesErrored++
			return nil, false
		}
		done, err := imp.state.IsImported(filepath.Base(path), info.Size(), hash)
		if err != nil {
			imp.log.Warn("state lookup failed", "file", path, "error", err)
		} else if done {
			imp.stats.FilesSkipped++
			return nil, false
		}
	}

	f, err := os.Open(path)
	if err != nil {
		imp.log.Warn("open failed", "file", path, "error", err)
		imp.stats.FilesErrored++
		return nil, false
	}
	defer f.Close()

	records, skipped, err := ParseCSV(f)
	if err != nil {
		imp.log.Warn("parse failed", "file", path, "error", err)
		imp.stats.FilesErrored++
		return nil, false
	}

	if skipped > 0 {
		imp.log.Warn("skipped malformed lines", "file", path, "lines", skipped)
	}
	imp.stats.FilesProcessed++
	imp.stats.RecordsParsed += len(records)
	imp.stats.RecordsSkipped += skipped
	return records, true
}

func (imp *Importer) markImported(path string) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	hash, err := HashFile(path)
	if err != nil {
		return
	}
	if err := imp.state.MarkImported(filepath.Base(path), info.Size(), hash); err != nil {
		imp.log.Warn("state update failed", "file", path, "error", err)
	}
}
