// Package fs provides file-based storage for page records. A scrape run
// writes into a temporary directory which is renamed into place on Commit,
// so a partially written run never looks like finished output.
package fs

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/mhaseeb/deptscrape"
)

// Ensure Store implements the storage interfaces at compile time.
var (
	_ deptscrape.RecordStore  = (*Store)(nil)
	_ deptscrape.RecordReader = (*Store)(nil)
)

// Store persists records as one JSON file per page plus a run-summary
// object and a flat CSV table.
type Store struct {
	baseDir string
	name    string
}

// NewStore creates a Store. baseDir is the parent directory, name is the
// output directory name. Files are saved to baseDir/name.tmp and moved to
// baseDir/name on Commit.
func NewStore(baseDir, name string) *Store {
	return &Store{baseDir: baseDir, name: name}
}

// Dir returns the final output directory.
func (s *Store) Dir() string {
	return filepath.Join(s.baseDir, s.name)
}

func (s *Store) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

// SaveRecord writes one record as indented JSON, named by its display index
// and sanitized title (e.g. "3_Cardiology.json"). Non-ASCII text is written
// as-is.
func (s *Store) SaveRecord(ctx context.Context, index int, record *deptscrape.PageRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.tempDir(), 0o755); err != nil {
		return err
	}

	data, err := marshalIndented(record)
	if err != nil {
		return err
	}

	name := fmt.Sprintf("%d_%s.json", index, deptscrape.SanitizeFilename(record.Title))
	return os.WriteFile(filepath.Join(s.tempDir(), name), data, 0o644)
}

// SaveSummary writes metadata.json (the run summary) and summary.csv (one
// row per page).
func (s *Store) SaveSummary(ctx context.Context, summary *deptscrape.RunSummary, records []*deptscrape.PageRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.tempDir(), 0o755); err != nil {
		return err
	}

	data, err := marshalIndented(summary)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.tempDir(), "metadata.json"), data, 0o644); err != nil {
		return err
	}

	return s.writeCSV(records)
}

func (s *Store) writeCSV(records []*deptscrape.PageRecord) error {
	f, err := os.Create(filepath.Join(s.tempDir(), "summary.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"index", "url", "title", "has_primary_heading", "page_type", "word_count", "faculty_count", "has_appointment"}
	if err := w.Write(header); err != nil {
		return err
	}
	for i, r := range records {
		row := []string{
			strconv.Itoa(i + 1),
			r.SourceURL,
			r.Title,
			strconv.FormatBool(r.HasPrimaryHeading),
			string(r.PageType),
			strconv.Itoa(r.Body.WordCount),
			strconv.Itoa(r.FacultyLinks.Count),
			strconv.FormatBool(r.Appointment.Present),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// Commit atomically replaces any previous output directory with this run's.
func (s *Store) Commit() error {
	if err := os.RemoveAll(s.Dir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.Dir())
}

// Abort discards pending output.
func (s *Store) Abort() error {
	return os.RemoveAll(s.tempDir())
}

// LoadRecords reads all record files from the final output directory in
// display-index order. metadata.json and files without a numeric index
// prefix are skipped.
func (s *Store) LoadRecords(ctx context.Context) ([]*deptscrape.StoredRecord, error) {
	return LoadRecords(ctx, s.Dir())
}

// LoadRecords reads all record files from dir in display-index order.
func LoadRecords(ctx context.Context, dir string) ([]*deptscrape.StoredRecord, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, deptscrape.Errorf(deptscrape.ENOTFOUND, "record directory %q not found", dir)
		}
		return nil, err
	}

	type indexed struct {
		index  int
		stored *deptscrape.StoredRecord
	}
	var loaded []indexed

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".json" || name == "metadata.json" {
			continue
		}
		index, ok := indexPrefix(name)
		if !ok {
			continue
		}

		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var record deptscrape.PageRecord
		if err := json.Unmarshal(data, &record); err != nil {
			return nil, deptscrape.Errorf(deptscrape.EINVALID, "invalid record file %q: %v", name, err)
		}
		loaded = append(loaded, indexed{index: index, stored: &deptscrape.StoredRecord{Path: path, Record: &record}})
	}

	sort.Slice(loaded, func(i, j int) bool { return loaded[i].index < loaded[j].index })

	records := make([]*deptscrape.StoredRecord, len(loaded))
	for i, l := range loaded {
		records[i] = l.stored
	}
	return records, nil
}

// indexPrefix parses the numeric display index from a record filename like
// "12_Cardiology.json".
func indexPrefix(name string) (int, bool) {
	for i := 0; i < len(name); i++ {
		if name[i] == '_' {
			n, err := strconv.Atoi(name[:i])
			if err != nil {
				return 0, false
			}
			return n, true
		}
		if name[i] < '0' || name[i] > '9' {
			return 0, false
		}
	}
	return 0, false
}

// marshalIndented renders v as two-space-indented JSON without HTML escaping.
func marshalIndented(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
