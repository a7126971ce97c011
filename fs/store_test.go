package fs_test

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/mhaseeb/deptscrape"
	"github.com/mhaseeb/deptscrape/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecord(title string) *deptscrape.PageRecord {
	return &deptscrape.PageRecord{
		SourceURL: "https://hospital.aku.edu/" + title,
		Title:     title,
		PageType:  deptscrape.PageTypeStandard,
	}
}

func TestStore_SaveAndCommit(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := fs.NewStore(dir, "output")
	ctx := context.Background()

	require.NoError(t, store.SaveRecord(ctx, 1, testRecord("Cardiology")))
	require.NoError(t, store.SaveRecord(ctx, 2, testRecord("Neurosurgery")))

	// Before Commit the final directory must not exist.
	_, err := os.Stat(store.Dir())
	assert.True(t, os.IsNotExist(err))

	summary := &deptscrape.RunSummary{RunID: "run-1", TotalPages: 2, PagesScraped: 2}
	require.NoError(t, store.SaveSummary(ctx, summary, []*deptscrape.PageRecord{
		testRecord("Cardiology"), testRecord("Neurosurgery"),
	}))
	require.NoError(t, store.Commit())

	assert.FileExists(t, filepath.Join(store.Dir(), "1_Cardiology.json"))
	assert.FileExists(t, filepath.Join(store.Dir(), "2_Neurosurgery.json"))
	assert.FileExists(t, filepath.Join(store.Dir(), "metadata.json"))
	assert.FileExists(t, filepath.Join(store.Dir(), "summary.csv"))

	// The temp directory is gone after Commit.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "output", entries[0].Name())
}

func TestStore_CommitReplacesPreviousRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ctx := context.Background()

	first := fs.NewStore(dir, "output")
	require.NoError(t, first.SaveRecord(ctx, 1, testRecord("Old")))
	require.NoError(t, first.Commit())

	second := fs.NewStore(dir, "output")
	require.NoError(t, second.SaveRecord(ctx, 1, testRecord("New")))
	require.NoError(t, second.Commit())

	assert.FileExists(t, filepath.Join(second.Dir(), "1_New.json"))
	assert.NoFileExists(t, filepath.Join(second.Dir(), "1_Old.json"))
}

func TestStore_Abort(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := fs.NewStore(dir, "output")

	require.NoError(t, store.SaveRecord(context.Background(), 1, testRecord("Cardiology")))
	require.NoError(t, store.Abort())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStore_RecordFilenames(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := fs.NewStore(dir, "output")
	ctx := context.Background()

	require.NoError(t, store.SaveRecord(ctx, 3, testRecord(`Ear, Nose & Throat (ENT)`)))
	require.NoError(t, store.Commit())

	assert.FileExists(t, filepath.Join(store.Dir(), "3_Ear,_Nose_&_Throat_(ENT).json"))
}

func TestStore_SummaryCSV(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := fs.NewStore(dir, "output")
	ctx := context.Background()

	record := testRecord("Cardiology")
	record.HasPrimaryHeading = true
	record.Body.WordCount = 120
	record.FacultyLinks.Count = 2
	record.Appointment.Present = true

	require.NoError(t, store.SaveSummary(ctx, &deptscrape.RunSummary{RunID: "r"}, []*deptscrape.PageRecord{record}))
	require.NoError(t, store.Commit())

	f, err := os.Open(filepath.Join(store.Dir(), "summary.csv"))
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"index", "url", "title", "has_primary_heading", "page_type", "word_count", "faculty_count", "has_appointment"}, rows[0])
	assert.Equal(t, []string{"1", "https://hospital.aku.edu/Cardiology", "Cardiology", "true", "standard", "120", "2", "true"}, rows[1])
}

func TestLoadRecords(t *testing.T) {
	t.Parallel()

	t.Run("round-trips saved records in index order", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		store := fs.NewStore(dir, "output")
		ctx := context.Background()

		// Save out of order; 10 before 2 exercises numeric, not lexical, sorting.
		require.NoError(t, store.SaveRecord(ctx, 10, testRecord("Urology")))
		require.NoError(t, store.SaveRecord(ctx, 2, testRecord("Neurosurgery")))
		require.NoError(t, store.SaveRecord(ctx, 1, testRecord("Cardiology")))
		require.NoError(t, store.SaveSummary(ctx, &deptscrape.RunSummary{RunID: "r"}, nil))
		require.NoError(t, store.Commit())

		records, err := store.LoadRecords(ctx)
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, "Cardiology", records[0].Record.Title)
		assert.Equal(t, "Neurosurgery", records[1].Record.Title)
		assert.Equal(t, "Urology", records[2].Record.Title)
		assert.Equal(t, filepath.Join(store.Dir(), "1_Cardiology.json"), records[0].Path)
	})

	t.Run("skips metadata and unindexed files", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "metadata.json"), []byte(`{}`), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.json"), []byte(`{}`), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "summary.csv"), []byte("a,b\n"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "1_Cardiology.json"),
			[]byte(`{"source_url":"u","title":"Cardiology"}`), 0o644))

		records, err := fs.LoadRecords(context.Background(), dir)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "Cardiology", records[0].Record.Title)
	})

	t.Run("missing directory returns not found", func(t *testing.T) {
		t.Parallel()
		_, err := fs.LoadRecords(context.Background(), filepath.Join(t.TempDir(), "nope"))
		require.Error(t, err)
		assert.Equal(t, deptscrape.ENOTFOUND, deptscrape.ErrorCode(err))
	})

	t.Run("corrupt record file returns invalid", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "1_Bad.json"), []byte(`{not json`), 0o644))

		_, err := fs.LoadRecords(context.Background(), dir)
		require.Error(t, err)
		assert.Equal(t, deptscrape.EINVALID, deptscrape.ErrorCode(err))
	})
}
