package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testRecording(player string, score int, startedAt time.Time) snake.Recording {
	return snake.Recording{
		Player:   player,
		Rows:     20,
		Columns:  30,
		Interval: 150 * time.Millisecond,
		Seed:     4242,
		Inputs: []snake.Input{
			{Tick: 0, Dir: snake.DirDown},
			{Tick: 3, Dir: snake.DirLeft},
			{Tick: 9, Dir: snake.DirUp},
		},
		Ticks:     27,
		Score:     score,
		Reason:    snake.EndWall,
		StartedAt: startedAt,
		EndedAt:   startedAt.Add(4 * time.Second),
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsRecordings(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveRecording(testRecording("alice", 10, time.Now())); err != nil {
		t.Fatalf("SaveRecording() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("Second Open() failed: %v", err)
	}
	defer store.Close()

	n, err := store.Count()
	if err != nil {
		t.Fatalf("Count() failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected 1 recording after reopening, got %d", n)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	started := time.UnixMilli(1_700_000_000_000)
	want := testRecording("alice", 30, started)

	id, err := store.SaveRecording(want)
	if err != nil {
		t.Fatalf("SaveRecording() failed: %v", err)
	}

	got, err := store.Recording(id)
	if err != nil {
		t.Fatalf("Recording() failed: %v", err)
	}

	if got.ID != id {
		t.Errorf("ID = %d, expected %d", got.ID, id)
	}
	if got.Player != want.Player || got.Rows != want.Rows || got.Columns != want.Columns {
		t.Errorf("Header mismatch: %+v", got)
	}
	if got.Interval != want.Interval || got.Seed != want.Seed {
		t.Errorf("Interval/seed = %v/%d, expected %v/%d", got.Interval, got.Seed, want.Interval, want.Seed)
	}
	if got.Ticks != want.Ticks || got.Score != want.Score || got.Reason != want.Reason {
		t.Errorf("Outcome = %d/%d/%v, expected %d/%d/%v",
			got.Ticks, got.Score, got.Reason, want.Ticks, want.Score, want.Reason)
	}
	if !got.StartedAt.Equal(want.StartedAt) || !got.EndedAt.Equal(want.EndedAt) {
		t.Errorf("Times = %v..%v, expected %v..%v", got.StartedAt, got.EndedAt, want.StartedAt, want.EndedAt)
	}
	if len(got.Inputs) != len(want.Inputs) {
		t.Fatalf("Expected %d inputs, got %d", len(want.Inputs), len(got.Inputs))
	}
	for i := range want.Inputs {
		if got.Inputs[i] != want.Inputs[i] {
			t.Errorf("Input %d = %+v, expected %+v", i, got.Inputs[i], want.Inputs[i])
		}
	}
}

func TestStoreRecordingNotFound(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.Recording(99); !errors.Is(err, ErrNotFound) {
		t.Errorf("Recording(99) error = %v, expected ErrNotFound", err)
	}
	if err := store.DeleteRecording(99); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteRecording(99) error = %v, expected ErrNotFound", err)
	}
}

func TestStoreRecordingsNewestFirst(t *testing.T) {
	store := openTestStore(t)

	base := time.UnixMilli(1_700_000_000_000)
	for i := 0; i < 5; i++ {
		if _, err := store.SaveRecording(testRecording("p", i*10, base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("SaveRecording() failed: %v", err)
		}
	}

	recs, err := store.Recordings(3)
	if err != nil {
		t.Fatalf("Recordings() failed: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("Expected 3 recordings with limit, got %d", len(recs))
	}

	// Should be 40, 30, 20 (newest first)
	if recs[0].Score != 40 || recs[1].Score != 30 || recs[2].Score != 20 {
		t.Errorf("Recordings not newest first: %d, %d, %d", recs[0].Score, recs[1].Score, recs[2].Score)
	}
	if recs[0].Inputs != nil {
		t.Error("Recordings() should not load inputs")
	}
}

func TestStoreDeleteRecording(t *testing.T) {
	store := openTestStore(t)

	keepID, _ := store.SaveRecording(testRecording("keep", 10, time.Now()))
	dropID, _ := store.SaveRecording(testRecording("drop", 20, time.Now()))

	if err := store.DeleteRecording(dropID); err != nil {
		t.Fatalf("DeleteRecording() failed: %v", err)
	}

	if _, err := store.Recording(dropID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Deleted recording still found: %v", err)
	}
	kept, err := store.Recording(keepID)
	if err != nil {
		t.Fatalf("Recording(%d) failed: %v", keepID, err)
	}
	if len(kept.Inputs) != 3 {
		t.Errorf("Other recording's inputs should be untouched, got %d", len(kept.Inputs))
	}

	var orphans int
	if err := store.db.QueryRow(
		"SELECT COUNT(*) FROM recording_inputs WHERE recording_id = ?", dropID,
	).Scan(&orphans); err != nil {
		t.Fatal(err)
	}
	if orphans != 0 {
		t.Errorf("Expected inputs to be deleted, %d remain", orphans)
	}
}

func TestStorePrune(t *testing.T) {
	store := openTestStore(t)

	base := time.UnixMilli(1_700_000_000_000)
	var ids []int64
	for i := 0; i < 6; i++ {
		id, err := store.SaveRecording(testRecording("p", i, base.Add(time.Duration(i)*time.Second)))
		if err != nil {
			t.Fatalf("SaveRecording() failed: %v", err)
		}
		ids = append(ids, id)
	}

	if n, err := store.Prune(0); err != nil || n != 0 {
		t.Errorf("Prune(0) = %d, %v, expected a no-op", n, err)
	}

	n, err := store.Prune(2)
	if err != nil {
		t.Fatalf("Prune() failed: %v", err)
	}
	if n != 4 {
		t.Errorf("Prune(2) removed %d, expected 4", n)
	}

	recs, _ := store.Recordings(10)
	if len(recs) != 2 || recs[0].ID != ids[5] || recs[1].ID != ids[4] {
		t.Errorf("Expected the two newest recordings to remain, got %+v", recs)
	}

	var inputs int
	if err := store.db.QueryRow("SELECT COUNT(*) FROM recording_inputs").Scan(&inputs); err != nil {
		t.Fatal(err)
	}
	if inputs != 6 {
		t.Errorf("Expected inputs of 2 recordings (6), got %d", inputs)
	}
}

func TestStoreRoundTripVerifies(t *testing.T) {
	store := openTestStore(t)

	var rec snake.Recording
	board, err := snake.NewBoard(core.RuntimeConfig{Rows: 12, Columns: 16, Seed: 8})
	if err != nil {
		t.Fatal(err)
	}
	loop := snake.NewLoop(board, snake.LoopConfig{OnGameOver: func(r snake.Recording) { rec = r }})
	loop.SetHeading(snake.DirUp)
	for i := 0; i < 200 && !loop.GameOver(); i++ {
		if i == 3 {
			loop.SetHeading(snake.DirLeft)
		}
		loop.Step()
	}
	if !loop.GameOver() {
		t.Fatal("Game did not end")
	}

	id, err := store.SaveRecording(rec)
	if err != nil {
		t.Fatalf("SaveRecording() failed: %v", err)
	}
	loaded, err := store.Recording(id)
	if err != nil {
		t.Fatalf("Recording() failed: %v", err)
	}

	if _, err := snake.Verify(loaded); err != nil {
		t.Errorf("Stored recording no longer verifies: %v", err)
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
