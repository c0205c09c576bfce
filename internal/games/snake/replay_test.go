package snake

import (
	"testing"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// playRecorded runs a scripted game through a Loop and returns its recording.
func playRecorded(t *testing.T, seed int64, turns map[int]Direction) Recording {
	t.Helper()
	b := newTestBoard(t, 12, 16, seed)

	var rec *Recording
	l := NewLoop(b, LoopConfig{
		Player: "bob",
		OnGameOver: func(r Recording) {
			rec = &r
		},
	})

	for i := range 500 {
		if d, ok := turns[i]; ok {
			l.SetHeading(d)
		}
		l.Step()
		if l.GameOver() {
			break
		}
	}
	if rec == nil {
		t.Fatal("Scripted game did not finish")
	}
	return *rec
}

var scriptedTurns = map[int]Direction{
	2:  DirDown,
	5:  DirLeft,
	11: DirUp,
	14: DirRight,
	20: DirDown,
}

func TestVerifyGenuineRecording(t *testing.T) {
	for _, seed := range []int64{1, 42, 9001} {
		rec := playRecorded(t, seed, scriptedTurns)

		final, err := Verify(rec)
		if err != nil {
			t.Fatalf("seed %d: Verify failed: %v", seed, err)
		}
		if final.Score != rec.Score || final.Tick != rec.Ticks {
			t.Errorf("seed %d: replay ended at tick %d score %d, recorded %d and %d",
				seed, final.Tick, final.Score, rec.Ticks, rec.Score)
		}
	}
}

func TestVerifyTamperedRecording(t *testing.T) {
	rec := playRecorded(t, 77, scriptedTurns)

	tampered := rec.clone()
	tampered.Score += FoodValue
	if _, err := Verify(tampered); err == nil {
		t.Error("Verify should reject an inflated score")
	}

	tampered = rec.clone()
	tampered.Inputs = tampered.Inputs[:1]
	tampered.Ticks += 100
	if _, err := Verify(tampered); err == nil {
		t.Error("Verify should reject altered inputs")
	}
}

func TestReplayerSteps(t *testing.T) {
	rec := playRecorded(t, 5, scriptedTurns)

	r, err := NewReplayer(rec, core.DefaultConfig())
	if err != nil {
		t.Fatalf("NewReplayer failed: %v", err)
	}

	start := r.Snapshot()
	if start.Rows != rec.Rows || start.Columns != rec.Columns || start.Seed != rec.Seed {
		t.Errorf("Replay board %dx%d seed %d, recording %dx%d seed %d",
			start.Rows, start.Columns, start.Seed, rec.Rows, rec.Columns, rec.Seed)
	}

	steps := uint64(0)
	for r.Step() {
		steps++
	}
	if steps != rec.Ticks {
		t.Errorf("Replay took %d steps, recording has %d ticks", steps, rec.Ticks)
	}
	if !r.Done() || r.Step() {
		t.Error("Replay should be done")
	}
}

func TestNewReplayerRejectsBadRecording(t *testing.T) {
	if _, err := NewReplayer(Recording{Rows: 0, Columns: 5}, core.DefaultConfig()); err == nil {
		t.Error("NewReplayer should reject a recording without rows")
	}
}

func TestRecordingDuration(t *testing.T) {
	rec := playRecorded(t, 3, nil)
	if rec.Duration() < 0 {
		t.Errorf("Duration = %v", rec.Duration())
	}
	rec.EndedAt = rec.StartedAt.Add(-1)
	if rec.Duration() != 0 {
		t.Errorf("Duration with EndedAt before StartedAt = %v, expected 0", rec.Duration())
	}
}
