package snake

import (
	"fmt"
	"slices"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Input is a heading change applied before the update that takes the board
// from Tick to Tick+1.
type Input struct {
	Tick uint64
	Dir  Direction
}

// Recording is everything needed to reproduce one game: the board size,
// the game seed, and the ordered heading changes. The outcome fields are
// kept so a replay can be checked against the original run.
type Recording struct {
	ID        int64
	Player    string
	Rows      int
	Columns   int
	Interval  time.Duration
	Seed      int64
	Inputs    []Input
	Ticks     uint64
	Score     int
	Reason    EndReason
	StartedAt time.Time
	EndedAt   time.Time
}

func (r Recording) clone() Recording {
	r.Inputs = slices.Clone(r.Inputs)
	return r
}

// Duration returns the wall-clock length of the recorded game.
func (r Recording) Duration() time.Duration {
	if r.EndedAt.Before(r.StartedAt) {
		return 0
	}
	return r.EndedAt.Sub(r.StartedAt)
}

// Replayer re-runs a recording one tick at a time.
type Replayer struct {
	rec   Recording
	board *Board
	next  int
}

// NewReplayer prepares a board for rec. Only the colors of base are used;
// dimensions and seed come from the recording.
func NewReplayer(rec Recording, base core.RuntimeConfig) (*Replayer, error) {
	base.Rows = rec.Rows
	base.Columns = rec.Columns
	base.Seed = rec.Seed
	if base.Seed == 0 {
		base.Seed = 1
	}

	board, err := NewBoard(base)
	if err != nil {
		return nil, fmt.Errorf("snake: cannot replay recording %d: %w", rec.ID, err)
	}
	board.ResetWithSeed(rec.Seed)

	return &Replayer{rec: rec, board: board}, nil
}

// Recording returns the recording being replayed.
func (r *Replayer) Recording() Recording {
	return r.rec
}

// Done reports whether the replay has reached the end of the recording or
// the game has ended.
func (r *Replayer) Done() bool {
	return !r.board.Playing() || r.board.Tick() >= r.rec.Ticks
}

// Step applies the inputs due at the current tick and advances one tick.
// It returns false once the replay is done.
func (r *Replayer) Step() bool {
	if r.Done() {
		return false
	}
	for r.next < len(r.rec.Inputs) && r.rec.Inputs[r.next].Tick <= r.board.Tick() {
		r.board.SetHeading(r.rec.Inputs[r.next].Dir)
		r.next++
	}
	r.board.Update()
	return true
}

// Snapshot returns the current replay state.
func (r *Replayer) Snapshot() Snapshot {
	return r.board.Snapshot()
}

// Run steps to the end and returns the final state.
func (r *Replayer) Run() Snapshot {
	for r.Step() {
	}
	return r.Snapshot()
}

// Verify replays rec headlessly and reports whether it reproduces the
// recorded outcome.
func Verify(rec Recording) (Snapshot, error) {
	r, err := NewReplayer(rec, core.DefaultConfig())
	if err != nil {
		return Snapshot{}, err
	}
	final := r.Run()

	if final.Tick != rec.Ticks || final.Score != rec.Score || final.Reason != rec.Reason {
		return final, fmt.Errorf(
			"snake: replay of recording %d diverged: got tick %d score %d reason %s, recorded tick %d score %d reason %s",
			rec.ID, final.Tick, final.Score, final.Reason, rec.Ticks, rec.Score, rec.Reason)
	}
	return final, nil
}
