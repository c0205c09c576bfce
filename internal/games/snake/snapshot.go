package snake

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// CellView is the read-only contents of one grid cell.
type CellView struct {
	Kind  Kind
	Color core.Color
}

// Snapshot is an immutable copy of the board taken after a tick. It shares
// no memory with the board and may be handed to another goroutine.
type Snapshot struct {
	Tick    uint64
	Rows    int
	Columns int
	Cells   [][]CellView // [row][column]
	Score   int
	Playing bool
	Reason  EndReason
	Heading Direction
	Length  int
	Head    core.Coord
	Foods   []core.Coord
	Seed    int64
}

// Snapshot captures the current board state.
func (b *Board) Snapshot() Snapshot {
	cells := make([][]CellView, b.rows)
	for r := range cells {
		cells[r] = make([]CellView, b.columns)
		for c, e := range b.grid[r] {
			if e != nil {
				cells[r][c] = CellView{Kind: e.Kind(), Color: e.Color()}
			}
		}
	}

	foods := make([]core.Coord, len(b.foods))
	for i, f := range b.foods {
		foods[i] = f.Location()
	}

	return Snapshot{
		Tick:    b.tick,
		Rows:    b.rows,
		Columns: b.columns,
		Cells:   cells,
		Score:   b.score,
		Playing: b.playing,
		Reason:  b.reason,
		Heading: b.snake.Heading(),
		Length:  b.snake.Len(),
		Head:    b.snake.Head().Location(),
		Foods:   foods,
		Seed:    b.seed,
	}
}

// Cell returns the view of (row, column), or an empty view out of bounds.
func (s Snapshot) Cell(row, column int) CellView {
	if row < 0 || row >= len(s.Cells) || column < 0 || column >= len(s.Cells[row]) {
		return CellView{}
	}
	return s.Cells[row][column]
}

// Count returns the number of cells holding the given kind.
func (s Snapshot) Count(kind Kind) int {
	n := 0
	for _, row := range s.Cells {
		for _, cell := range row {
			if cell.Kind == kind {
				n++
			}
		}
	}
	return n
}

// DebugState returns a string representation of the snapshot.
func (s Snapshot) DebugState() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tick: %d, Score: %d, Seed: %d\n", s.Tick, s.Score, s.Seed)
	fmt.Fprintf(&b, "Snake len: %d, Heading: %s, Head: %v\n", s.Length, s.Heading, s.Head)
	fmt.Fprintf(&b, "Foods: %v\n", s.Foods)
	fmt.Fprintf(&b, "Playing: %v, Reason: %s\n", s.Playing, s.Reason)
	return b.String()
}
