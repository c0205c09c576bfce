package snake

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// ErrInvalidDimensions is returned when a board is built with non-positive
// rows or columns.
var ErrInvalidDimensions = errors.New("snake: rows and columns must be greater than zero")

// EndReason records which terminal collision ended a game.
type EndReason int

const (
	EndNone EndReason = iota // Still playing
	EndSelf                  // Head ran into the body
	EndWall                  // Head left the grid
)

func (r EndReason) String() string {
	switch r {
	case EndNone:
		return "none"
	case EndSelf:
		return "self"
	case EndWall:
		return "wall"
	default:
		return "unknown"
	}
}

// ParseEndReason parses the String form of an end reason.
func ParseEndReason(s string) (EndReason, error) {
	for r := EndNone; r <= EndWall; r++ {
		if r.String() == s {
			return r, nil
		}
	}
	return EndNone, fmt.Errorf("snake: unknown end reason %q", s)
}

// Redrawer is notified after every completed tick. Implementations must not
// block; they typically enqueue a repaint for another goroutine.
type Redrawer interface {
	RequestRedraw()
}

// Board owns the snake, the food items, and the rows×columns occupancy
// grid. It is not safe for concurrent use.
type Board struct {
	rows    int
	columns int
	grid    [][]*Entity // [row][column]

	snake   *Snake
	foods   []*Entity
	score   int
	playing bool
	reason  EndReason
	tick    uint64

	seeds *rand.Rand // draws per-game seeds
	rng   *rand.Rand // food placement for the current game
	seed  int64

	snakeColor core.Color
	foodColor  core.Color
	redrawer   Redrawer
}

// NewBoard creates a board and starts the first game.
func NewBoard(cfg core.RuntimeConfig) (*Board, error) {
	if cfg.Rows <= 0 || cfg.Columns <= 0 {
		return nil, fmt.Errorf("%w: got %d rows, %d columns", ErrInvalidDimensions, cfg.Rows, cfg.Columns)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	b := &Board{
		rows:       cfg.Rows,
		columns:    cfg.Columns,
		seeds:      rand.New(rand.NewSource(seed)),
		snakeColor: cfg.SnakeColor,
		foodColor:  cfg.FoodColor,
	}
	b.grid = make([][]*Entity, b.rows)
	for r := range b.grid {
		b.grid[r] = make([]*Entity, b.columns)
	}

	b.Reset()
	return b, nil
}

// SetRedrawer installs the collaborator notified after each tick.
func (b *Board) SetRedrawer(r Redrawer) {
	b.redrawer = r
}

// Rows returns the number of grid rows.
func (b *Board) Rows() int {
	return b.rows
}

// Columns returns the number of grid columns.
func (b *Board) Columns() int {
	return b.columns
}

// Bounds returns the playable area.
func (b *Board) Bounds() core.Rect {
	return core.NewRect(0, 0, b.columns, b.rows)
}

// Score returns the current game's score.
func (b *Board) Score() int {
	return b.score
}

// Playing reports whether the current game is still running.
func (b *Board) Playing() bool {
	return b.playing
}

// Reason returns why the last game ended, or EndNone while playing.
func (b *Board) Reason() EndReason {
	return b.reason
}

// Tick returns the number of updates applied in the current game.
func (b *Board) Tick() uint64 {
	return b.tick
}

// Seed returns the seed of the current game.
func (b *Board) Seed() int64 {
	return b.seed
}

// Snake returns the current snake.
func (b *Board) Snake() *Snake {
	return b.snake
}

// Foods returns the food items on the board. Callers must not modify the
// returned slice.
func (b *Board) Foods() []*Entity {
	return b.foods
}

// Cell returns the entity occupying (row, column), or nil.
func (b *Board) Cell(row, column int) *Entity {
	if row < 0 || row >= b.rows || column < 0 || column >= b.columns {
		return nil
	}
	return b.grid[row][column]
}

// SetHeading forwards a heading change to the snake.
func (b *Board) SetHeading(d Direction) {
	b.snake.ChangeDirection(d)
}

// Update performs one tick. The order of the checks decides which terminal
// collision is reported when several apply at once: self before wall.
// Update does nothing once the game is over.
func (b *Board) Update() {
	if !b.playing {
		return
	}
	b.tick++

	b.snake.Advance()

	if b.snake.bitesItself() {
		b.end(EndSelf)
		return
	}

	head := b.snake.Head()
	if !b.Bounds().Contains(head.Location()) {
		b.end(EndWall)
		return
	}

	// Foods never share a cell, so at most one can be under the head.
	for i, food := range b.foods {
		if !food.SameLocation(head) {
			continue
		}
		b.foods = slices.Delete(b.foods, i, i+1)
		b.score += food.Value()
		b.snake.Grow()
		if len(b.foods) == 0 {
			b.PlaceFood()
		}
		break
	}

	b.rebuildGrid()
	b.requestRedraw()
}

// Reset starts a new game with a seed drawn from the board's seed source.
func (b *Board) Reset() {
	b.ResetWithSeed(b.seeds.Int63())
}

// ResetWithSeed starts a new game whose food placement is driven by seed.
func (b *Board) ResetWithSeed(seed int64) {
	b.seed = seed
	b.rng = rand.New(rand.NewSource(seed))
	b.snake = newSnake(b.rows, b.columns, b.snakeColor)
	b.foods = nil
	b.score = 0
	b.tick = 0
	b.reason = EndNone
	b.PlaceFood()
	b.playing = true

	b.rebuildGrid()
	b.requestRedraw()
}

func (b *Board) end(reason EndReason) {
	b.playing = false
	b.reason = reason
}

// rebuildGrid recomputes occupancy from scratch. Segments are written after
// foods so a segment wins a shared cell.
func (b *Board) rebuildGrid() {
	for r := range b.grid {
		clear(b.grid[r])
	}
	for _, food := range b.foods {
		b.place(food)
	}
	for _, seg := range b.snake.segments {
		b.place(seg)
	}
}

func (b *Board) place(e *Entity) {
	pos := e.Location()
	if !b.Bounds().Contains(pos) {
		return
	}
	b.grid[pos.Y][pos.X] = e
}

func (b *Board) requestRedraw() {
	if b.redrawer != nil {
		b.redrawer.RequestRedraw()
	}
}
