package snake

import (
	"github.com/vovakirdan/tui-snake/internal/core"
)

// SpawnLength is the number of segments a fresh snake starts with.
const SpawnLength = 4

// Snake is an ordered list of segments, head at index 0, plus a heading.
type Snake struct {
	segments []*Entity
	heading  Direction
	color    core.Color
}

// newSnake spawns a horizontal snake centered on a rows×columns grid,
// heading right with the body trailing to the left. On grids narrower than
// the snake the trailing segments stack on column 0.
func newSnake(rows, columns int, color core.Color) *Snake {
	cx, cy := columns/2, rows/2
	if columns >= SpawnLength {
		// Keep the whole body on the board when the center is near the left wall.
		cx = max(cx, SpawnLength-1)
	}
	s := &Snake{
		segments: make([]*Entity, 0, SpawnLength),
		heading:  DirRight,
		color:    color,
	}
	for i := range SpawnLength {
		// Only boards narrower than the snake stack segments on column 0.
		x := core.Clamp(cx-i, 0, columns-1)
		s.segments = append(s.segments, NewSegment(core.Coord{X: x, Y: cy}, color))
	}
	return s
}

// ChangeDirection sets the heading used by the next Advance.
// Any heading is accepted, including a reversal into the body.
func (s *Snake) ChangeDirection(d Direction) {
	if !d.Valid() {
		return
	}
	s.heading = d
}

// Advance moves the snake one cell along its heading.
//
// Segments are written tail first so that every segment copies its
// predecessor's position before the predecessor itself moves. Bounds are
// not checked.
func (s *Snake) Advance() {
	for i := len(s.segments) - 1; i >= 0; i-- {
		if i == 0 {
			dx, dy := s.heading.Delta()
			s.segments[0].pos = s.segments[0].pos.Add(dx, dy)
			continue
		}
		s.segments[i].pos = s.segments[i-1].pos
	}
}

// Grow appends a segment on top of the current tail. The next Advance
// pulls the old tail forward and leaves the new one behind.
func (s *Snake) Grow() {
	tail := s.segments[len(s.segments)-1]
	s.segments = append(s.segments, NewSegment(tail.pos, s.color))
}

// Head returns the head segment.
func (s *Snake) Head() *Entity {
	return s.segments[0]
}

// Heading returns the current heading.
func (s *Snake) Heading() Direction {
	return s.heading
}

// Len returns the number of segments.
func (s *Snake) Len() int {
	return len(s.segments)
}

// Segments returns the segment entities head first. Callers must not
// modify the returned slice.
func (s *Snake) Segments() []*Entity {
	return s.segments
}

// Positions returns a copy of every segment position, head first.
func (s *Snake) Positions() []core.Coord {
	out := make([]core.Coord, len(s.segments))
	for i, seg := range s.segments {
		out[i] = seg.pos
	}
	return out
}

// Occupies reports whether any segment is on c.
func (s *Snake) Occupies(c core.Coord) bool {
	for _, seg := range s.segments {
		if seg.pos == c {
			return true
		}
	}
	return false
}

// bitesItself reports whether any non-head segment shares the head's cell.
func (s *Snake) bitesItself() bool {
	head := s.segments[0]
	for _, seg := range s.segments[1:] {
		if seg.SameLocation(head) {
			return true
		}
	}
	return false
}
