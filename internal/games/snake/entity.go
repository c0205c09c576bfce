package snake

import (
	"github.com/vovakirdan/tui-snake/internal/core"
)

// FoodValue is the score awarded for eating one food item.
const FoodValue = 10

// Kind discriminates the entities that can occupy a board cell.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindSegment
	KindFood
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindSegment:
		return "segment"
	case KindFood:
		return "food"
	default:
		return "unknown"
	}
}

// Entity is a positioned, colored object on the board: either a snake
// segment or a food item. Color and value are fixed at construction.
type Entity struct {
	pos   core.Coord
	kind  Kind
	color core.Color
	value int
}

// NewSegment creates a snake segment at pos.
func NewSegment(pos core.Coord, color core.Color) *Entity {
	return &Entity{pos: pos, kind: KindSegment, color: color}
}

// NewFood creates a food item worth FoodValue at pos.
func NewFood(pos core.Coord, color core.Color) *Entity {
	return &Entity{pos: pos, kind: KindFood, color: color, value: FoodValue}
}

// Location returns the entity's cell.
func (e *Entity) Location() core.Coord {
	return e.pos
}

// Kind returns whether the entity is a segment or food.
func (e *Entity) Kind() Kind {
	return e.kind
}

// Color returns the entity's display color.
func (e *Entity) Color() core.Color {
	return e.color
}

// Value returns the score value of a food item; segments are worth 0.
func (e *Entity) Value() int {
	return e.value
}

// SameLocation reports whether both entities occupy the same cell.
func (e *Entity) SameLocation(other *Entity) bool {
	return e.pos == other.pos
}

// InList reports whether any entity in list shares e's cell.
func (e *Entity) InList(list []*Entity) bool {
	for _, other := range list {
		if e.SameLocation(other) {
			return true
		}
	}
	return false
}
