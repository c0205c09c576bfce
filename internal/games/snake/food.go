package snake

import (
	"github.com/vovakirdan/tui-snake/internal/core"
)

// PlaceFood adds one food item on a uniformly random cell that holds
// neither food nor a snake segment, using rejection sampling. It returns
// false without placing anything when no such cell exists.
//
// Attempts are unbounded; on a nearly full board sampling may take many
// tries before it lands on a free cell.
func (b *Board) PlaceFood() bool {
	if b.freeCells() == 0 {
		return false
	}

	for {
		candidate := NewFood(core.Coord{
			X: b.rng.Intn(b.columns),
			Y: b.rng.Intn(b.rows),
		}, b.foodColor)

		if candidate.InList(b.foods) || candidate.InList(b.snake.segments) {
			continue
		}

		b.foods = append(b.foods, candidate)
		return true
	}
}

// freeCells counts the cells occupied by neither food nor snake.
func (b *Board) freeCells() int {
	bounds := b.Bounds()
	taken := make(map[core.Coord]struct{}, len(b.foods)+b.snake.Len())
	for _, food := range b.foods {
		taken[food.Location()] = struct{}{}
	}
	for _, seg := range b.snake.segments {
		if bounds.Contains(seg.Location()) {
			taken[seg.Location()] = struct{}{}
		}
	}
	return bounds.Area() - len(taken)
}
