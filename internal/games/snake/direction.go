package snake

import "fmt"

// Direction represents the snake's heading.
type Direction int

const (
	DirUp Direction = iota
	DirRight
	DirDown
	DirLeft
)

// Valid reports whether d is one of the four headings.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirLeft
}

// Delta returns the one-cell offset for the heading. Y grows downward.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirRight:
		return 1, 0
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	default:
		return 0, 0
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	default:
		return "unknown"
	}
}

// ParseDirection parses the String form of a heading.
func ParseDirection(s string) (Direction, error) {
	for d := DirUp; d <= DirLeft; d++ {
		if d.String() == s {
			return d, nil
		}
	}
	return DirUp, fmt.Errorf("snake: unknown direction %q", s)
}
