package snake

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/core"
)

func TestRenderBoard(t *testing.T) {
	b := newTestBoard(t, 10, 10, 41)
	setFoods(b, at(1, 2))
	snap := b.Snapshot()

	screen := core.NewScreen(80, 30)
	opts := DefaultRenderOptions()
	Render(snap, screen, opts)

	// 10 columns of width 2 plus borders, 10 rows plus borders and a score line.
	ox := (80 - 22) / 2
	oy := (30 - 13) / 2

	if got := screen.Get(ox, oy); got != '┌' {
		t.Errorf("Expected frame corner at (%d, %d), got %q", ox, oy, got)
	}

	head := snap.Head
	for i := range 2 {
		cell := screen.GetCell(ox+1+head.X*2+i, oy+1+head.Y)
		if cell.Rune != cellGlyph || cell.Color != core.ColorOlive {
			t.Errorf("Head cell %d = %+v, expected olive block", i, cell)
		}
	}

	food := screen.GetCell(ox+1+1*2, oy+1+2)
	if food.Rune != cellGlyph || food.Color != core.ColorSienna {
		t.Errorf("Food cell = %+v, expected sienna block", food)
	}

	empty := screen.GetCell(ox+1, oy+1)
	if empty.Rune != ' ' || empty.Color != opts.Background {
		t.Errorf("Empty cell = %+v, expected a blank shaded %v", empty, opts.Background)
	}

	if row := screen.Row(oy + 12); !strings.Contains(row, "score: 0") {
		t.Errorf("Score line missing, got %q", row)
	}
	if strings.Contains(screen.String(), gameOverTitle) {
		t.Error("Game over box should not be drawn while playing")
	}
}

func TestRenderBlankBackground(t *testing.T) {
	b := newTestBoard(t, 4, 4, 42)
	setFoods(b)

	screen := core.NewScreen(20, 10)
	Render(b.Snapshot(), screen, RenderOptions{CellWidth: 1})

	ox := (20 - 6) / 2
	oy := (10 - 7) / 2
	if got := screen.GetCell(ox+1, oy+1); got.Rune != ' ' {
		t.Errorf("Empty cell without background should be blank, got %q", got.Rune)
	}
}

func TestRenderGameOver(t *testing.T) {
	b := newTestBoard(t, 10, 10, 43)
	setSnake(b, DirRight, at(9, 5), at(8, 5), at(7, 5), at(6, 5))
	b.Update()

	screen := core.NewScreen(80, 30)
	Render(b.Snapshot(), screen, DefaultRenderOptions())

	out := screen.String()
	if !strings.Contains(out, gameOverTitle) || !strings.Contains(out, gameOverPrompt) {
		t.Error("Game over box should be drawn once the game has ended")
	}
}

func TestRenderWindowTooSmall(t *testing.T) {
	b := newTestBoard(t, 30, 30, 44)

	screen := core.NewScreen(40, 20)
	Render(b.Snapshot(), screen, DefaultRenderOptions())

	out := screen.String()
	if !strings.Contains(out, "Window too small") || !strings.Contains(out, "need 62x33") {
		t.Errorf("Expected size hint, got:\n%s", out)
	}
}
