package snake

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
)

const (
	cellGlyph = '█'

	gameOverTitle  = "GAME OVER"
	gameOverPrompt = "press any key to play again"
)

// RenderOptions controls how a snapshot is laid out on a screen.
type RenderOptions struct {
	CellWidth  int        // Characters per grid cell (1 or more)
	Background core.Color // Shade of empty cells; ColorDefault leaves them unshaded
	Border     core.Color // Color of the frame around the grid
}

// DefaultRenderOptions returns square-ish cells on a charcoal background.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		CellWidth:  2,
		Background: core.ColorCharcoal,
		Border:     core.ColorGray,
	}
}

// Render draws the snapshot centered on dst: the framed grid, a score line
// under it, and the game over box when the game has ended.
func Render(snap Snapshot, dst *core.Screen, opts RenderOptions) {
	dst.Clear()

	cw := max(opts.CellWidth, 1)
	frameW := snap.Columns*cw + 2
	frameH := snap.Rows + 2

	if dst.Width() < frameW || dst.Height() < frameH+1 {
		renderOverlay(dst, "Window too small",
			fmt.Sprintf("need %dx%d", frameW, frameH+1))
		return
	}

	ox := (dst.Width() - frameW) / 2
	oy := (dst.Height() - frameH - 1) / 2

	dst.DrawBox(core.NewRect(ox, oy, frameW, frameH), opts.Border)

	for r := range snap.Rows {
		for c := range snap.Columns {
			cell := snap.Cell(r, c)
			glyph, color := cellGlyph, cell.Color
			if cell.Kind == KindEmpty {
				// Blank, shaded by the terminal front end when colored.
				glyph, color = ' ', opts.Background
			}
			for i := range cw {
				dst.SetColor(ox+1+c*cw+i, oy+1+r, glyph, color)
			}
		}
	}

	dst.DrawText(ox, oy+frameH, fmt.Sprintf("score: %d", snap.Score))

	if !snap.Playing {
		renderOverlay(dst, gameOverTitle, gameOverPrompt)
	}
}

// renderOverlay draws a centered two-line message box.
func renderOverlay(dst *core.Screen, line1, line2 string) {
	boxW := max(len(line1), len(line2)) + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(core.NewRect(box.X+1, box.Y+1, box.W-2, box.H-2), core.Cell{Rune: ' '})
	dst.DrawBox(box, core.ColorBrightWhite)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}
