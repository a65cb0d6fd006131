package monitor

import (
	"math"

	"github.com/Gaurav-Gosain/nyxos/internal/desktop"
)

const emptyCell = '·'

type boxRunes struct {
	topLeft, topRight, bottomLeft, bottomRight, horizontal, vertical rune
}

var (
	lightBox = boxRunes{'┌', '┐', '└', '┘', '─', '│'}
	heavyBox = boxRunes{'┏', '┓', '┗', '┛', '━', '┃'}
)

// Minimap draws the windows of snap onto a cols x rows character grid scaled
// from the viewport. Windows are painted in stacking order so higher windows
// cover lower ones. The focused window gets a heavy border.
func Minimap(snap desktop.Snapshot, cols, rows int) []string {
	if cols <= 0 || rows <= 0 {
		return nil
	}

	grid := make([][]rune, rows)
	for y := range grid {
		grid[y] = make([]rune, cols)
		for x := range grid[y] {
			grid[y][x] = emptyCell
		}
	}

	vw, vh := snap.Viewport.Width, snap.Viewport.Height
	if vw > 0 && vh > 0 {
		for _, w := range snap.Windows {
			paintWindow(grid, w, vw, vh)
		}
	}

	lines := make([]string, rows)
	for y, row := range grid {
		lines[y] = string(row)
	}
	return lines
}

func paintWindow(grid [][]rune, w desktop.WindowSnapshot, vw, vh float64) {
	rows, cols := len(grid), len(grid[0])
	f := w.Frame
	sx := func(v float64) float64 { return v * float64(cols) / vw }
	sy := func(v float64) float64 { return v * float64(rows) / vh }

	x0 := int(math.Floor(sx(f.X)))
	y0 := int(math.Floor(sy(f.Y)))
	x1 := int(math.Ceil(sx(f.X+f.Width))) - 1
	y1 := int(math.Ceil(sy(f.Y+f.Height))) - 1

	box := lightBox
	if w.Focused {
		box = heavyBox
	}

	// Off-grid or collapsed windows still leave a marker.
	if x1 <= x0 || y1 <= y0 {
		x, y := min(max(x0, 0), cols-1), min(max(y0, 0), rows-1)
		grid[y][x] = box.topLeft
		return
	}

	set := func(x, y int, r rune) {
		if x >= 0 && x < cols && y >= 0 && y < rows {
			grid[y][x] = r
		}
	}

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			var r rune
			switch {
			case y == y0 && x == x0:
				r = box.topLeft
			case y == y0 && x == x1:
				r = box.topRight
			case y == y1 && x == x0:
				r = box.bottomLeft
			case y == y1 && x == x1:
				r = box.bottomRight
			case y == y0 || y == y1:
				r = box.horizontal
			case x == x0 || x == x1:
				r = box.vertical
			default:
				r = ' '
			}
			set(x, y, r)
		}
	}

	label := []rune(w.Title)
	if len(label) == 0 {
		label = []rune(w.AppID)
	}
	for i, r := range label {
		x := x0 + 1 + i
		if x >= x1 {
			break
		}
		set(x, y0, r)
	}
}
