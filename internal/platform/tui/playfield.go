package tui

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

// Visual elements
const (
	obstacleChar = '█'
	birdChar     = '▓'
	floorChar    = '▔'
	lifeFull     = '●'
	lifeEmpty    = '○'
)

// Rows reserved outside the playfield: the HUD on top, help at the bottom.
const (
	hudRows    = 1
	helpRows   = 1
	shakeTicks = 8
)

// PlayfieldFor converts a terminal of cols x rows cells into a playfield
// size in px, capped by the viewport maximums.
func PlayfieldFor(cols, rows int, vp config.Viewport) (width, height float64) {
	width = float64(cols) * vp.CellWidth
	height = float64(rows-hudRows-helpRows) * vp.CellHeight
	if vp.MaxWidth > 0 {
		width = math.Min(width, vp.MaxWidth)
	}
	if vp.MaxHeight > 0 {
		height = math.Min(height, vp.MaxHeight)
	}
	return math.Max(width, 0), math.Max(height, 0)
}

// Overlay carries the journal figures shown on the game-over box.
type Overlay struct {
	Best int
	Runs int
}

// painter maps playfield px onto screen cells.
type painter struct {
	dst *core.Screen
	vp  config.Viewport
	dx  int
}

func (p painter) fill(x, y core.Span, r rune, c core.Color) {
	x0 := int(math.Floor(x.Min / p.vp.CellWidth))
	x1 := int(math.Ceil(x.Max / p.vp.CellWidth))
	y0 := int(math.Floor(y.Min / p.vp.CellHeight))
	y1 := int(math.Ceil(y.Max / p.vp.CellHeight))
	if x1 <= x0 || y1 <= y0 {
		return
	}
	p.dst.DrawRect(core.NewRect(x0+p.dx, y0+hudRows, x1-x0, y1-y0), r, c)
}

// DrawGame paints a snapshot onto dst. shake is the number of remaining
// shake frames after a collision.
func DrawGame(dst *core.Screen, snap flappy.Snapshot, vp config.Viewport, shake int, ov Overlay) {
	dst.Clear()
	if vp.CellWidth <= 0 || vp.CellHeight <= 0 {
		return
	}

	p := painter{dst: dst, vp: vp, dx: shakeOffset(shake)}
	field := snap.Field

	for _, o := range snap.Obstacles {
		p.fill(o.TopSpan(), core.Span{Min: 0, Max: o.GapTop}, obstacleChar, core.ColorGreen)
		p.fill(o.BottomSpan(), core.Span{Min: o.GapBottom, Max: field.Height}, obstacleChar, core.ColorGreen)
	}

	birdColor := core.ColorBrightYellow
	if shake > 0 {
		birdColor = core.ColorBrightRed
	}
	p.fill(core.NewSpan(snap.BirdLeft, snap.BirdSize), core.NewSpan(snap.Bird.Position, snap.BirdSize), birdChar, birdColor)

	floorRow := int(math.Ceil(field.Height/vp.CellHeight)) + hudRows
	fieldCols := int(math.Ceil(field.Width / vp.CellWidth))
	dst.DrawTextColored(0, floorRow, strings.Repeat(string(floorChar), core.Min(fieldCols, dst.Width())), core.ColorGray)

	drawHUD(dst, snap)

	switch snap.Phase {
	case flappy.PhaseIdle:
		drawPanel(dst, core.ColorCyan,
			"F L A P P Y",
			"",
			"space  flap and start",
			"enter  start",
			"q      quit",
		)
	case flappy.PhaseGameOver:
		drawPanel(dst, core.ColorBrightRed,
			"GAME OVER",
			"",
			fmt.Sprintf("score %d", snap.Score),
			fmt.Sprintf("best %d  runs %d", ov.Best, ov.Runs),
			"",
			"r restart  tab runs",
		)
	}
}

func shakeOffset(shake int) int {
	if shake <= 0 {
		return 0
	}
	if shake%2 == 0 {
		return 1
	}
	return -1
}

func drawHUD(dst *core.Screen, snap flappy.Snapshot) {
	dst.DrawTextColored(1, 0, fmt.Sprintf("SCORE %d", snap.Score), core.ColorBrightYellow)

	lives := make([]rune, 0, snap.MaxLives)
	for i := 0; i < snap.MaxLives; i++ {
		if i < snap.Lives {
			lives = append(lives, lifeFull)
		} else {
			lives = append(lives, lifeEmpty)
		}
	}
	dst.DrawTextColored(dst.Width()-len(lives)-1, 0, string(lives), core.ColorRed)
}

// drawPanel draws a centered box with the given lines.
func drawPanel(dst *core.Screen, c core.Color, lines ...string) {
	inner := 0
	for _, l := range lines {
		inner = core.Max(inner, utf8.RuneCountInString(l))
	}
	w := inner + 4
	h := len(lines) + 2
	box := core.NewRect((dst.Width()-w)/2, (dst.Height()-h)/2, w, h)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box)
	for i, l := range lines {
		x := box.X + (w-utf8.RuneCountInString(l))/2
		dst.DrawTextColored(x, box.Y+1+i, l, c)
	}
}
