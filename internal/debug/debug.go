package debug

import (
	"fmt"

	"csv-spline/internal/session"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh the text every N frames to reduce allocations.
	updateInterval = 30
)

// Overlay draws the FPS counter (optional) and one status line per curve in the top-right corner.
type Overlay struct {
	ShowFPS    bool
	curves     func() []session.Curve
	frameCount uint32
	fpsText    string
	curveText  []string
}

// New returns an overlay that reports on the curves returned by curves.
func New(curves func() []session.Curve) *Overlay {
	return &Overlay{curves: curves}
}

// SetShowFPS sets whether the FPS counter is drawn.
func (o *Overlay) SetShowFPS(show bool) {
	o.ShowFPS = show
}

// Draw renders the overlay. Call after the scene and before the terminal.
func (o *Overlay) Draw() {
	o.frameCount++
	if o.frameCount%updateInterval == 1 || o.curveText == nil {
		o.refresh()
	}
	screenW := rl.GetScreenWidth()
	y := int32(padding)
	if o.ShowFPS {
		drawRight(o.fpsText, screenW, y, rl.Green)
		y += lineHeight
	}
	for _, line := range o.curveText {
		drawRight(line, screenW, y, rl.Yellow)
		y += lineHeight
	}
}

func (o *Overlay) refresh() {
	o.fpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
	o.curveText = o.curveText[:0]
	for _, c := range o.curves() {
		loop := "open"
		if c.Spline.Loop() {
			loop = "loop"
		}
		o.curveText = append(o.curveText, fmt.Sprintf("%s: %d points, %s", c.Name, c.Spline.Count(), loop))
	}
}

func drawRight(text string, screenW int, y int32, color rl.Color) {
	w := rl.MeasureText(text, fontSize)
	rl.DrawText(text, int32(screenW)-w-padding, y, fontSize, color)
}
