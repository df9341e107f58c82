package scene

import (
	"csv-spline/internal/spline"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	gridExtent     = 50
	gridMinorStep  = 1
	gridMajorStep  = 10
	gridMinorAlpha = 50
	gridMajorAlpha = 120
	axisLineAlpha  = 220
	// controlPointRadius is the size of the sphere drawn on each control point.
	controlPointRadius = 0.06
)

// Curve is a spline drawn as a polyline of Samples segments, with a marker on every control point.
type Curve struct {
	Spline spline.Handle
	Color  rl.Color
	// samples is reused every frame to avoid per-frame allocations.
	samples []spline.Point3D
}

// Scene holds a 3D camera and draws the editor world: grid, axes, and spline gizmos.
// Update runs camera logic (free camera); Draw renders between BeginMode3D and EndMode3D.
type Scene struct {
	Camera      rl.Camera3D
	GridVisible bool
	// Samples is the number of segments per curve; values <= 0 use spline.DefaultSamples.
	Samples    int
	curves     []*Curve
	cursorDone bool
}

// New returns a scene with a perspective camera looking at the origin from (5,5,5).
func New() *Scene {
	s := &Scene{GridVisible: true, Samples: spline.DefaultSamples}
	s.Camera.Position = rl.NewVector3(5, 5, 5)
	s.Camera.Target = rl.NewVector3(0, 0, 0)
	s.Camera.Up = rl.NewVector3(0, 1, 0)
	s.Camera.Fovy = 45
	s.Camera.Projection = rl.CameraPerspective
	return s
}

// AddCurve registers a spline to draw every frame. The scene only reads from h.
func (s *Scene) AddCurve(h spline.Handle, color rl.Color) {
	s.curves = append(s.curves, &Curve{Spline: h, Color: color})
}

// SetSamples sets the number of segments drawn per curve.
func (s *Scene) SetSamples(n int) {
	s.Samples = n
}

// SetGridVisible sets whether the editor grid is drawn.
func (s *Scene) SetGridVisible(visible bool) {
	s.GridVisible = visible
}

// Update runs once per frame. The camera only moves while freeLook is true (terminal closed),
// so typing in the terminal does not fly the camera around.
func (s *Scene) Update(freeLook bool) {
	if !s.cursorDone {
		rl.DisableCursor()
		s.cursorDone = true
	}
	if freeLook {
		rl.UpdateCamera(&s.Camera, rl.CameraFree)
	}
}

// Draw renders the 3D scene. Call after ClearBackground and before the 2D overlay.
func (s *Scene) Draw() {
	rl.BeginMode3D(s.Camera)
	if s.GridVisible {
		drawEditorGrid()
	}
	for _, c := range s.curves {
		s.drawCurve(c)
	}
	rl.EndMode3D()
}

// drawCurve samples the spline from t=0 to t=1 and connects consecutive samples with lines.
func (s *Scene) drawCurve(c *Curve) {
	h := c.Spline
	if h == nil || h.Count() == 0 {
		return
	}
	steps := s.Samples
	if steps <= 0 {
		steps = spline.DefaultSamples
	}
	c.samples = spline.AppendSamples(c.samples[:0], h, steps)
	for i := 1; i < len(c.samples); i++ {
		rl.DrawLine3D(vec(c.samples[i-1]), vec(c.samples[i]), c.Color)
	}
	for i := 0; i < h.Count(); i++ {
		rl.DrawSphere(vec(h.Position(i)), controlPointRadius, c.Color)
	}
}

func vec(p spline.Point3D) rl.Vector3 {
	return rl.NewVector3(p.X, p.Y, p.Z)
}

// drawEditorGrid draws a grid on the XZ plane with major/minor lines and axis lines.
func drawEditorGrid() {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)

	var start, end rl.Vector3
	for i := -gridExtent; i <= gridExtent; i += gridMinorStep {
		c := major
		if i%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(i), 0, float32(-gridExtent)
		end.X, end.Y, end.Z = float32(i), 0, float32(gridExtent)
		rl.DrawLine3D(start, end, c)
		start.X, start.Y, start.Z = float32(-gridExtent), 0, float32(i)
		end.X, end.Y, end.Z = float32(gridExtent), 0, float32(i)
		rl.DrawLine3D(start, end, c)
	}

	// X=red, Y=green, Z=blue
	rl.DrawLine3D(rl.NewVector3(-gridExtent, 0, 0), rl.NewVector3(gridExtent, 0, 0), rl.NewColor(220, 80, 80, axisLineAlpha))
	rl.DrawLine3D(rl.NewVector3(0, -gridExtent, 0), rl.NewVector3(0, gridExtent, 0), rl.NewColor(80, 220, 80, axisLineAlpha))
	rl.DrawLine3D(rl.NewVector3(0, 0, -gridExtent), rl.NewVector3(0, 0, gridExtent), rl.NewColor(80, 80, 220, axisLineAlpha))
}
