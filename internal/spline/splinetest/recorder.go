// Package splinetest provides a spline.Handle that records the calls made against it.
package splinetest

import (
	"fmt"

	"csv-spline/internal/spline"
)

// Recorder keeps control points in a slice and appends a description of every mutating call
// to Calls. PointAt interpolates linearly between control points.
type Recorder struct {
	Points      []spline.Point3D
	Modes       []spline.HandleMode
	IsLoop      bool
	AutoMode    spline.AutoConstructMode
	AutoNormals bool
	Calls       []string
}

var _ spline.Handle = (*Recorder)(nil)

// NewRecorder returns a recorder pre-filled with points and no recorded calls.
func NewRecorder(points ...spline.Point3D) *Recorder {
	r := &Recorder{}
	for _, p := range points {
		r.Points = append(r.Points, p)
		r.Modes = append(r.Modes, spline.HandleFree)
	}
	return r
}

func (r *Recorder) record(format string, args ...any) {
	r.Calls = append(r.Calls, fmt.Sprintf(format, args...))
}

// Reset clears Calls.
func (r *Recorder) Reset() {
	r.Calls = nil
}

func (r *Recorder) Count() int { return len(r.Points) }

func (r *Recorder) Initialize(n int) {
	r.record("initialize %d", n)
	r.Points = make([]spline.Point3D, n)
	r.Modes = make([]spline.HandleMode, n)
}

func (r *Recorder) RemovePointAt(i int) {
	r.record("remove %d", i)
	r.Points = append(r.Points[:i], r.Points[i+1:]...)
	r.Modes = append(r.Modes[:i], r.Modes[i+1:]...)
}

func (r *Recorder) InsertNewPointAt(i int, p spline.Point3D) {
	r.record("insert %d", i)
	r.Points = append(r.Points, spline.Point3D{})
	copy(r.Points[i+1:], r.Points[i:])
	r.Points[i] = p
	r.Modes = append(r.Modes, spline.HandleFree)
	copy(r.Modes[i+1:], r.Modes[i:])
	r.Modes[i] = spline.HandleFree
}

func (r *Recorder) Position(i int) spline.Point3D { return r.Points[i] }

func (r *Recorder) SetPosition(i int, p spline.Point3D) {
	r.record("position %d", i)
	r.Points[i] = p
}

func (r *Recorder) HandleMode(i int) spline.HandleMode { return r.Modes[i] }

func (r *Recorder) SetHandleMode(i int, m spline.HandleMode) {
	r.record("mode %d %s", i, m)
	r.Modes[i] = m
}

func (r *Recorder) Loop() bool { return r.IsLoop }

func (r *Recorder) SetLoop(loop bool) {
	r.record("loop %t", loop)
	r.IsLoop = loop
}

func (r *Recorder) AutoConstruct() { r.record("autoconstruct") }

func (r *Recorder) SetAutoConstructMode(m spline.AutoConstructMode) {
	r.record("automode %d", m)
	r.AutoMode = m
}

func (r *Recorder) SetAutoCalculateNormals(on bool) {
	r.record("autonormals %t", on)
	r.AutoNormals = on
}

func (r *Recorder) Refresh() { r.record("refresh") }

func (r *Recorder) PointAt(t float32) spline.Point3D {
	n := len(r.Points)
	switch {
	case n == 0:
		return spline.Point3D{}
	case n == 1 || t <= 0:
		return r.Points[0]
	case t >= 1:
		return r.Points[n-1]
	}
	pos := t * float32(n-1)
	i := int(pos)
	local := pos - float32(i)
	return r.Points[i].Scale(1 - local).Add(r.Points[i+1].Scale(local))
}
