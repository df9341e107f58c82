// Package builder creates and edits a spline from points supplied in code.
package builder

import (
	"fmt"

	"csv-spline/internal/bezier"
	"csv-spline/internal/spline"

	"github.com/sirupsen/logrus"
)

// DemoPoints is the list used by Start.
func DemoPoints() []spline.Point3D {
	return []spline.Point3D{
		spline.P3(0, 0, 0),
		spline.P3(1, 1, 0),
		spline.P3(2, 0, 0),
		spline.P3(3, -1, 0),
	}
}

// Builder wraps a spline handle with validated create/append/remove operations.
type Builder struct {
	spline spline.Handle
	log    logrus.FieldLogger
}

// New returns a builder for h. A nil h is replaced by a new default engine spline.
func New(h spline.Handle, log logrus.FieldLogger) *Builder {
	if h == nil {
		h = bezier.New()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Builder{spline: h, log: log}
}

// Spline returns the handle being edited.
func (b *Builder) Spline() spline.Handle {
	return b.spline
}

// Start builds the spline from DemoPoints and logs its midpoint.
func (b *Builder) Start() error {
	if err := b.Create(DemoPoints()); err != nil {
		return err
	}
	b.log.WithField("t", 0.5).Infof("Point on spline: %v", b.PointAt(0.5))
	return nil
}

// Create resets the spline to exactly points, in order, with smooth construction and automatic
// normals. With fewer than spline.MinPoints points it returns a validation error and leaves the
// spline unmodified.
func (b *Builder) Create(points []spline.Point3D) error {
	if len(points) < spline.MinPoints {
		err := fmt.Errorf("%w: at least %d points are required to create a spline, got %d",
			spline.ErrValidationFailure, spline.MinPoints, len(points))
		b.log.Error(err)
		return err
	}
	h := b.spline
	h.Initialize(len(points))
	for i, p := range points {
		h.SetPosition(i, p)
	}
	h.SetAutoConstructMode(spline.AutoConstructSmooth)
	h.SetAutoCalculateNormals(true)
	h.Refresh()
	return nil
}

// Append adds p as the new last point.
func (b *Builder) Append(p spline.Point3D) {
	h := b.spline
	i := h.Count()
	h.InsertNewPointAt(i, p)
	h.SetPosition(i, p)
	h.Refresh()
}

// RemoveLast drops the last point. It refuses when that would leave fewer than spline.MinPoints.
func (b *Builder) RemoveLast() error {
	h := b.spline
	if h.Count() <= spline.MinPoints {
		err := fmt.Errorf("%w: cannot remove point, spline must have at least %d points",
			spline.ErrValidationFailure, spline.MinPoints)
		b.log.Warn(err)
		return err
	}
	h.RemovePointAt(h.Count() - 1)
	h.Refresh()
	return nil
}

// PointAt samples the spline at t in [0,1].
func (b *Builder) PointAt(t float32) spline.Point3D {
	return b.spline.PointAt(t)
}
