package bezier

import (
	"testing"

	"csv-spline/internal/spline"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildOpen(points ...spline.Point3D) *Spline {
	s := New()
	for _, p := range points {
		s.InsertNewPointAt(s.Count(), p)
	}
	return s
}

func TestInsertAndRemoveKeepOrder(t *testing.T) {
	s := buildOpen(spline.P3(0, 0, 0), spline.P3(2, 0, 0))
	s.InsertNewPointAt(1, spline.P3(1, 0, 0))
	assert.Equal(t, spline.PointSequence{spline.P3(0, 0, 0), spline.P3(1, 0, 0), spline.P3(2, 0, 0)}, spline.Positions(s))

	s.RemovePointAt(0)
	assert.Equal(t, spline.PointSequence{spline.P3(1, 0, 0), spline.P3(2, 0, 0)}, spline.Positions(s))
}

func TestPointAtEndsMatchControlPoints(t *testing.T) {
	s := buildOpen(spline.P3(0, 0, 0), spline.P3(1, 1, 0), spline.P3(2, 0, 0), spline.P3(3, -1, 0))
	s.SetAutoConstructMode(spline.AutoConstructSmooth)
	s.Refresh()

	assert.Equal(t, spline.P3(0, 0, 0), s.PointAt(0))
	assert.Equal(t, spline.P3(3, -1, 0), s.PointAt(1))
	assert.Equal(t, s.PointAt(0), s.PointAt(-3), "t is clamped")
	assert.Equal(t, s.PointAt(1), s.PointAt(7), "t is clamped")
}

func TestPointAtPassesThroughInteriorPoints(t *testing.T) {
	s := buildOpen(spline.P3(0, 0, 0), spline.P3(1, 1, 0), spline.P3(2, 0, 0))
	s.AutoConstruct()
	mid := s.PointAt(0.5)
	assert.InDelta(t, 1, mid.X, 1e-5)
	assert.InDelta(t, 1, mid.Y, 1e-5)
}

func TestLoopEndsOnFirstPoint(t *testing.T) {
	s := buildOpen(spline.P3(0, 0, 0), spline.P3(1, 0, 0), spline.P3(1, 1, 0))
	s.SetLoop(true)
	s.AutoConstruct()
	assert.Equal(t, spline.P3(0, 0, 0), s.PointAt(1))
}

func TestEmptyAndSinglePoint(t *testing.T) {
	s := New()
	assert.Equal(t, spline.Point3D{}, s.PointAt(0.5))
	s.InsertNewPointAt(0, spline.P3(4, 5, 6))
	assert.Equal(t, spline.P3(4, 5, 6), s.PointAt(0.5))
}

func TestMirroredModeMirrorsHandles(t *testing.T) {
	s := buildOpen(spline.P3(0, 0, 0), spline.P3(2, 0, 0))
	s.points[0].preceding = spline.P3(-1, 1, 0)
	s.SetHandleMode(0, spline.HandleMirrored)
	assert.Equal(t, spline.HandleMirrored, s.HandleMode(0))
	assert.Equal(t, spline.P3(1, -1, 0), s.FollowingHandle(0))
}

func TestSetPositionMovesHandles(t *testing.T) {
	s := buildOpen(spline.P3(0, 0, 0), spline.P3(2, 0, 0))
	s.AutoConstruct()
	before := s.FollowingHandle(0)
	s.SetPosition(0, spline.P3(0, 3, 0))
	assert.Equal(t, before.Add(spline.P3(0, 3, 0)), s.FollowingHandle(0))
}

func TestInitializeAndRefreshNormals(t *testing.T) {
	s := New()
	s.Initialize(3)
	require.Equal(t, 3, s.Count())
	assert.Equal(t, spline.P3(2, 0, 0), s.Position(2))

	s.SetAutoConstructMode(spline.AutoConstructSmooth)
	s.SetAutoCalculateNormals(true)
	rev := s.Revision()
	s.Refresh()
	assert.Equal(t, rev+1, s.Revision())
	// Tangent along +X, so the normal is +X cross +Y = +Z.
	n := s.Normal(1)
	assert.InDelta(t, 0, n.X, 1e-6)
	assert.InDelta(t, 0, n.Y, 1e-6)
	assert.InDelta(t, 1, n.Z, 1e-6)
}

func TestLinearModeCollapsesHandles(t *testing.T) {
	s := New()
	s.Initialize(2)
	s.SetAutoConstructMode(spline.AutoConstructLinear)
	s.Refresh()
	assert.Equal(t, s.Position(0), s.FollowingHandle(0))
	assert.Equal(t, spline.P3(1, 0, 0), s.PointAt(1))
	assert.InDelta(t, 0.5, s.PointAt(0.5).X, 1e-6)
}

func TestSample(t *testing.T) {
	s := buildOpen(spline.P3(0, 0, 0), spline.P3(1, 0, 0))
	samples := spline.Sample(s, spline.DefaultSamples)
	require.Len(t, samples, spline.DefaultSamples+1)
	assert.Equal(t, spline.P3(0, 0, 0), samples[0])
	assert.Equal(t, spline.P3(1, 0, 0), samples[len(samples)-1])

	assert.Nil(t, spline.Sample(New(), 10))
	assert.Nil(t, spline.Sample(s, 0))
}
