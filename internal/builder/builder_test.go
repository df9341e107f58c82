package builder

import (
	"errors"
	"testing"

	"csv-spline/internal/spline"
	"csv-spline/internal/spline/splinetest"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate(t *testing.T) {
	rec := splinetest.NewRecorder()
	log, _ := test.NewNullLogger()
	b := New(rec, log)

	require.NoError(t, b.Create(DemoPoints()))
	assert.Equal(t, DemoPoints(), rec.Points)
	assert.Equal(t, spline.AutoConstructSmooth, rec.AutoMode)
	assert.True(t, rec.AutoNormals)
	assert.Equal(t, "initialize 4", rec.Calls[0])
	assert.Equal(t, "refresh", rec.Calls[len(rec.Calls)-1])
}

func TestCreateNeedsTwoPoints(t *testing.T) {
	for _, points := range [][]spline.Point3D{nil, {spline.P3(1, 2, 3)}} {
		rec := splinetest.NewRecorder(spline.P3(5, 5, 5), spline.P3(6, 6, 6))
		log, hook := test.NewNullLogger()
		b := New(rec, log)

		err := b.Create(points)
		assert.True(t, errors.Is(err, spline.ErrValidationFailure))
		assert.Empty(t, rec.Calls)
		assert.Len(t, rec.Points, 2)
		require.NotNil(t, hook.LastEntry())
		assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	}
}

func TestAppend(t *testing.T) {
	rec := splinetest.NewRecorder(spline.P3(0, 0, 0), spline.P3(1, 0, 0))
	b := New(rec, nil)
	b.Append(spline.P3(2, 0, 0))
	assert.Equal(t, []spline.Point3D{spline.P3(0, 0, 0), spline.P3(1, 0, 0), spline.P3(2, 0, 0)}, rec.Points)
	assert.Equal(t, []string{"insert 2", "position 2", "refresh"}, rec.Calls)
}

func TestRemoveLast(t *testing.T) {
	rec := splinetest.NewRecorder(spline.P3(0, 0, 0), spline.P3(1, 0, 0), spline.P3(2, 0, 0))
	log, hook := test.NewNullLogger()
	b := New(rec, log)

	require.NoError(t, b.RemoveLast())
	assert.Equal(t, []spline.Point3D{spline.P3(0, 0, 0), spline.P3(1, 0, 0)}, rec.Points)

	rec.Reset()
	err := b.RemoveLast()
	assert.True(t, errors.Is(err, spline.ErrValidationFailure))
	assert.Empty(t, rec.Calls)
	assert.Len(t, rec.Points, 2)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestPointAtPassesThroughEngine(t *testing.T) {
	log, hook := test.NewNullLogger()
	b := New(nil, log)
	require.NoError(t, b.Start())

	points := DemoPoints()
	assert.Equal(t, points[0], b.PointAt(0))
	assert.Equal(t, points[len(points)-1], b.PointAt(1))
	assert.Equal(t, b.Spline().PointAt(0.25), b.PointAt(0.25))
	require.NotNil(t, hook.LastEntry())
	assert.Contains(t, hook.LastEntry().Message, "Point on spline")
}
