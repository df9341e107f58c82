package csvload

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"csv-spline/internal/spline"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "points.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadWellFormed(t *testing.T) {
	path := writeCSV(t, "x,y,z\n0,0,0\n1.5, 2 ,-3\n4,5,6\n")
	res, err := Load(path, Options{})
	require.NoError(t, err)
	assert.Equal(t, spline.PointSequence{
		spline.P3(0, 0, 0),
		spline.P3(1.5, 2, -3),
		spline.P3(4, 5, 6),
	}, res.Points)
	assert.Empty(t, res.Skipped)
}

func TestLoadHeaderAlwaysSkipped(t *testing.T) {
	// A numeric first line is still a header.
	path := writeCSV(t, "9,9,9\n1,2,3\n")
	res, err := Load(path, Options{})
	require.NoError(t, err)
	assert.Equal(t, spline.PointSequence{spline.P3(1, 2, 3)}, res.Points)
}

func TestLoadSkipsShapeMalformedRows(t *testing.T) {
	path := writeCSV(t, "x,y,z\n1,2\n\n1,,3\n1,2,3,4\n 7 ,8,9\r\n")
	res, err := Load(path, Options{})
	require.NoError(t, err)
	assert.Equal(t, spline.PointSequence{spline.P3(7, 8, 9)}, res.Points)
	require.Len(t, res.Skipped, 4)
	lines := make([]int, len(res.Skipped))
	for i, s := range res.Skipped {
		lines[i] = s.Line
	}
	assert.Equal(t, []int{2, 3, 4, 5}, lines)
	assert.Contains(t, res.Skipped[2].Reason, "blank")
}

func TestLoadAllRowsMalformedYieldsEmpty(t *testing.T) {
	path := writeCSV(t, "x,y,z\n1,2\n , ,\n")
	res, err := Load(path, Options{})
	require.NoError(t, err)
	assert.Empty(t, res.Points)
	assert.Len(t, res.Skipped, 2)
}

func TestLoadStrictRejectsShapeMalformed(t *testing.T) {
	path := writeCSV(t, "x,y,z\n1,2,3\n1,2\n")
	_, err := Load(path, Options{Strict: true})
	require.Error(t, err)
	assert.True(t, errors.Is(err, spline.ErrParseFailure))
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 3, pe.Line)
	assert.Equal(t, path, pe.Path)
}

func TestLoadNonNumericFails(t *testing.T) {
	path := writeCSV(t, "x,y,z\n1,2,3\n4,five,6\n7,8,9\n")
	res, err := Load(path, Options{})
	require.Error(t, err)
	assert.Empty(t, res.Points, "no partial sequence on failure")
	assert.True(t, errors.Is(err, spline.ErrParseFailure))
	assert.True(t, errors.Is(err, strconv.ErrSyntax))
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 3, pe.Line)
	assert.Equal(t, 2, pe.Column)
	assert.Equal(t, "five", pe.Text)
	assert.Contains(t, err.Error(), "points.csv:3")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"), Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, spline.ErrFileNotFound))
	assert.False(t, errors.Is(err, spline.ErrReadFailure))
}

func TestLoadDirectoryIsReadFailure(t *testing.T) {
	_, err := Load(t.TempDir(), Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, spline.ErrReadFailure))
}

func TestLoadStripsBOM(t *testing.T) {
	path := writeCSV(t, "\ufeffx,y,z\n1,2,3\n")
	res, err := Load(path, Options{})
	require.NoError(t, err)
	assert.Equal(t, spline.PointSequence{spline.P3(1, 2, 3)}, res.Points)
}

func TestLoadNamedEncoding(t *testing.T) {
	// 0xB5 is the micro sign in windows-1252; only the header contains it.
	path := writeCSV(t, "x \xb5m,y,z\n1,2,3\n")
	res, err := Load(path, Options{Encoding: "windows-1252"})
	require.NoError(t, err)
	assert.Len(t, res.Points, 1)

	_, err = Load(path, Options{Encoding: "no-such-encoding"})
	assert.True(t, errors.Is(err, spline.ErrReadFailure))
}

func TestParseReader(t *testing.T) {
	res, err := Parse(strings.NewReader("h\n1,1,1"), Options{})
	require.NoError(t, err)
	assert.Equal(t, spline.PointSequence{spline.P3(1, 1, 1)}, res.Points)
}

func TestResolvePath(t *testing.T) {
	p, err := ResolvePath("Assets", "Data/oval_points.csv")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("Assets", "Data", "oval_points.csv"), p)

	abs := filepath.Join(t.TempDir(), "a.csv")
	p, err = ResolvePath("Assets", abs)
	require.NoError(t, err)
	assert.Equal(t, abs, p)

	p, err = ResolvePath("", "a.csv")
	require.NoError(t, err)
	assert.Equal(t, "a.csv", p)
}
