package session

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"csv-spline/internal/watch"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithoutFlagsKeepsConfig(t *testing.T) {
	f := newFixture(t, "x,y,z\n0,0,0\n1,1,1\n")
	cfg := f.session.Config()
	cfg.Strict = true
	cfg.AutoConstruct = false
	require.NoError(t, f.session.Apply(cfg))

	require.NoError(t, f.run(t, "cmd load -file points.csv"))
	assert.True(t, f.session.Config().Strict)
	assert.False(t, f.session.Config().AutoConstruct)
	assert.True(t, f.session.Generator().Options().Strict)

	require.NoError(t, f.run(t, "cmd load -strict=false"))
	assert.False(t, f.session.Config().Strict)
	assert.False(t, f.session.Config().AutoConstruct)
	assert.Equal(t, "points.csv", f.session.Config().CSVFile)
}

func TestApplyForwardsSamplesAndWatchPaths(t *testing.T) {
	f := newFixture(t, "x,y,z\n0,0,0\n1,1,1\n")
	samples := 0
	var watched []string
	f.session.SetDrawSamples = func(n int) { samples = n }
	f.session.OnWatchPathsChanged = func(paths []string) { watched = paths }

	cfg := f.session.Config()
	cfg.DrawSamples = 42
	cfg.CSVFile = "missing.csv"
	assert.Error(t, f.session.Apply(cfg))
	assert.Equal(t, 42, samples)
	assert.Contains(t, watched, filepath.Join(f.dir, "missing.csv"), "followed even though the rebuild failed")
}

func TestWatcherFollowsLoadedFile(t *testing.T) {
	f := newFixture(t, "x,y,z\n0,0,0\n1,1,1\n")
	sub := filepath.Join(f.dir, "sub")
	require.NoError(t, os.MkdirAll(sub, 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(f.dir, "config"), 0755))
	other := filepath.Join(sub, "other.csv")
	require.NoError(t, os.WriteFile(other, []byte("x,y,z\n0,0,0\n2,2,2\n"), 0644))

	log, _ := test.NewNullLogger()
	w, err := watch.New(log)
	require.NoError(t, err)
	defer w.Close()
	add := func(paths []string) {
		for _, p := range paths {
			require.NoError(t, w.Add(p))
		}
	}
	add(f.session.WatchPaths())
	f.session.OnWatchPathsChanged = add

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	require.NoError(t, f.run(t, "cmd load -file sub/other.csv"))
	h := f.session.Generator().Spline()
	require.Equal(t, 2, h.Count())

	require.NoError(t, os.WriteFile(other, []byte("x,y,z\n0,0,0\n1,1,1\n2,2,2\n"), 0644))
	assert.Eventually(t, func() bool {
		f.session.HandleChanged(w.Poll())
		return h.Count() == 3
	}, 5*time.Second, 20*time.Millisecond)
}

func TestWriteSummarySamplesCurves(t *testing.T) {
	f := newFixture(t, "x,y,z\n0,0,0\n1,1,1\n")
	require.NoError(t, f.session.Start())

	var buf bytes.Buffer
	f.session.WriteSummary(&buf, 10)
	out := buf.String()
	assert.Contains(t, out, "csv: 2 control points, loop=false")
	assert.Contains(t, out, "builder: 4 control points, loop=false")
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("  11 samples\n")))
}
