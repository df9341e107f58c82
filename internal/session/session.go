// Package session ties the CSV spline generator and the programmatic builder to one editor
// configuration and exposes them as terminal commands.
package session

import (
	"fmt"
	"io"
	"path/filepath"

	"csv-spline/internal/bezier"
	"csv-spline/internal/builder"
	"csv-spline/internal/generator"
	"csv-spline/internal/spline"
	"csv-spline/internal/splineconfig"

	"github.com/sirupsen/logrus"
)

// Curve names a spline for drawing.
type Curve struct {
	Name   string
	Spline spline.Handle
}

// Session is used from the main loop only.
type Session struct {
	cfg        splineconfig.Config
	configPath string
	log        logrus.FieldLogger
	generator  *generator.Generator
	builder    *builder.Builder

	// SetGridVisible and SetShowFPS are called by the grid and fps commands when set.
	SetGridVisible func(bool)
	SetShowFPS     func(bool)
	// SetDrawSamples receives draw_samples whenever a config is applied.
	SetDrawSamples func(int)
	// OnWatchPathsChanged receives WatchPaths after every Apply, so a watcher can follow a newly
	// selected CSV file.
	OnWatchPathsChanged func([]string)
}

// New creates both splines on the default engine. configPath is where Reload and the save
// command read and write cfg.
func New(cfg splineconfig.Config, configPath string, log logrus.FieldLogger) *Session {
	csvSpline, manual := bezier.New(), bezier.New()
	return &Session{
		cfg:        cfg,
		configPath: configPath,
		log:        log,
		generator:  generator.New(csvSpline, cfg.GeneratorOptions(), log.WithFields(logrus.Fields{"spline": csvSpline.ID(), "component": "csv"})),
		builder:    builder.New(manual, log.WithFields(logrus.Fields{"spline": manual.ID(), "component": "builder"})),
	}
}

// Config returns the active configuration.
func (s *Session) Config() splineconfig.Config {
	return s.cfg
}

// Generator returns the CSV spline generator.
func (s *Session) Generator() *generator.Generator {
	return s.generator
}

// Builder returns the programmatic spline builder.
func (s *Session) Builder() *builder.Builder {
	return s.builder
}

// Curves returns the splines to draw, CSV spline first.
func (s *Session) Curves() []Curve {
	return []Curve{
		{Name: "csv", Spline: s.generator.Spline()},
		{Name: "builder", Spline: s.builder.Spline()},
	}
}

// Start runs the start-up hooks: the builder's demo spline and a first CSV rebuild. A failed
// rebuild is logged and returned but leaves the builder spline in place.
func (s *Session) Start() error {
	if err := s.builder.Start(); err != nil {
		return err
	}
	return s.generator.Rebuild()
}

// Reload re-reads the config file and applies it, rebuilding the CSV spline.
func (s *Session) Reload() error {
	cfg, err := splineconfig.Load(s.configPath)
	if err != nil {
		s.log.WithError(err).Error("Failed to reload config")
		return err
	}
	return s.Apply(cfg)
}

// Apply replaces the configuration and rebuilds the CSV spline with it.
func (s *Session) Apply(cfg splineconfig.Config) error {
	s.cfg = cfg
	if s.SetGridVisible != nil {
		s.SetGridVisible(cfg.GridVisible)
	}
	if s.SetShowFPS != nil {
		s.SetShowFPS(cfg.ShowFPS)
	}
	if s.SetDrawSamples != nil {
		s.SetDrawSamples(cfg.DrawSamples)
	}
	err := s.generator.SetOptions(cfg.GeneratorOptions())
	// The path is followed even when the rebuild failed, so creating the file later still rebuilds.
	if s.OnWatchPathsChanged != nil {
		s.OnWatchPathsChanged(s.WatchPaths())
	}
	return err
}

// WatchPaths returns the files whose changes should trigger HandleChanged.
func (s *Session) WatchPaths() []string {
	paths := []string{s.configPath}
	if p, err := s.generator.Path(); err == nil {
		paths = append(paths, p)
	}
	return paths
}

// HandleChanged reacts to changed files: a config change reloads everything, a CSV change
// rebuilds the CSV spline. Errors are already logged by the operations themselves.
func (s *Session) HandleChanged(paths []string) {
	if len(paths) == 0 {
		return
	}
	configAbs, _ := filepath.Abs(s.configPath)
	csvPath, _ := s.generator.Path()
	csvAbs, _ := filepath.Abs(csvPath)
	rebuild := false
	for _, p := range paths {
		switch p {
		case configAbs:
			_ = s.Reload()
			return
		case csvAbs:
			rebuild = true
		}
	}
	if rebuild {
		_ = s.generator.Rebuild()
	}
}

// WriteSummary prints each curve's point count, loop state, a few sampled points and the number
// of samples drawn for it.
func (s *Session) WriteSummary(w io.Writer, samples int) {
	for _, c := range s.Curves() {
		fmt.Fprintf(w, "%s: %d control points, loop=%t\n", c.Name, c.Spline.Count(), c.Spline.Loop())
		if c.Spline.Count() == 0 {
			continue
		}
		for _, t := range []float32{0, 0.5, 1} {
			fmt.Fprintf(w, "  t=%.1f %v\n", t, c.Spline.PointAt(t))
		}
		fmt.Fprintf(w, "  %d samples\n", len(spline.Sample(c.Spline, samples)))
	}
}
