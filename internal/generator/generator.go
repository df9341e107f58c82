// Package generator rebuilds a spline from a CSV file of control points.
package generator

import (
	"fmt"

	"csv-spline/internal/bezier"
	"csv-spline/internal/csvload"
	"csv-spline/internal/spline"

	"github.com/sirupsen/logrus"
)

// Options configures where points come from and how the spline is shaped after loading.
type Options struct {
	// DataDir is the base directory for a relative CSVFile.
	DataDir string
	CSVFile string
	// Encoding and Strict are passed to the CSV loader.
	Encoding string
	Strict   bool
	// AutoConstruct runs the engine's smooth construction after inserting points.
	AutoConstruct bool
}

// DefaultOptions mirrors the editor defaults: Data/oval_points.csv under Assets, auto construct on.
func DefaultOptions() Options {
	return Options{
		DataDir:       "Assets",
		CSVFile:       "Data/oval_points.csv",
		AutoConstruct: true,
	}
}

// Generator owns the options and the last loaded points; the spline handle is borrowed.
type Generator struct {
	spline spline.Handle
	opts   Options
	log    logrus.FieldLogger
	points spline.PointSequence
}

// New returns a generator for h. A nil h is replaced by a new default engine spline.
func New(h spline.Handle, opts Options, log logrus.FieldLogger) *Generator {
	if h == nil {
		h = bezier.New()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Generator{spline: h, opts: opts, log: log}
}

// Spline returns the handle being rebuilt.
func (g *Generator) Spline() spline.Handle {
	return g.spline
}

// Options returns the current options.
func (g *Generator) Options() Options {
	return g.opts
}

// Points returns a copy of the points from the last successful rebuild.
func (g *Generator) Points() spline.PointSequence {
	return g.points.Clone()
}

// SetOptions stores opts and rebuilds, the same way an inspector change re-validates the component.
func (g *Generator) SetOptions(opts Options) error {
	g.opts = opts
	return g.Rebuild()
}

// Path returns the resolved CSV path for the current options.
func (g *Generator) Path() (string, error) {
	return csvload.ResolvePath(g.opts.DataDir, g.opts.CSVFile)
}

// Rebuild loads the CSV file and replaces every control point of the spline with its rows.
// On any load failure, or when no rows were usable, the spline is left exactly as it was.
func (g *Generator) Rebuild() error {
	path, err := g.Path()
	if err != nil {
		g.log.WithError(err).Error("Failed to resolve CSV path")
		return fmt.Errorf("resolve csv path: %w", err)
	}
	log := g.log.WithField("file", path)

	res, err := csvload.Load(path, csvload.Options{Encoding: g.opts.Encoding, Strict: g.opts.Strict})
	if err != nil {
		log.WithError(err).Error("Failed to load points from CSV file")
		return err
	}
	for _, s := range res.Skipped {
		log.WithField("line", s.Line).Warnf("Skipped CSV row: %s", s.Reason)
	}
	if len(res.Points) == 0 {
		err := fmt.Errorf("%w: %s has no usable rows", spline.ErrValidationFailure, path)
		log.WithError(err).Error("Refusing to rebuild spline")
		return err
	}

	g.apply(res.Points, log)
	g.points = res.Points
	log.WithFields(logrus.Fields{
		"points":  len(res.Points),
		"skipped": len(res.Skipped),
		"loop":    g.spline.Loop(),
	}).Info("Rebuilt spline from CSV")
	return nil
}

// apply drains the spline from the front, then refills it at the tail. The order of operations
// matches what the engine expects: positions, handle modes, construction, loop, refresh.
func (g *Generator) apply(points spline.PointSequence, log logrus.FieldLogger) {
	h := g.spline
	for h.Count() > 0 {
		h.RemovePointAt(0)
	}
	for _, p := range points {
		h.InsertNewPointAt(h.Count(), p)
	}
	for i := 0; i < h.Count(); i++ {
		h.SetHandleMode(i, spline.HandleMirrored)
		log.Debugf("Point %d: %v", i, h.Position(i))
	}
	if g.opts.AutoConstruct {
		h.AutoConstruct()
	}
	h.SetLoop(points.Closed())
	h.Refresh()
}
