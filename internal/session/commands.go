package session

import (
	"flag"
	"fmt"

	"csv-spline/internal/commands"
	"csv-spline/internal/spline"
	"csv-spline/internal/splineconfig"
)

// Register adds the spline editor commands to reg.
func (s *Session) Register(reg *commands.Registry) {
	reg.Register("rebuild", "rebuild", nil, func([]string) error {
		return s.generator.Rebuild()
	})

	loadFS := commands.NewFlagSet("load")
	file := loadFS.String("file", "", "CSV file, relative to the data dir")
	auto := loadFS.Bool("auto", true, "auto construct a smooth spline")
	strict := loadFS.Bool("strict", false, "reject malformed rows")
	reg.Register("load", "load -file <path> [-auto=bool] [-strict=bool]", loadFS, func([]string) error {
		cfg := s.cfg
		// Only flags given on this line override the config.
		loadFS.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "file":
				if *file != "" {
					cfg.CSVFile = *file
				}
			case "auto":
				cfg.AutoConstruct = *auto
			case "strict":
				cfg.Strict = *strict
			}
		})
		return s.Apply(cfg)
	})

	reg.Register("points", "points", nil, func([]string) error {
		points := s.generator.Points()
		s.log.Infof("%d points loaded", len(points))
		for i, p := range points {
			s.log.Infof("Point %d: %v", i, p)
		}
		return nil
	})

	addFS := commands.NewFlagSet("add")
	x := addFS.Float64("x", 0, "x")
	y := addFS.Float64("y", 0, "y")
	z := addFS.Float64("z", 0, "z")
	reg.Register("add", "add -x <n> -y <n> -z <n>", addFS, func([]string) error {
		p := spline.P3(float32(*x), float32(*y), float32(*z))
		s.builder.Append(p)
		s.log.Infof("Added point %v, %d points", p, s.builder.Spline().Count())
		return nil
	})

	reg.Register("removelast", "removelast", nil, func([]string) error {
		return s.builder.RemoveLast()
	})

	sampleFS := commands.NewFlagSet("sample")
	t := sampleFS.Float64("t", 0.5, "curve parameter in [0,1]")
	reg.Register("sample", "sample -t <0..1>", sampleFS, func([]string) error {
		if *t < 0 || *t > 1 {
			return fmt.Errorf("%w: t must be in [0,1], got %g", spline.ErrValidationFailure, *t)
		}
		for _, c := range s.Curves() {
			if c.Spline.Count() == 0 {
				continue
			}
			s.log.Infof("%s at t=%g: %v", c.Name, *t, c.Spline.PointAt(float32(*t)))
		}
		return nil
	})

	gridFS := commands.NewFlagSet("grid")
	gridOn := gridFS.Bool("on", true, "show the grid")
	reg.Register("grid", "grid -on=bool", gridFS, func([]string) error {
		s.cfg.GridVisible = *gridOn
		if s.SetGridVisible != nil {
			s.SetGridVisible(*gridOn)
		}
		return nil
	})

	fpsFS := commands.NewFlagSet("fps")
	fpsOn := fpsFS.Bool("on", true, "show the FPS counter")
	reg.Register("fps", "fps -on=bool", fpsFS, func([]string) error {
		s.cfg.ShowFPS = *fpsOn
		if s.SetShowFPS != nil {
			s.SetShowFPS(*fpsOn)
		}
		return nil
	})

	reg.Register("save", "save", nil, func([]string) error {
		if err := splineconfig.Save(s.configPath, s.cfg); err != nil {
			return err
		}
		s.log.Infof("Saved config to %s", s.configPath)
		return nil
	})
}
