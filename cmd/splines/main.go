package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"csv-spline/internal/commands"
	"csv-spline/internal/debug"
	"csv-spline/internal/graphics"
	"csv-spline/internal/logger"
	"csv-spline/internal/scene"
	"csv-spline/internal/session"
	"csv-spline/internal/splineconfig"
	"csv-spline/internal/terminal"
	"csv-spline/internal/watch"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	csvColor     = rl.Yellow
	builderColor = rl.SkyBlue
)

func main() {
	configPath := flag.String("config", splineconfig.ConfigPath, "path to the YAML config file")
	var overrides splineconfig.Config
	flag.StringVar(&overrides.DataDir, "data-dir", "", "base directory for relative CSV paths")
	flag.StringVar(&overrides.CSVFile, "csv", "", "CSV file with x,y,z rows")
	flag.IntVar(&overrides.DrawSamples, "samples", 0, "segments drawn per curve")
	flag.StringVar(&overrides.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	headless := flag.Bool("headless", false, "load and sample the splines, print them, and exit")
	flag.Parse()

	if err := run(*configPath, overrides, *headless); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string, overrides splineconfig.Config, headless bool) error {
	cfg, cfgErr := splineconfig.Load(configPath)
	cfg, err := splineconfig.Merge(cfg, overrides)
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	if cfgErr != nil {
		log.WithError(cfgErr).Warn("Using default config")
	}

	sess := session.New(cfg, configPath, log)
	startErr := sess.Start()
	if headless {
		sess.WriteSummary(os.Stdout, cfg.DrawSamples)
		return startErr
	}

	reg := commands.NewRegistry()
	sess.Register(reg)
	term := terminal.New(log, reg)

	scn := scene.New()
	scn.SetSamples(cfg.DrawSamples)
	scn.SetGridVisible(cfg.GridVisible)
	scn.AddCurve(sess.Generator().Spline(), csvColor)
	scn.AddCurve(sess.Builder().Spline(), builderColor)

	overlay := debug.New(sess.Curves)
	overlay.SetShowFPS(cfg.ShowFPS)
	sess.SetGridVisible = scn.SetGridVisible
	sess.SetShowFPS = overlay.SetShowFPS
	sess.SetDrawSamples = scn.SetSamples

	var watcher *watch.Watcher
	if cfg.Watch {
		watcher, err = startWatcher(sess, log)
		if err != nil {
			log.WithError(err).Warn("File watching disabled")
		} else {
			defer watcher.Close()
			sess.OnWatchPathsChanged = func(paths []string) {
				addWatchPaths(watcher, paths, log)
			}
		}
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if watcher != nil {
		go watcher.Run(ctx)
	}

	update := func() {
		term.Update()
		scn.Update(!term.IsOpen())
		if watcher != nil {
			sess.HandleChanged(watcher.Poll())
		}
	}
	draw := func() {
		scn.Draw()
		overlay.Draw()
		term.Draw()
	}
	graphics.Run("csv-spline", update, draw)
	return nil
}

func startWatcher(sess *session.Session, log *logger.Logger) (*watch.Watcher, error) {
	w, err := watch.New(log)
	if err != nil {
		return nil, err
	}
	addWatchPaths(w, sess.WatchPaths(), log)
	return w, nil
}

// addWatchPaths adds paths to w; paths already watched are no-ops.
func addWatchPaths(w *watch.Watcher, paths []string, log *logger.Logger) {
	for _, p := range paths {
		if err := w.Add(p); err != nil {
			log.WithError(err).WithField("file", p).Warn("Cannot watch file")
		}
	}
}
