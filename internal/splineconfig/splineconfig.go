package splineconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"csv-spline/internal/generator"

	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"
)

// ConfigPath is the path to the editor config file, relative to the process working directory.
const ConfigPath = "config/splines.yaml"

// Config holds the CSV spline generator settings and editor preferences. Persisted across runs.
type Config struct {
	DataDir       string `yaml:"data_dir"`
	CSVFile       string `yaml:"csv_file"`
	Encoding      string `yaml:"encoding,omitempty"`
	AutoConstruct bool   `yaml:"auto_construct"`
	Strict        bool   `yaml:"strict"`
	// Watch rebuilds the spline whenever the CSV or this file changes on disk.
	Watch       bool   `yaml:"watch"`
	DrawSamples int    `yaml:"draw_samples"`
	GridVisible bool   `yaml:"grid_visible"`
	ShowFPS     bool   `yaml:"show_fps"`
	LogLevel    string `yaml:"log_level"`
	LogFile     string `yaml:"log_file"`
}

// Default returns defaults: Assets/Data/oval_points.csv, auto construct on, 100 draw samples, grid on.
func Default() Config {
	g := generator.DefaultOptions()
	return Config{
		DataDir:       g.DataDir,
		CSVFile:       g.CSVFile,
		AutoConstruct: g.AutoConstruct,
		Watch:         true,
		DrawSamples:   100,
		GridVisible:   true,
		LogLevel:      "info",
		LogFile:       "logs/splines.txt",
	}
}

// Load reads the config at path. A missing file yields Default() and no error. A file that does not
// parse yields Default() and the parse error so the caller can report it. Fields absent from the
// file keep their default values.
func Load(path string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return c, nil
		}
		return c, err
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Default(), fmt.Errorf("parse %s: %w", path, err)
	}
	if c.DrawSamples <= 0 {
		c.DrawSamples = Default().DrawSamples
	}
	return c, nil
}

// Save writes c to path, creating the parent directory if needed.
func Save(path string, c Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Merge returns c with every non-zero field of overrides copied over it. Booleans can only be
// turned on this way.
func Merge(c, overrides Config) (Config, error) {
	if err := copier.CopyWithOption(&c, &overrides, copier.Option{IgnoreEmpty: true}); err != nil {
		return c, err
	}
	return c, nil
}

// GeneratorOptions maps the config onto generator options.
func (c Config) GeneratorOptions() generator.Options {
	return generator.Options{
		DataDir:       c.DataDir,
		CSVFile:       c.CSVFile,
		Encoding:      c.Encoding,
		Strict:        c.Strict,
		AutoConstruct: c.AutoConstruct,
	}
}
