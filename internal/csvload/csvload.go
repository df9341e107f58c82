// Package csvload reads 3D control points from a comma-separated text file.
//
// The first line is a header and is always skipped. Each following line must hold exactly three
// non-blank fields (x,y,z). Rows with another shape are skipped and reported in Result.Skipped,
// or rejected in strict mode. A field that is present but not a number fails the whole load.
package csvload

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"csv-spline/internal/spline"

	"github.com/mitchellh/go-homedir"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	delimiter = ","
	columns   = 3
)

// Options controls decoding and the policy for shape-malformed rows.
type Options struct {
	// Encoding is a WHATWG encoding label (e.g. "windows-1252"). Empty means UTF-8.
	Encoding string
	// Strict turns a skipped row into a parse failure.
	Strict bool
}

// SkippedRow records a data row that was not turned into a point.
type SkippedRow struct {
	Line   int
	Reason string
}

// Result is the outcome of a successful load.
type Result struct {
	Points  spline.PointSequence
	Skipped []SkippedRow
}

// ParseError reports the row that stopped a load. It matches spline.ErrParseFailure and, when set,
// the underlying strconv error.
type ParseError struct {
	Path   string
	Line   int
	Column int // 1-based; 0 when the whole row is at fault
	Text   string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Column > 0 {
		return fmt.Sprintf("%s:%d: column %d: invalid number %q", e.Path, e.Line, e.Column, e.Text)
	}
	return fmt.Sprintf("%s:%d: malformed row %q: %v", e.Path, e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{spline.ErrParseFailure}
	}
	return []error{spline.ErrParseFailure, e.Err}
}

// ResolvePath returns file joined onto dataDir unless file is absolute. A leading ~ in either is
// expanded to the home directory.
func ResolvePath(dataDir, file string) (string, error) {
	file, err := homedir.Expand(file)
	if err != nil {
		return "", err
	}
	if filepath.IsAbs(file) || dataDir == "" {
		return filepath.Clean(file), nil
	}
	dataDir, err = homedir.Expand(dataDir)
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, file), nil
}

// Load reads the file at path. Errors match spline.ErrFileNotFound, spline.ErrReadFailure or
// spline.ErrParseFailure. On error no points are returned.
func Load(path string, opts Options) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Result{}, fmt.Errorf("%w: %s", spline.ErrFileNotFound, path)
		}
		return Result{}, fmt.Errorf("%w: %w", spline.ErrReadFailure, err)
	}
	defer f.Close()

	r, err := decoder(f, opts.Encoding)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", spline.ErrReadFailure, err)
	}
	res, err := Parse(r, opts)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return Result{}, err
	}
	return res, nil
}

func decoder(r io.Reader, label string) (io.Reader, error) {
	var enc encoding.Encoding = unicode.UTF8
	if label != "" {
		e, err := htmlindex.Get(label)
		if err != nil {
			return nil, fmt.Errorf("encoding %q: %w", label, err)
		}
		enc = e
	}
	// A byte order mark overrides the configured encoding and is dropped.
	return transform.NewReader(r, unicode.BOMOverride(enc.NewDecoder())), nil
}

// Parse reads CSV rows from r with the same rules as Load. Errors carry no path.
func Parse(r io.Reader, opts Options) (Result, error) {
	var res Result
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		if line == 1 {
			continue
		}
		text := scanner.Text()
		p, reason, err := parseRow(text, line)
		if err != nil {
			return Result{}, err
		}
		if reason != "" {
			if opts.Strict {
				return Result{}, &ParseError{Line: line, Text: text, Err: errors.New(reason)}
			}
			res.Skipped = append(res.Skipped, SkippedRow{Line: line, Reason: reason})
			continue
		}
		res.Points = append(res.Points, p)
	}
	if err := scanner.Err(); err != nil {
		return Result{}, fmt.Errorf("%w: %w", spline.ErrReadFailure, err)
	}
	return res, nil
}

// parseRow returns a skip reason for shape problems and an error for value problems.
func parseRow(text string, line int) (spline.Point3D, string, error) {
	fields := strings.Split(text, delimiter)
	if len(fields) != columns {
		return spline.Point3D{}, fmt.Sprintf("expected %d fields, got %d", columns, len(fields)), nil
	}
	var v [columns]float32
	for i, field := range fields {
		field = strings.TrimSpace(field)
		if field == "" {
			return spline.Point3D{}, fmt.Sprintf("field %d is blank", i+1), nil
		}
		f, err := strconv.ParseFloat(field, 32)
		if err != nil {
			return spline.Point3D{}, "", &ParseError{Line: line, Column: i + 1, Text: field, Err: err}
		}
		v[i] = float32(f)
	}
	return spline.P3(v[0], v[1], v[2]), "", nil
}
