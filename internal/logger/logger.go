package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

// TimestampFormat is used on the console and in the stored lines.
const TimestampFormat = "2006-01-02 15:04:05"

// Logger is a logrus logger that also keeps every entry as a line of text in memory (shown by the
// terminal) and, when a path is set, appends it to a file on disk.
type Logger struct {
	*logrus.Logger
	path  string
	mu    sync.Mutex
	lines []string
}

// New returns a Logger at the given level ("debug", "info", ...; empty means info) that writes
// prefixed console output to stderr. path may be empty to disable the log file; otherwise its
// directory is created.
func New(level, path string) (*Logger, error) {
	lvl := logrus.InfoLevel
	if level != "" {
		var err error
		lvl, err = logrus.ParseLevel(level)
		if err != nil {
			return nil, err
		}
	}
	base := logrus.New()
	base.SetOutput(os.Stderr)
	base.SetLevel(lvl)
	base.SetFormatter(&prefixed.TextFormatter{
		TimestampFormat: TimestampFormat,
		FullTimestamp:   true,
	})
	if path != "" {
		_ = os.MkdirAll(filepath.Dir(path), 0755)
	}
	l := &Logger{Logger: base, path: path}
	base.AddHook(l)
	return l, nil
}

// Levels implements logrus.Hook; every level is captured.
func (l *Logger) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire implements logrus.Hook. Each entry is stored as "[timestamp] LEVEL message key=value ...".
func (l *Logger) Fire(e *logrus.Entry) error {
	line := formatLine(e)

	l.mu.Lock()
	l.lines = append(l.lines, line)
	l.mu.Unlock()

	if l.path == "" {
		return nil
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil
	}
	_, _ = f.WriteString(line + "\n")
	_ = f.Close()
	return nil
}

func formatLine(e *logrus.Entry) string {
	var b strings.Builder
	b.WriteString("[" + e.Time.Format(TimestampFormat) + "] ")
	b.WriteString(strings.ToUpper(e.Level.String()))
	b.WriteString(" " + e.Message)
	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.Data[k])
	}
	return b.String()
}

// Lines returns a copy of all stored lines.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}
