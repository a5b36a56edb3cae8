// Package util provides low-level helpers shared by all other packages.
package util

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// LogLevel controls output verbosity.
type LogLevel int

const (
	LogQuiet   LogLevel = 0
	LogNormal  LogLevel = 1
	LogVerbose LogLevel = 2
	LogDebug   LogLevel = 3
)

// Logger writes levelled diagnostics to stderr through a zerolog
// console writer.  Chat output never goes through the logger.
type Logger struct {
	level      LogLevel
	output     io.Writer
	timestamps bool // if true, prepend HH:MM:SS.mmm timestamps
	fields     [][2]string

	mu sync.Mutex
	zl zerolog.Logger
}

// NewLogger returns a Logger that prints messages at or below the given
// verbosity (0 = quiet, 1 = normal, 2 = verbose, 3 = debug).
func NewLogger(verbosity int) *Logger {
	l := &Logger{
		level:      LogLevel(verbosity),
		output:     os.Stderr,
		timestamps: verbosity >= 3, // auto-enable timestamps in debug mode
	}
	l.rebuild()
	return l
}

// SetTimestamps enables or disables timestamp prefixes.
func (l *Logger) SetTimestamps(on bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.timestamps = on
	l.rebuild()
}

// SetOutput overrides the output writer (default: os.Stderr).
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output = w
	l.rebuild()
}

// Level returns the current log level.
func (l *Logger) Level() LogLevel { return l.level }

// With returns a child logger that tags every line with key=value.
func (l *Logger) With(key, value string) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	child := &Logger{
		level:      l.level,
		output:     l.output,
		timestamps: l.timestamps,
		fields:     append(append([][2]string(nil), l.fields...), [2]string{key, value}),
	}
	child.rebuild()
	return child
}

// Info prints when verbosity ≥ 1.  Rendered as INF.
func (l *Logger) Info(format string, args ...interface{}) {
	if l.level >= LogNormal {
		l.logger().Info().Msgf(format, args...)
	}
}

// Warn prints when verbosity ≥ 1.  Rendered as WRN.
func (l *Logger) Warn(format string, args ...interface{}) {
	if l.level >= LogNormal {
		l.logger().Warn().Msgf(format, args...)
	}
}

// Verbose prints when verbosity ≥ 2.  Rendered as DBG.
func (l *Logger) Verbose(format string, args ...interface{}) {
	if l.level >= LogVerbose {
		l.logger().Debug().Msgf(format, args...)
	}
}

// Debug prints when verbosity ≥ 3.  Rendered as TRC.
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.level >= LogDebug {
		l.logger().Trace().Msgf(format, args...)
	}
}

// Error always prints regardless of verbosity.  Rendered as ERR.
func (l *Logger) Error(format string, args ...interface{}) {
	l.logger().Error().Msgf(format, args...)
}

func (l *Logger) logger() *zerolog.Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	zl := l.zl
	return &zl
}

// rebuild recreates the zerolog pipeline; callers hold l.mu.
func (l *Logger) rebuild() {
	cw := zerolog.ConsoleWriter{
		Out:        zerolog.SyncWriter(l.output),
		NoColor:    true,
		TimeFormat: "15:04:05.000",
	}
	if !l.timestamps {
		cw.PartsExclude = []string{zerolog.TimestampFieldName}
	}

	ctx := zerolog.New(cw).Level(zerolog.TraceLevel).With()
	if l.timestamps {
		ctx = ctx.Timestamp()
	}
	for _, f := range l.fields {
		ctx = ctx.Str(f[0], f[1])
	}
	l.zl = ctx.Logger()
}
