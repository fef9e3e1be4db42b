// Package logging configures the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/arthur-debert/treemv/pkg/errors"
	"github.com/arthur-debert/treemv/pkg/paths"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogFileName is the name of the log file under the state directory
const LogFileName = "treemv.log"

// configured is set once Setup has installed the global logger
var configured atomic.Bool

// Options controls Setup
type Options struct {
	// Verbosity: 0 warn, 1 info, 2 debug, 3 and above trace
	Verbosity int

	// Console receives human-readable output; os.Stderr when nil
	Console io.Writer

	NoColor bool

	// LogFile receives JSON lines; StateDir/treemv.log when empty.
	// "-" disables the file.
	LogFile string
}

// SetupLogger configures the global logger for a command-line run:
// console on stderr plus the log file in the state directory.
func SetupLogger(verbosity int) {
	Setup(Options{Verbosity: verbosity, NoColor: termenv.EnvNoColor()})
}

// Setup replaces the global logger and returns the log file in use, or ""
// when logging goes to the console only.
func Setup(opts Options) string {
	zerolog.SetGlobalLevel(levelFor(opts.Verbosity))

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: time.Kitchen,
		NoColor:    opts.NoColor,
	}}

	logFile := opts.LogFile
	if logFile == "" {
		logFile = logFilePath()
	}
	var fileErr error
	if logFile != "-" {
		f, err := openLogFile(logFile)
		if err == nil {
			writers = append(writers, f)
		} else {
			fileErr = err
			logFile = ""
		}
	} else {
		logFile = ""
	}

	ctx := zerolog.New(io.MultiWriter(writers...)).With().Timestamp()
	if opts.Verbosity >= 2 {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()
	configured.Store(true)

	if fileErr != nil {
		log.Warn().Err(fileErr).Msg("Logging to console only")
	}
	log.Debug().Int("verbosity", opts.Verbosity).Str("logFile", logFile).Msg("Logger initialized")
	return logFile
}

func levelFor(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// GetLogger returns a logger tagged with the component name. Until Setup
// runs it returns a disabled logger, so library callers stay silent.
func GetLogger(component string) zerolog.Logger {
	if !configured.Load() {
		return zerolog.Nop()
	}
	return log.With().Str("component", component).Logger()
}

func logFilePath() string {
	return filepath.Join(paths.StateDir(), LogFileName)
}

func openLogFile(p string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return nil, errors.Wrap(err, errors.ErrDirCreate, "failed to create log directory").
			WithDetail("path", filepath.Dir(p))
	}
	f, err := os.OpenFile(p, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileAccess, "failed to open log file").
			WithDetail("path", p)
	}
	return f, nil
}

// LogOperationStart logs at debug level that operation began and returns
// the func that logs its completion with the elapsed time.
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().Str("operation", operation).Msg("Operation started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}
