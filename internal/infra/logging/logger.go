package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// InitLogger configures the global logger. Output always goes to stdout and,
// when file is set, to a size-rotated log file as well.
func InitLogger(file string, maxSizeMB, maxBackups, maxAgeDays int, compress bool, level string) {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	var out io.Writer = os.Stdout
	if file != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   file,
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
			Compress:   compress,
		})
	}

	logger = zerolog.New(out).With().Timestamp().Logger()
	SetLogLevel(level)
}

// SetLogLevel changes the minimum level. Unknown levels fall back to info.
func SetLogLevel(level string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	logger = logger.Level(lvl)
}

// SetLoggerForTest swaps the global logger, typically for one writing to a buffer.
func SetLoggerForTest(l zerolog.Logger) {
	logger = l
}

func Debug(msg string, kv ...interface{}) { withFields(logger.Debug(), kv).Msg(msg) }

func Info(msg string, kv ...interface{}) { withFields(logger.Info(), kv).Msg(msg) }

func Warn(msg string, kv ...interface{}) { withFields(logger.Warn(), kv).Msg(msg) }

func Error(msg string, kv ...interface{}) { withFields(logger.Error(), kv).Msg(msg) }

// withFields attaches alternating key/value pairs to the event.
func withFields(e *zerolog.Event, kv []interface{}) *zerolog.Event {
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprint(kv[i])
		}
		if i+1 >= len(kv) {
			e = e.Interface(key, "(MISSING)")
			break
		}
		if err, ok := kv[i+1].(error); ok {
			e = e.AnErr(key, err)
			continue
		}
		e = e.Interface(key, kv[i+1])
	}
	return e
}
