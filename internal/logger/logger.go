package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

type LogBuild struct {
	writer io.Writer
	level  string
	format string
	fields map[string]string
}

func New() *LogBuild {
	return &LogBuild{
		writer: os.Stderr,
		level:  "info",
		format: FormatConsole,
		fields: map[string]string{},
	}
}

func (build *LogBuild) FromWriter(w io.Writer) *LogBuild {
	build.writer = w
	return build
}

func (build *LogBuild) Level(level string) *LogBuild {
	build.level = level
	return build
}

func (build *LogBuild) Format(format string) *LogBuild {
	build.format = format
	return build
}

// With adds a field to every event the logger writes
func (build *LogBuild) With(key, value string) *LogBuild {
	build.fields[key] = value
	return build
}

func (build *LogBuild) Make() (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(build.level)))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("parsing log level: %w", err)
	}
	if level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	w := build.writer
	switch strings.ToLower(build.format) {
	case FormatJSON:
	case FormatConsole, "":
		w = zerolog.ConsoleWriter{Out: build.writer, TimeFormat: "15:04:05", NoColor: true}
	default:
		return zerolog.Nop(), fmt.Errorf("unknown log format %q", build.format)
	}

	ctx := zerolog.New(w).Level(level).With().Timestamp()
	for k, v := range build.fields {
		ctx = ctx.Str(k, v)
	}
	return ctx.Logger(), nil
}
