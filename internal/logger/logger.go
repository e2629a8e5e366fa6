package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/dvcrn/hrms-api-client/internal/env"
)

const (
	colorRed     = 31
	colorGreen   = 32
	colorYellow  = 33
	colorMagenta = 35

	colorBold = 1
)

var (
	once   sync.Once
	logger *zerolog.Logger
)

// Get returns the process-wide logger, configured from ENV and LOG_LEVEL on
// first use.
func Get() *zerolog.Logger {
	once.Do(func() {
		environment := env.GetOrDefault("ENV", "development")
		level := parseLevel(env.GetOrDefault("LOG_LEVEL", "info"))
		zerolog.SetGlobalLevel(level)
		logger = New(os.Stderr, environment, level)
	})
	return logger
}

// New builds a logger writing to w. Development environments get a
// colorised console writer, everything else gets JSON with UNIX timestamps.
func New(w io.Writer, environment string, level zerolog.Level) *zerolog.Logger {
	var zl zerolog.Logger
	switch environment {
	case "development", "dev", "":
		zl = zerolog.New(consoleWriter(w)).Level(level).With().Timestamp().Logger()
	default:
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		zl = zerolog.New(w).Level(level).With().Timestamp().Logger()
	}
	return &zl
}

// Nop returns a logger that discards everything, handy in tests.
func Nop() *zerolog.Logger {
	zl := zerolog.Nop()
	return &zl
}

func parseLevel(s string) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil || level == zerolog.NoLevel {
		fmt.Fprintf(os.Stderr, "Invalid LOG_LEVEL %q; defaulting to 'info'\n", s)
		return zerolog.InfoLevel
	}
	return level
}

func consoleWriter(w io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:         w,
		TimeFormat:  "2006-01-02 15:04:05",
		FormatLevel: formatLevel,
	}
}

func formatLevel(i interface{}) string {
	ll, ok := i.(string)
	if !ok {
		return strings.ToUpper(fmt.Sprintf("%-3.3s", fmt.Sprint(i)))
	}
	switch ll {
	case "trace":
		return colorize("TRC", colorMagenta)
	case "debug":
		return colorize("DBG", colorYellow)
	case "info":
		return colorize("INF", colorGreen)
	case "warn":
		return colorize("WRN", colorRed)
	case "error":
		return colorize("ERR", colorRed)
	case "fatal":
		return colorize("FTL", colorRed)
	case "panic":
		return colorize("PNC", colorRed)
	default:
		return colorize(strings.ToUpper(fmt.Sprintf("%-3.3s", ll)), colorBold)
	}
}

func colorize(s interface{}, c int) string {
	return fmt.Sprintf("\x1b[%dm%v\x1b[0m", c, s)
}
