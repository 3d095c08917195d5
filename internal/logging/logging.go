package logging

import (
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

var (
	Red    = color.New(color.FgRed).SprintFunc()
	Green  = color.New(color.FgGreen).SprintFunc()
	Yellow = color.New(color.FgYellow).SprintFunc()
)

// Log traces internal steps. It stays disabled unless Init turns on debug.
var Log = zerolog.Nop()

func Success(msg string) string {
	return Green("[SUCCESS] ") + msg
}

func Warning(msg string) string {
	return Yellow("[WARNING] ") + msg
}

func Failure(msg string) string {
	return Red("[FAILURE] ") + msg
}

// Init points Log at w. Without debug every event is dropped.
func Init(debug bool, w io.Writer) {
	if !debug {
		Log = zerolog.Nop()
		return
	}
	Log = zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    color.NoColor,
	}).Level(zerolog.DebugLevel).With().Timestamp().Logger()
}
