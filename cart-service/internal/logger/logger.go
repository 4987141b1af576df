package logger

import (
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	once sync.Once
	log  zerolog.Logger
)

// Get returns the service logger. The first call wins; an optional debug
// flag lowers the level, later calls ignore arguments.
func Get(debug ...bool) zerolog.Logger {
	once.Do(func() {
		level := zerolog.InfoLevel
		if len(debug) > 0 && debug[0] {
			level = zerolog.DebugLevel
		}
		out := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		log = zerolog.New(out).Level(level).With().
			Timestamp().
			Str("service", "cart-service").
			Logger()
	})
	return log
}
