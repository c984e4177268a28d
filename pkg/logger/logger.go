package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu   sync.RWMutex
	base = newBase(os.Stderr, zerolog.InfoLevel)
)

func newBase(w io.Writer, level zerolog.Level) zerolog.Logger {
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// Init настраивает общий логгер: уровень берётся из строки (debug, info, warn, error),
// неизвестный уровень превращается в info
func Init(level string, w io.Writer) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	if w == nil {
		w = os.Stderr
	}

	mu.Lock()
	base = newBase(w, lvl)
	mu.Unlock()
}

// SetOutput подменяет логгер целиком (в тестах удобно zerolog.Nop())
func SetOutput(l zerolog.Logger) {
	mu.Lock()
	base = l
	mu.Unlock()
}

// With возвращает логгер компонента
func With(component string) zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base.With().Str("component", component).Logger()
}

func current() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := base
	return &l
}

func Debug(format string, v ...interface{}) {
	current().Debug().Msgf(format, v...)
}

func Info(format string, v ...interface{}) {
	current().Info().Msgf(format, v...)
}

func Warn(format string, v ...interface{}) {
	current().Warn().Msgf(format, v...)
}

func Error(format string, v ...interface{}) {
	current().Error().Msgf(format, v...)
}

// Fatal пишет сообщение и завершает процесс
func Fatal(format string, v ...interface{}) {
	current().Error().Msg(fmt.Sprintf(format, v...))
	os.Exit(1)
}
