// Package logger — минимальный уровневый логгер сервиса поверх стандартного log.
package logger

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"strings"
	"sync"
	"time"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	mu           sync.RWMutex
	currentLevel = LevelInfo
	out          = stdlog.New(os.Stdout, "", 0)
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel разбирает имя уровня без учёта регистра.
func ParseLevel(level string) (Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return LevelDebug, true
	case "INFO":
		return LevelInfo, true
	case "WARN", "WARNING":
		return LevelWarn, true
	case "ERROR":
		return LevelError, true
	}
	return LevelInfo, false
}

// SetLevel меняет минимальный уровень. Неизвестные значения игнорируются.
func SetLevel(level string) {
	lvl, ok := ParseLevel(level)
	if !ok {
		return
	}
	mu.Lock()
	currentLevel = lvl
	mu.Unlock()
}

// SetOutput перенаправляет вывод (используется в тестах).
func SetOutput(w io.Writer) {
	mu.Lock()
	out = stdlog.New(w, "", 0)
	mu.Unlock()
}

func log(level Level, format string, v ...any) {
	mu.RLock()
	lvl, l := currentLevel, out
	mu.RUnlock()
	if level < lvl {
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	l.Println(fmt.Sprintf("[%s] [%s] ", timestamp, level.String()) + fmt.Sprintf(format, v...))
}

func Debug(format string, v ...any) {
	log(LevelDebug, format, v...)
}

func Info(format string, v ...any) {
	log(LevelInfo, format, v...)
}

func Warn(format string, v ...any) {
	log(LevelWarn, format, v...)
}

func Error(format string, v ...any) {
	log(LevelError, format, v...)
}
