package logger

import (
	"io"
	"log"
	"os"
	"strings"
)

type Logger struct {
	l     *log.Logger
	debug bool
}

func New() *Logger { return NewWithLevel(os.Getenv("LOG_LEVEL")) }

// NewWithLevel enables Debugf only for level "debug".
func NewWithLevel(level string) *Logger {
	return &Logger{l: log.Default(), debug: strings.EqualFold(level, "debug")}
}

// Discard drops everything; handy in tests.
func Discard() *Logger { return &Logger{l: log.New(io.Discard, "", 0)} }

func (l *Logger) Infof(format string, args ...any) {
	l.l.Printf("[INFO] "+format, args...)
}
func (l *Logger) Warnf(format string, args ...any) {
	l.l.Printf("[WARN] "+format, args...)
}
func (l *Logger) Errorf(format string, args ...any) {
	l.l.Printf("[ERROR] "+format, args...)
}
func (l *Logger) Debugf(format string, args ...any) {
	if l.debug {
		l.l.Printf("[DEBUG] "+format, args...)
	}
}
