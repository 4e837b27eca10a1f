package logging

import (
	"fmt"
	"log/slog"
	"os"
)

// Fields carries structured log attributes.
type Fields map[string]interface{}

// LoggerV2 is a structured JSON logger scoped to one component.
type LoggerV2 struct {
	component string
	handler   *slog.Logger
}

var root = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
	Level: slog.LevelDebug,
}))

// NewLoggerV2 creates a logger for the given component.
func NewLoggerV2(component string) *LoggerV2 {
	hostname, _ := os.Hostname()

	return &LoggerV2{
		component: component,
		handler: root.With(
			slog.String("component", component),
			slog.String("hostname", hostname),
		),
	}
}

func (l *LoggerV2) Debug(msg string, fields ...Fields) {
	l.handler.Debug(msg, attrs(fields)...)
}

func (l *LoggerV2) Info(msg string, fields ...Fields) {
	l.handler.Info(msg, attrs(fields)...)
}

func (l *LoggerV2) Warn(msg string, fields ...Fields) {
	l.handler.Warn(msg, attrs(fields)...)
}

func (l *LoggerV2) Error(msg string, fields ...Fields) {
	l.handler.Error(msg, attrs(fields)...)
}

// Fatal logs at error level and exits the process.
func (l *LoggerV2) Fatal(msg string, fields ...Fields) {
	l.handler.Error(msg, attrs(fields)...)
	os.Exit(1)
}

func attrs(fields []Fields) []any {
	var out []any
	for _, f := range fields {
		for k, v := range f {
			out = append(out, slog.Any(k, v))
		}
	}
	return out
}

// Info logs an unstructured message without a component scope.
func Info(msg string, fields ...Fields) {
	root.Info(msg, attrs(fields)...)
}

// Infof logs a formatted message without a component scope.
func Infof(format string, args ...interface{}) {
	root.Info(fmt.Sprintf(format, args...))
}
