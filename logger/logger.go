// Package logger provides context-scoped, leveled, structured logging with a single output
// writer and a small field set, plus subsystem gating and context-threading.
package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

type Level int

const (
	LevelDebug Level = -2
	LevelVerbose Level = -1
	LevelInfo  Level = 0
	LevelWarn  Level = 1
	LevelError Level = 2
	LevelFatal Level = 3
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBG"
	case LevelVerbose:
		return "VERB"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERRO"
	case LevelFatal:
		return "FATL"
	}
	return "????"
}

type contextKey int

const (
	configKey contextKey = iota
	subSystemKey
)

// Config controls the minimum level logged and where entries are written.
type Config struct {
	MinLevel         Level
	Output           io.Writer
	IncludedSubSystems map[string]bool

	mutex sync.Mutex
}

// NewConfig creates a Config writing to stderr at minLevel and above.
func NewConfig(minLevel Level) *Config {
	return &Config{MinLevel: minLevel, Output: os.Stderr}
}

// NewDevelopmentConfig creates a verbose Config suitable for local development.
func NewDevelopmentConfig() *Config {
	return NewConfig(LevelVerbose)
}

// EnableSubSystem restricts subsystem-scoped logging to only the named subsystems. With no
// subsystems enabled, logs from every subsystem are included.
func (c *Config) EnableSubSystem(name string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.IncludedSubSystems == nil {
		c.IncludedSubSystems = make(map[string]bool)
	}
	c.IncludedSubSystems[name] = true
}

var defaultConfig = NewConfig(LevelInfo)

// ContextWithLogConfig attaches config to ctx for all logging beneath it.
func ContextWithLogConfig(ctx context.Context, config *Config) context.Context {
	return context.WithValue(ctx, configKey, config)
}

// ContextWithNoLogger returns a context that suppresses all logging.
func ContextWithNoLogger(ctx context.Context) context.Context {
	return ContextWithLogConfig(ctx, &Config{Output: io.Discard, MinLevel: LevelFatal + 1})
}

// ContextWithLogSubSystem attaches a subsystem name used to scope and label log entries.
func ContextWithLogSubSystem(ctx context.Context, subsystem string) context.Context {
	return context.WithValue(ctx, subSystemKey, subsystem)
}

func configFrom(ctx context.Context) *Config {
	if v := ctx.Value(configKey); v != nil {
		if c, ok := v.(*Config); ok {
			return c
		}
	}
	return defaultConfig
}

func subSystemFrom(ctx context.Context) string {
	if v := ctx.Value(subSystemKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func log(ctx context.Context, level Level, fields []Field, format string, values ...interface{}) {
	config := configFrom(ctx)
	if level < config.MinLevel {
		return
	}

	subsystem := subSystemFrom(ctx)
	if len(subsystem) > 0 && len(config.IncludedSubSystems) > 0 && !config.IncludedSubSystems[subsystem] {
		return
	}

	config.mutex.Lock()
	defer config.mutex.Unlock()

	if config.Output == nil {
		return
	}

	message := fmt.Sprintf(format, values...)

	var fieldText string
	for _, field := range fields {
		fieldText += fmt.Sprintf(" %s=%s", field.Name(), field.ValueJSON())
	}

	timestamp := time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
	if len(subsystem) > 0 {
		fmt.Fprintf(config.Output, "%s %s [%s] %s%s\n", timestamp, level, subsystem, message, fieldText)
	} else {
		fmt.Fprintf(config.Output, "%s %s %s%s\n", timestamp, level, message, fieldText)
	}
}

func Debug(ctx context.Context, format string, values ...interface{}) {
	log(ctx, LevelDebug, nil, format, values...)
}

func Verbose(ctx context.Context, format string, values ...interface{}) {
	log(ctx, LevelVerbose, nil, format, values...)
}

func Info(ctx context.Context, format string, values ...interface{}) {
	log(ctx, LevelInfo, nil, format, values...)
}

func Warn(ctx context.Context, format string, values ...interface{}) {
	log(ctx, LevelWarn, nil, format, values...)
}

func Error(ctx context.Context, format string, values ...interface{}) {
	log(ctx, LevelError, nil, format, values...)
}

func Fatal(ctx context.Context, format string, values ...interface{}) {
	log(ctx, LevelFatal, nil, format, values...)
	os.Exit(1)
}

func InfoWithFields(ctx context.Context, fields []Field, format string, values ...interface{}) {
	log(ctx, LevelInfo, fields, format, values...)
}

func WarnWithFields(ctx context.Context, fields []Field, format string, values ...interface{}) {
	log(ctx, LevelWarn, fields, format, values...)
}

func ErrorWithFields(ctx context.Context, fields []Field, format string, values ...interface{}) {
	log(ctx, LevelError, fields, format, values...)
}

func VerboseWithFields(ctx context.Context, fields []Field, format string, values ...interface{}) {
	log(ctx, LevelVerbose, fields, format, values...)
}
