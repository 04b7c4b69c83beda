package macro

import (
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LogLevel int

const (
	LogDebug LogLevel = iota
	LogInfo
	LogWarn
	LogError
	LogOff
)

func (l LogLevel) String() string {
	switch l {
	case LogDebug:
		return "DEBUG"
	case LogInfo:
		return "INFO"
	case LogWarn:
		return "WARN"
	case LogError:
		return "ERROR"
	case LogOff:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

func (l LogLevel) zapLevel() zapcore.Level {
	switch l {
	case LogDebug:
		return zapcore.DebugLevel
	case LogWarn:
		return zapcore.WarnLevel
	case LogError:
		return zapcore.ErrorLevel
	case LogOff:
		return zapcore.FatalLevel + 1
	default:
		return zapcore.InfoLevel
	}
}

var logLevels = map[string]LogLevel{
	"debug": LogDebug,
	"info":  LogInfo,
	"warn":  LogWarn,
	"error": LogError,
	"off":   LogOff,
}

type Fields map[string]interface{}

// Logger is a levelled, field-carrying logger backed by zap.
type Logger struct {
	sugar *zap.SugaredLogger
	level *zap.AtomicLevel // nil when adopted from zap
}

var (
	globalLogger     *Logger
	globalLoggerMu   sync.RWMutex
	globalLoggerOnce sync.Once
)

func initGlobalLogger() {
	globalLoggerOnce.Do(func() {
		config := GetGlobalConfig()
		globalLogger = NewLogger(os.Stderr, parseLogLevel(config.LogLevel))
	})
}

func parseLogLevel(levelStr string) LogLevel {
	if level, ok := logLevels[strings.ToLower(strings.TrimSpace(levelStr))]; ok {
		return level
	}
	return LogInfo
}

// NewLogger writes console-encoded lines to w at or above level.
func NewLogger(w io.Writer, level LogLevel) *Logger {
	if w == nil {
		w = io.Discard
	}
	atom := zap.NewAtomicLevelAt(level.zapLevel())

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfig.CallerKey = zapcore.OmitKey

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.Lock(zapcore.AddSync(w)), atom)
	return &Logger{sugar: zap.New(core).Sugar(), level: &atom}
}

// FromZap adopts an existing zap logger. SetLevel has no effect on it; its
// level is whatever the zap configuration chose.
func FromZap(z *zap.Logger) *Logger {
	if z == nil {
		z = zap.NewNop()
	}
	return &Logger{sugar: z.Sugar()}
}

func (l *Logger) SetLevel(level LogLevel) {
	if l.level == nil {
		return
	}
	l.level.SetLevel(level.zapLevel())
}

func (l *Logger) IsDebugMode() bool {
	return l.sugar.Desugar().Core().Enabled(zapcore.DebugLevel)
}

func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{sugar: l.sugar.With(key, value), level: l.level}
}

func (l *Logger) WithFields(fields Fields) *Logger {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return &Logger{sugar: l.sugar.With(args...), level: l.level}
}

// Zap exposes the underlying logger.
func (l *Logger) Zap() *zap.Logger {
	return l.sugar.Desugar()
}

func (l *Logger) Debug(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

// DebugExpansion dumps an input text and its record when debugging letters.
func (l *Logger) DebugExpansion(text string, record Record) {
	if !l.IsDebugMode() {
		return
	}
	l.Debug("Text: %s", text)
	l.Debug("Record: %+v", record)
}

// Global logging functions
func SetLogger(logger *Logger) {
	initGlobalLogger()
	globalLoggerMu.Lock()
	defer globalLoggerMu.Unlock()
	globalLogger = logger
}

func GetLogger() *Logger {
	initGlobalLogger()
	globalLoggerMu.RLock()
	defer globalLoggerMu.RUnlock()
	return globalLogger
}

func Debug(format string, args ...interface{}) {
	GetLogger().Debug(format, args...)
}

func Info(format string, args ...interface{}) {
	GetLogger().Info(format, args...)
}

func Warn(format string, args ...interface{}) {
	GetLogger().Warn(format, args...)
}

func Error(format string, args ...interface{}) {
	GetLogger().Error(format, args...)
}

func WithField(key string, value interface{}) *Logger {
	return GetLogger().WithField(key, value)
}

func WithFields(fields Fields) *Logger {
	return GetLogger().WithFields(fields)
}

// UpdateLoggerFromConfig updates the global logger based on the current global configuration
func UpdateLoggerFromConfig() {
	config := GetGlobalConfig()
	GetLogger().SetLevel(parseLogLevel(config.LogLevel))
}
