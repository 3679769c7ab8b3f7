// Package logger provides structured logging for the reportng command line.
// It wraps uber-go/zap with a key=value text format for terminals and a JSON
// format for log collectors. Console output goes to stderr by default so
// the build summary on stdout stays machine readable.
package logger

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var bufferpool = buffer.NewPool()

var (
	globalLogger *zap.Logger
	once         sync.Once
)

// Field keys shared by packages that log about the same entities
const (
	// FieldSessionID identifies the report session a log entry belongs to
	FieldSessionID = "session_id"
	// FieldBlockKind is the kind of content block being appended
	FieldBlockKind = "kind"
)

// Console outputs
const (
	OutputStderr = "stderr"
	OutputStdout = "stdout"
)

// Config holds the logger configuration
type Config struct {
	// Level is the minimum log level (debug, info, warn, error)
	Level string `yaml:"level"`
	// Format is the output format (json, text)
	Format string `yaml:"format"`
	// Output is the console stream, stderr (default) or stdout
	Output string `yaml:"output"`
	// File is an optional log file written in addition to the console
	File string `yaml:"file"`
	// MaxSize is the maximum size in megabytes of the log file before it gets rotated
	MaxSize int `yaml:"max_size"`
	// MaxAge is the maximum number of days to retain old log files
	MaxAge int `yaml:"max_age"`
	// MaxBackups is the maximum number of old log files to retain
	MaxBackups int `yaml:"max_backups"`
	// Compress determines if the rotated log files should be compressed using gzip
	Compress bool `yaml:"compress"`
}

// Init initializes the global logger with the given configuration.
// Only the first call takes effect.
func Init(cfg Config) error {
	once.Do(func() {
		console := consoleFile(cfg.Output)
		globalLogger = build(cfg, console, isatty.IsTerminal(console.Fd()))
	})
	return nil
}

func consoleFile(output string) *os.File {
	if strings.EqualFold(output, OutputStdout) {
		return os.Stdout
	}
	return os.Stderr
}

// build assembles the logger. Terminal consoles get colored levels; the
// log file never does.
func build(cfg Config, console io.Writer, colored bool) *zap.Logger {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	var consoleEnc, fileEnc zapcore.Encoder
	if cfg.Format == "json" {
		consoleEnc = zapcore.NewJSONEncoder(jsonEncoderConfig())
		fileEnc = consoleEnc
	} else {
		consoleEnc = newKVConsoleEncoder(textEncoderConfig(colored))
		fileEnc = newKVConsoleEncoder(textEncoderConfig(false))
	}

	core := zapcore.NewCore(consoleEnc, zapcore.AddSync(console), level)
	if w := rotatingFile(cfg); w != nil {
		core = zapcore.NewTee(core, zapcore.NewCore(fileEnc, w, level))
	}
	if cfg.Format != "json" {
		core = &contextCore{Core: core}
	}

	return zap.New(core, zap.AddStacktrace(zapcore.ErrorLevel))
}

// rotatingFile opens the lumberjack writer for cfg.File, or returns nil
// when no file is configured or its directory cannot be created
func rotatingFile(cfg Config) zapcore.WriteSyncer {
	if cfg.File == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create log directory: %v, using console only\n", err)
		return nil
	}
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = 100
	}
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = 7
	}
	if cfg.MaxBackups <= 0 {
		cfg.MaxBackups = 5
	}
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSize,
		MaxAge:     cfg.MaxAge,
		MaxBackups: cfg.MaxBackups,
		Compress:   cfg.Compress,
	})
}

// textEncoderConfig is the bracketed layout: [time] [LEVEL] msg key=value
func textEncoderConfig(colored bool) zapcore.EncoderConfig {
	levelEnc := bracketLevelEncoder
	if colored {
		levelEnc = bracketColorLevelEncoder
	}
	return zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		NameKey:          zapcore.OmitKey,
		CallerKey:        zapcore.OmitKey,
		FunctionKey:      zapcore.OmitKey,
		MessageKey:       "msg",
		StacktraceKey:    "stacktrace",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeLevel:      levelEnc,
		EncodeTime:       bracketTimeEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	}
}

func jsonEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      zapcore.OmitKey,
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
	}
}

// bracketTimeEncoder formats time with brackets: [2006-01-02 15:04:05]
func bracketTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("[" + t.Format("2006-01-02 15:04:05") + "]")
}

// bracketLevelEncoder formats level with brackets: [INFO]
func bracketLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("[" + level.CapitalString() + "]")
}

// bracketColorLevelEncoder is bracketLevelEncoder with ANSI colors
func bracketColorLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	var color string
	switch level {
	case zapcore.DebugLevel:
		color = "\x1b[35m"
	case zapcore.InfoLevel:
		color = "\x1b[34m"
	case zapcore.WarnLevel:
		color = "\x1b[33m"
	case zapcore.ErrorLevel, zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		color = "\x1b[31m"
	default:
		color = "\x1b[0m"
	}
	enc.AppendString(color + "[" + level.CapitalString() + "]\x1b[0m")
}

func parseLevel(level string) (zapcore.Level, error) {
	var l zapcore.Level
	err := l.UnmarshalText([]byte(level))
	return l, err
}

// Get returns the global logger, or a no-op logger before Init
func Get() *zap.Logger {
	if globalLogger == nil {
		return zap.NewNop()
	}
	return globalLogger
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	Get().Debug(msg, fields...)
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	Get().Info(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	Get().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	Get().Error(msg, fields...)
}

// Sync flushes any buffered log entries
func Sync() error {
	if globalLogger != nil {
		return globalLogger.Sync()
	}
	return nil
}

// SetLogger replaces the global logger. Passing nil restores the no-op logger.
func SetLogger(l *zap.Logger) {
	globalLogger = l
}

// WithSession returns base tagged with a report session id. A nil base
// uses the global logger.
func WithSession(base *zap.Logger, sessionID string) *zap.Logger {
	if base == nil {
		base = Get()
	}
	return base.With(zap.String(FieldSessionID, sessionID))
}

// kvConsoleEncoder is a console encoder that writes fields as key=value
type kvConsoleEncoder struct {
	zapcore.Encoder
	cfg zapcore.EncoderConfig
}

func newKVConsoleEncoder(cfg zapcore.EncoderConfig) zapcore.Encoder {
	return &kvConsoleEncoder{
		Encoder: zapcore.NewConsoleEncoder(cfg),
		cfg:     cfg,
	}
}

func (e *kvConsoleEncoder) Clone() zapcore.Encoder {
	return &kvConsoleEncoder{
		Encoder: e.Encoder.Clone(),
		cfg:     e.cfg,
	}
}

// EncodeEntry writes the time, level and message followed by fields as
// key=value pairs
func (e *kvConsoleEncoder) EncodeEntry(entry zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	buf := bufferpool.Get()
	sep := e.cfg.ConsoleSeparator

	prefix := &sliceArrayEncoder{}
	if e.cfg.EncodeTime != nil {
		e.cfg.EncodeTime(entry.Time, prefix)
	}
	if e.cfg.EncodeLevel != nil {
		e.cfg.EncodeLevel(entry.Level, prefix)
	}
	for _, s := range prefix.elems {
		buf.AppendString(s)
		buf.AppendString(sep)
	}
	buf.AppendString(entry.Message)

	for _, field := range fields {
		buf.AppendString(sep)
		buf.AppendString(field.Key)
		buf.AppendByte('=')
		appendFieldValue(buf, field)
	}

	if entry.Stack != "" && e.cfg.StacktraceKey != "" {
		buf.AppendString(zapcore.DefaultLineEnding)
		buf.AppendString(entry.Stack)
	}
	buf.AppendString(zapcore.DefaultLineEnding)
	return buf, nil
}

// contextCore holds fields added with With and passes them ahead of the
// call site fields on every write, since kvConsoleEncoder only renders
// the fields it is handed
type contextCore struct {
	zapcore.Core
	context []zapcore.Field
}

func (c *contextCore) With(fields []zapcore.Field) zapcore.Core {
	ctx := make([]zapcore.Field, 0, len(c.context)+len(fields))
	ctx = append(ctx, c.context...)
	ctx = append(ctx, fields...)
	return &contextCore{Core: c.Core, context: ctx}
}

func (c *contextCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *contextCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	if len(c.context) == 0 {
		return c.Core.Write(ent, fields)
	}
	all := make([]zapcore.Field, 0, len(c.context)+len(fields))
	all = append(all, c.context...)
	all = append(all, fields...)
	return c.Core.Write(ent, all)
}

// sliceArrayEncoder collects the strings written by time and level encoders
type sliceArrayEncoder struct {
	zapcore.PrimitiveArrayEncoder
	elems []string
}

func (s *sliceArrayEncoder) AppendString(v string) { s.elems = append(s.elems, v) }

// appendFieldValue writes a field value, quoting strings that contain
// spaces, quotes or '=' so lines stay splittable
func appendFieldValue(buf *buffer.Buffer, field zapcore.Field) {
	switch field.Type {
	case zapcore.StringType:
		appendQuoted(buf, field.String)
	case zapcore.Int64Type, zapcore.Int32Type, zapcore.Int16Type, zapcore.Int8Type:
		buf.AppendInt(field.Integer)
	case zapcore.Uint64Type, zapcore.Uint32Type, zapcore.Uint16Type, zapcore.Uint8Type:
		buf.AppendUint(uint64(field.Integer))
	case zapcore.Float64Type:
		buf.AppendFloat(math.Float64frombits(uint64(field.Integer)), 64)
	case zapcore.BoolType:
		buf.AppendBool(field.Integer == 1)
	case zapcore.DurationType:
		buf.AppendString(time.Duration(field.Integer).String())
	case zapcore.ErrorType:
		if err, ok := field.Interface.(error); ok && err != nil {
			appendQuoted(buf, err.Error())
		} else {
			buf.AppendString("<nil>")
		}
	case zapcore.StringerType:
		if stringer, ok := field.Interface.(fmt.Stringer); ok {
			appendQuoted(buf, stringer.String())
		}
	default:
		if field.Interface != nil {
			appendQuoted(buf, fmt.Sprint(field.Interface))
		}
	}
}

func appendQuoted(buf *buffer.Buffer, s string) {
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		buf.AppendString(strconv.Quote(s))
		return
	}
	buf.AppendString(s)
}
