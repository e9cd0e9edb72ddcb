package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger логгер с printf-интерфейсом поверх slog
type Logger struct {
	log  *slog.Logger
	file *os.File
}

// Option опция конфигурации логгера
type Option func(*options)

type options struct {
	format    string
	addSource bool
}

// WithFormat задаёт формат вывода: "text" (по умолчанию) или "json"
func WithFormat(format string) Option {
	return func(o *options) {
		o.format = format
	}
}

// WithSource включает вывод места вызова
func WithSource(enabled bool) Option {
	return func(o *options) {
		o.addSource = enabled
	}
}

// New создает логгер, пишущий в stdout и, если указан путь, дополнительно в файл
func New(filePath string, level string, opts ...Option) (*Logger, error) {
	var (
		w    io.Writer = os.Stdout
		file *os.File
	)

	if filePath != "" {
		f, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", filePath, err)
		}
		file = f
		w = io.MultiWriter(os.Stdout, f)
	}

	l := NewWithWriter(w, level, opts...)
	l.file = file
	return l, nil
}

// NewWithWriter создает логгер поверх произвольного io.Writer
func NewWithWriter(w io.Writer, level string, opts ...Option) *Logger {
	o := &options{format: "text"}
	for _, opt := range opts {
		opt(o)
	}

	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(level), AddSource: o.addSource}

	var handler slog.Handler
	switch strings.ToLower(strings.TrimSpace(o.format)) {
	case "json":
		handler = slog.NewJSONHandler(w, handlerOpts)
	default:
		handler = slog.NewTextHandler(w, handlerOpts)
	}

	return &Logger{log: slog.New(handler)}
}

// ParseLevel переводит текстовый уровень в slog.Level, по умолчанию info
func ParseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *Logger) Debug(format string, v ...interface{}) {
	l.logf(slog.LevelDebug, format, v...)
}

func (l *Logger) Info(format string, v ...interface{}) {
	l.logf(slog.LevelInfo, format, v...)
}

func (l *Logger) Warn(format string, v ...interface{}) {
	l.logf(slog.LevelWarn, format, v...)
}

func (l *Logger) Error(format string, v ...interface{}) {
	l.logf(slog.LevelError, format, v...)
}

// Fatal пишет сообщение с уровнем error и завершает процесс
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.logf(slog.LevelError, format, v...)
	l.Close()
	os.Exit(1)
}

// Slog возвращает нижележащий *slog.Logger
func (l *Logger) Slog() *slog.Logger {
	return l.log
}

// Close закрывает файл логов, если он был открыт
func (l *Logger) Close() {
	if l.file != nil {
		_ = l.file.Sync()
		_ = l.file.Close()
		l.file = nil
	}
}

func (l *Logger) logf(level slog.Level, format string, v ...interface{}) {
	ctx := context.Background()
	if !l.log.Enabled(ctx, level) {
		return
	}
	msg := format
	if len(v) > 0 {
		msg = fmt.Sprintf(format, v...)
	}
	l.log.Log(ctx, level, msg)
}
