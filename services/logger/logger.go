package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger interface định nghĩa các phương thức logging
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

// Options cấu hình logger
type Options struct {
	Level string
	// Dir là thư mục ghi file log theo ngày, để trống thì chỉ ghi ra console
	Dir     string
	Console bool
}

// ZeroLogger implement Logger bằng zerolog
type ZeroLogger struct {
	zl   zerolog.Logger
	file *os.File
}

// New tạo logger ghi ra console và file logs/app-YYYY-MM-DD.log
func New(opts Options) (*ZeroLogger, error) {
	var writers []io.Writer
	if opts.Console {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	var file *os.File
	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		name := filepath.Join(opts.Dir, fmt.Sprintf("app-%s.log", time.Now().Format("2006-01-02")))
		f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		file = f
		writers = append(writers, f)
	}
	if len(writers) == 0 {
		writers = append(writers, os.Stderr)
	}

	zl := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(ParseLevel(opts.Level)).
		With().Timestamp().Logger()
	return &ZeroLogger{zl: zl, file: file}, nil
}

// ParseLevel chuyển chuỗi LOG_LEVEL sang zerolog.Level, mặc định info
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func (l *ZeroLogger) Info(format string, v ...interface{}) {
	l.zl.Info().Msgf(format, v...)
}

func (l *ZeroLogger) Warn(format string, v ...interface{}) {
	l.zl.Warn().Msgf(format, v...)
}

func (l *ZeroLogger) Error(format string, v ...interface{}) {
	l.zl.Error().Msgf(format, v...)
}

func (l *ZeroLogger) Debug(format string, v ...interface{}) {
	l.zl.Debug().Msgf(format, v...)
}

// Zerolog trả về logger gốc để ghi log có cấu trúc
func (l *ZeroLogger) Zerolog() *zerolog.Logger {
	return &l.zl
}

func (l *ZeroLogger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// Nop là logger bỏ qua mọi log, dùng trong test
type Nop struct{}

func (Nop) Info(string, ...interface{})  {}
func (Nop) Warn(string, ...interface{})  {}
func (Nop) Error(string, ...interface{}) {}
func (Nop) Debug(string, ...interface{}) {}
