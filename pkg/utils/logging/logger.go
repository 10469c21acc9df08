package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultLogDir is used when no log directory is configured
const DefaultLogDir = "logs"

// Options controls where logs go and how verbose the console is.
// The log file always records everything from debug up.
type Options struct {
	Env   string
	Dir   string
	Level string
}

// InitLogger builds a logger that writes readable lines to stdout at the
// configured level and JSON to <dir>/<env>_<timestamp>.log
func InitLogger(opts Options) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		parsed, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("failed to parse log level: %w", err)
		}
		level = parsed
	}

	file, err := openLogFile(opts.Env, opts.Dir)
	if err != nil {
		return nil, err
	}

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleEncoding()), zapcore.Lock(os.Stdout), level),
		zapcore.NewCore(zapcore.NewJSONEncoder(fileEncoding()), zapcore.AddSync(file), zapcore.DebugLevel),
	)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}

func openLogFile(env, dir string) (*os.File, error) {
	if dir == "" {
		dir = DefaultLogDir
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create logs directory: %w", err)
	}

	name := fmt.Sprintf("%s_%s.log", env, time.Now().Format("2006-01-02_15-04-05"))
	file, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return file, nil
}

func consoleEncoding() zapcore.EncoderConfig {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return cfg
}

func fileEncoding() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg
}

// Fields for the identifiers that appear across services and handlers
func VolunteerID(id string) zap.Field { return zap.String("volunteer_id", id) }
func EventID(id string) zap.Field     { return zap.String("event_id", id) }
func MatchID(id string) zap.Field     { return zap.String("match_id", id) }
