package logger

import (
	"courier/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger struct {
	sugar *zap.SugaredLogger
}

func NewLogger(cfg *config.Config) (*Logger, error) {
	var zapCfg zap.Config
	if cfg.LoggerMode.Development {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	if cfg.LoggerMode.Level != "" {
		lvl, err := zapcore.ParseLevel(cfg.LoggerMode.Level)
		if err == nil {
			zapCfg.Level = zap.NewAtomicLevelAt(lvl)
		}
	}

	l, err := zapCfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}
	return &Logger{sugar: l.Sugar()}, nil
}

// Nop returns a logger that discards everything, for tests.
func Nop() Logger {
	return Logger{sugar: zap.NewNop().Sugar()}
}

func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.lazy().Debugw(msg, keysAndValues...)
}

func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.lazy().Infow(msg, keysAndValues...)
}

func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.lazy().Warnw(msg, keysAndValues...)
}

func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.lazy().Errorw(msg, keysAndValues...)
}

func (l *Logger) Errorf(template string, args ...interface{}) {
	l.lazy().Errorf(template, args...)
}

func (l *Logger) Infof(template string, args ...interface{}) {
	l.lazy().Infof(template, args...)
}

func (l *Logger) Warnf(template string, args ...interface{}) {
	l.lazy().Warnf(template, args...)
}

var nopSugar = zap.NewNop().Sugar()

// lazy allows the zero-value Logger in tests without nil panics. It never
// writes to the receiver, so a zero-value Logger is safe to share across
// goroutines.
func (l *Logger) lazy() *zap.SugaredLogger {
	if l.sugar == nil {
		return nopSugar
	}
	return l.sugar
}

func (l *Logger) Sync() {
	if l.sugar != nil {
		_ = l.sugar.Sync()
	}
}
