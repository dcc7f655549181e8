package main

import (
	"go.uber.org/zap"

	"landscapecore/internal/core"
)

// zapLogger adapts a zap sugared logger to the engine's logging surface.
type zapLogger struct {
	sugar *zap.SugaredLogger
}

func newZapLogger(l *zap.Logger) core.Logger {
	if l == nil {
		l = zap.NewNop()
	}
	return zapLogger{sugar: l.Sugar()}
}

func (z zapLogger) Debug(msg string, args ...any) { z.sugar.Debugw(msg, args...) }
func (z zapLogger) Info(msg string, args ...any)  { z.sugar.Infow(msg, args...) }
func (z zapLogger) Warn(msg string, args ...any)  { z.sugar.Warnw(msg, args...) }
func (z zapLogger) Error(msg string, args ...any) { z.sugar.Errorw(msg, args...) }
