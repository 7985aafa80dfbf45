// File: adapters/logger_zap.go
// Author: momentics <momentics@gmail.com>
//
// ZapLogger adapts go.uber.org/zap to api.Logger, the structured log sink
// the orchestrator and its collaborators consume (§6). Alert has no direct
// zap level; it is logged at Error with a "severity" field so it still
// sorts as the most severe entries in any zap-aware log pipeline.
package adapters

import "go.uber.org/zap"

type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger wraps an already-constructed *zap.Logger.
func NewZapLogger(l *zap.Logger) *ZapLogger {
	return &ZapLogger{sugar: l.Sugar()}
}

// NewProductionZapLogger builds a zap production logger (JSON, info level
// and above, sampled) and wraps it.
func NewProductionZapLogger() (*ZapLogger, error) {
	l, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return NewZapLogger(l), nil
}

func (z *ZapLogger) Debug(msg string, kv ...any)   { z.sugar.Debugw(msg, kv...) }
func (z *ZapLogger) Info(msg string, kv ...any)    { z.sugar.Infow(msg, kv...) }
func (z *ZapLogger) Warning(msg string, kv ...any) { z.sugar.Warnw(msg, kv...) }
func (z *ZapLogger) Alert(msg string, kv ...any) {
	z.sugar.Errorw(msg, append(append([]any{}, kv...), "severity", "alert")...)
}
func (z *ZapLogger) Error(msg string, kv ...any) { z.sugar.Errorw(msg, kv...) }

// Sync flushes buffered log entries; callers should defer it after
// construction.
func (z *ZapLogger) Sync() error { return z.sugar.Sync() }
