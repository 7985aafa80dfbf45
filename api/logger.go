// File: api/logger.go
// Author: momentics <momentics@gmail.com>
//
// Logger is a structured log sink. The core imposes no format contract;
// adapters/logger_zap.go backs it with go.uber.org/zap.

package api

type Logger interface {
	Debug(msg string, keyvals ...any)
	Info(msg string, keyvals ...any)
	Warning(msg string, keyvals ...any)
	Alert(msg string, keyvals ...any)
	Error(msg string, keyvals ...any)
}
