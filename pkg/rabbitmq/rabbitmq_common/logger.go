package rabbitmq_common

// Logger - логгер пакета в стиле key-value, чтобы pkg не зависел от логгера сервиса.
// Сервис подключает свой логгер через мост (см. PkgLoggerBridge).
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(err error, msg string, keysAndValues ...interface{})
}

// NewNoopLogger - логгер по умолчанию, когда в конфигурации логгер не задан
func NewNoopLogger() Logger {
	return discard{}
}

type discard struct{}

func (discard) Debug(string, ...interface{})        {}
func (discard) Info(string, ...interface{})         {}
func (discard) Warn(string, ...interface{})         {}
func (discard) Error(error, string, ...interface{}) {}
