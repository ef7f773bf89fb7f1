package core

// Logger is any service that can log application events.
// args may hold errors and extra data (map[string]interface{}) attached to the event.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
