package core

// Person identifies who a log entry is about (e.g. the student a prediction was requested for).
type Person struct {
	ID    string
	Name  string
	Email string
}

// Logger is any service that can report messages.
// expected args: error | map[string]interface{} | Person
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
