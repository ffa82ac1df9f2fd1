package logging

var (
	NewLogger  = newLogger
	ParseLevel = parseLevel
)
