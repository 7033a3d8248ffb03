package log

import (
	"io"

	"gopkg.in/Sirupsen/logrus.v0"
)

type Level uint8

const (
	PanicLevel Level = iota
	FatalLevel
	ErrorLevel
	WarnLevel
	InfoLevel
	DebugLevel
)

func (lvl Level) logrus() logrus.Level {
	return logrus.Level(lvl)
}

func SetOutput(w io.Writer) {
	logrus.SetOutput(w)
}

func SetLevel(lvl Level) {
	logrus.SetLevel(lvl.logrus())
}

// Disable turns off all log output.
func Disable() {
	logrus.SetOutput(io.Discard)
}
