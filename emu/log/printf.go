package log

import (
	"gopkg.in/Sirupsen/logrus.v0"
)

// printf-like family, for call sites where building a field list is not
// worth it.

func (mod Module) log() *logrus.Entry {
	return logrus.StandardLogger().WithField("_mod", modNames[mod])
}

func (mod Module) Debugf(format string, args ...any) {
	if mod.Enabled(DebugLevel) {
		mod.log().Debugf(format, args...)
	}
}

func (mod Module) Infof(format string, args ...any) {
	if mod.Enabled(InfoLevel) {
		mod.log().Infof(format, args...)
	}
}

func (mod Module) Warnf(format string, args ...any) {
	if mod.Enabled(WarnLevel) {
		mod.log().Warnf(format, args...)
	}
}

func (mod Module) Errorf(format string, args ...any) {
	if mod.Enabled(ErrorLevel) {
		mod.log().Errorf(format, args...)
	}
}

func (mod Module) Fatalf(format string, args ...any) {
	if mod.Enabled(FatalLevel) {
		mod.log().Fatalf(format, args...)
	}
}
