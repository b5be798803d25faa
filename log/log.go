// Package log writes diagnostics to a daily file through logrus when logging is enabled.
package log

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/creatv/creatv/filesystem"
	"github.com/creatv/creatv/key"
	"github.com/creatv/creatv/where"
	logrus "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var enabled bool

// Setup opens today's log file and applies the configured format and level.
// When logs.write is false every emission below is discarded.
func Setup() error {
	enabled = viper.GetBool(key.LogsWrite)
	if !enabled {
		return nil
	}

	dir := where.Logs()
	if dir == "" {
		return errors.New("log directory path is empty")
	}

	path := filepath.Join(dir, fmt.Sprintf("%s.log", time.Now().Format("2006-01-02")))
	f, err := filesystem.API().OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	logrus.SetOutput(f)

	if viper.GetBool(key.LogsJson) {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(viper.GetString(key.LogsLevel))
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	return nil
}

// Enabled reports whether Setup turned logging on.
func Enabled() bool {
	return enabled
}

// Fields is an alias so callers don't import logrus for structured entries.
type Fields = logrus.Fields

// With returns an entry carrying fields. Entries from a disabled logger are discarded.
func With(fields Fields) *logrus.Entry {
	if !enabled {
		return logrus.NewEntry(discard)
	}
	return logrus.WithFields(fields)
}

var discard = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(nopWriter{})
	l.SetLevel(logrus.PanicLevel)
	return l
}()

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func Error(args ...interface{}) {
	if enabled {
		logrus.Error(args...)
	}
}

func Errorf(format string, args ...interface{}) {
	if enabled {
		logrus.Errorf(format, args...)
	}
}

func Warn(args ...interface{}) {
	if enabled {
		logrus.Warn(args...)
	}
}

func Warnf(format string, args ...interface{}) {
	if enabled {
		logrus.Warnf(format, args...)
	}
}

func Info(args ...interface{}) {
	if enabled {
		logrus.Info(args...)
	}
}

func Infof(format string, args ...interface{}) {
	if enabled {
		logrus.Infof(format, args...)
	}
}

func Debug(args ...interface{}) {
	if enabled {
		logrus.Debug(args...)
	}
}

func Debugf(format string, args ...interface{}) {
	if enabled {
		logrus.Debugf(format, args...)
	}
}
