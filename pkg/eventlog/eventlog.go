// Package eventlog is the append-only battery event log: one
// "[YYYY-MM-DD HH:MM:SS] message" line per event, with single-generation
// size-based rotation to a ".1" sibling.
package eventlog

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// MaxSize is the rotation threshold in bytes. A file strictly larger
	// than this is rotated before the next append.
	MaxSize = 1_000_000

	timeFormat = "2006-01-02 15:04:05"
)

// Log appends timestamped event lines to a file. Every line is also
// echoed to the diagnostic logger, so a disabled file still leaves a
// trace on stderr.
type Log struct {
	path     string
	disabled bool
	maxSize  int64

	now func() time.Time
}

func New(path string, disabled bool) *Log {
	return &Log{
		path:     path,
		disabled: disabled,
		maxSize:  MaxSize,
		now:      time.Now,
	}
}

// Path returns the log file location.
func (l *Log) Path() string {
	return l.path
}

// Printf records one event. File write failures are reported on the
// diagnostic logger and otherwise swallowed: losing a log line must not
// stop the monitor.
func (l *Log) Printf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logrus.Info(msg)

	if l.disabled {
		return
	}

	line := fmt.Sprintf("[%s] %s\n", l.now().Format(timeFormat), msg)
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		logrus.Warnf("failed to open event log %s: %v", l.path, err)
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			logrus.Warnf("failed to close event log %s: %v", l.path, err)
		}
	}()

	if _, err := f.WriteString(line); err != nil {
		logrus.Warnf("failed to append to event log %s: %v", l.path, err)
	}
}

// RotateIfNeeded renames the log to its ".1" sibling (replacing any
// previous backup) once it exceeds the size threshold. A fresh file is
// started implicitly by the next append.
func (l *Log) RotateIfNeeded() error {
	if l.disabled {
		return nil
	}

	info, err := os.Stat(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat event log %s: %w", l.path, err)
	}
	if info.Size() <= l.maxSize {
		return nil
	}

	backup := l.path + ".1"
	if err := os.Remove(backup); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove old backup %s: %w", backup, err)
	}
	if err := os.Rename(l.path, backup); err != nil {
		return fmt.Errorf("failed to rotate event log %s: %w", l.path, err)
	}

	l.Printf("rotated event log: %s -> %s", l.path, backup)
	return nil
}

// Tail returns the last n lines of the log file at path. A missing file
// yields no lines and no error.
func Tail(path string, n int) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read event log %s: %w", path, err)
	}

	lines := strings.Split(strings.TrimRight(string(b), "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return nil, nil
	}
	if n > 0 && len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines, nil
}
