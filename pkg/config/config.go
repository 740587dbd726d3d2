package config

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Config holds the monitor settings: the four notification thresholds,
// polling and notification timing, and the event-log location.
type Config interface {
	LowThreshold() int
	HighThreshold() int
	UnplugThreshold() int
	FullThreshold() int
	Interval() time.Duration
	NotifyTimeout() int // milliseconds; 0 means the notification is persistent
	LogPath() string
	LogFileDisabled() bool
	NotifyDisabled() bool

	SetInterval(time.Duration)
	SetNotifyTimeout(int)
	SetLogPath(string)
	SetLogFileDisabled(bool)
	SetNotifyDisabled(bool)

	LogrusFields() logrus.Fields

	// Load reads the configuration from the source.
	Load() error
	// Save saves the configuration to the source.
	Save() error
}
