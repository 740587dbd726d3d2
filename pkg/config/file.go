package config

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/hmidani-abdelilah/battery-monitoring/pkg/utils/ptr"
)

var defaultFileConfig = &RawFileConfig{
	LowThreshold:    ptr.To(20),
	HighThreshold:   ptr.To(85),
	UnplugThreshold: ptr.To(95),
	FullThreshold:   ptr.To(100),
	IntervalSeconds: ptr.To(60),
	NotifyTimeoutMS: ptr.To(8000),
	LogFileDisabled: ptr.To(false),
	NotifyDisabled:  ptr.To(false),
}

// DefaultLogPath is where battery events go when no log path is configured.
func DefaultLogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "battery_monitor.log"
	}
	return filepath.Join(home, "battery_monitor.log")
}

var _ Config = &File{}

type File struct {
	c        *RawFileConfig
	mu       *sync.RWMutex
	filepath string
}

func NewFile(configPath string) (*File, error) {
	f := &File{
		filepath: configPath,
		mu:       &sync.RWMutex{},
	}
	err := f.Load()
	if err != nil {
		return nil, err
	}

	return f, nil
}

func NewFileFromConfig(c *RawFileConfig, configPath string) *File {
	if c == nil {
		c = defaultFileConfig
	}

	f := &File{
		c:        c,
		mu:       &sync.RWMutex{},
		filepath: configPath,
	}

	return f
}

// RawFileConfig is the on-disk representation. Fields are pointers so an
// absent key falls back to the default instead of the zero value.
type RawFileConfig struct {
	LowThreshold    *int    `json:"lowThreshold,omitempty"`
	HighThreshold   *int    `json:"highThreshold,omitempty"`
	UnplugThreshold *int    `json:"unplugThreshold,omitempty"`
	FullThreshold   *int    `json:"fullThreshold,omitempty"`
	IntervalSeconds *int    `json:"intervalSeconds,omitempty"`
	NotifyTimeoutMS *int    `json:"notifyTimeoutMs,omitempty"`
	LogPath         *string `json:"logPath,omitempty"`
	LogFileDisabled *bool   `json:"logFileDisabled,omitempty"`
	NotifyDisabled  *bool   `json:"notifyDisabled,omitempty"`
}

func NewRawFileConfigFromConfig(c Config) (*RawFileConfig, error) {
	if c == nil {
		return nil, pkgerrors.New("config is nil")
	}

	rawConfig := &RawFileConfig{
		LowThreshold:    ptr.To(c.LowThreshold()),
		HighThreshold:   ptr.To(c.HighThreshold()),
		UnplugThreshold: ptr.To(c.UnplugThreshold()),
		FullThreshold:   ptr.To(c.FullThreshold()),
		IntervalSeconds: ptr.To(int(c.Interval() / time.Second)),
		NotifyTimeoutMS: ptr.To(c.NotifyTimeout()),
		LogPath:         ptr.To(c.LogPath()),
		LogFileDisabled: ptr.To(c.LogFileDisabled()),
		NotifyDisabled:  ptr.To(c.NotifyDisabled()),
	}

	return rawConfig, nil
}

func intOrDefault(field, def *int) int {
	if field != nil {
		return *field
	}
	return *def
}

func (f *File) LowThreshold() int {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	return intOrDefault(f.c.LowThreshold, defaultFileConfig.LowThreshold)
}

func (f *File) HighThreshold() int {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	return intOrDefault(f.c.HighThreshold, defaultFileConfig.HighThreshold)
}

func (f *File) UnplugThreshold() int {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	return intOrDefault(f.c.UnplugThreshold, defaultFileConfig.UnplugThreshold)
}

func (f *File) FullThreshold() int {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	return intOrDefault(f.c.FullThreshold, defaultFileConfig.FullThreshold)
}

func (f *File) Interval() time.Duration {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	seconds := intOrDefault(f.c.IntervalSeconds, defaultFileConfig.IntervalSeconds)
	if seconds < 1 {
		seconds = 1
	}
	return time.Duration(seconds) * time.Second
}

func (f *File) NotifyTimeout() int {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	return intOrDefault(f.c.NotifyTimeoutMS, defaultFileConfig.NotifyTimeoutMS)
}

func (f *File) LogPath() string {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.LogPath != nil && *f.c.LogPath != "" {
		return *f.c.LogPath
	}
	return DefaultLogPath()
}

func (f *File) LogFileDisabled() bool {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.LogFileDisabled != nil {
		return *f.c.LogFileDisabled
	}
	return *defaultFileConfig.LogFileDisabled
}

func (f *File) NotifyDisabled() bool {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.NotifyDisabled != nil {
		return *f.c.NotifyDisabled
	}
	return *defaultFileConfig.NotifyDisabled
}

func (f *File) SetInterval(d time.Duration) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.IntervalSeconds = ptr.To(int(d / time.Second))
}

func (f *File) SetNotifyTimeout(ms int) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.NotifyTimeoutMS = &ms
}

func (f *File) SetLogPath(p string) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.LogPath = &p
}

func (f *File) SetLogFileDisabled(b bool) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.LogFileDisabled = &b
}

func (f *File) SetNotifyDisabled(b bool) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.NotifyDisabled = &b
}

func (f *File) Load() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	fp, err := os.Open(f.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			// If the file does not exist, return the empty config.
			// Do not make f.c a nil.
			f.c = &RawFileConfig{}
			return nil
		}
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	// Since we want to tell if the file is empty, using json.Decoder will
	// not work.
	b, err := io.ReadAll(fp)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to read file %s", f.filepath)
	}

	if strings.TrimSpace(string(b)) == "" {
		// If the file is empty, return the empty config.
		// Do not make f.c a nil.
		f.c = &RawFileConfig{}
		return nil
	}

	conf := RawFileConfig{}
	err = json.Unmarshal(b, &conf)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to unmarshal config from file %s", f.filepath)
	}
	f.c = &conf

	return nil
}

func (f *File) Save() error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c == nil {
		return pkgerrors.New("config is nil")
	}

	fp, err := os.OpenFile(f.filepath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	enc := json.NewEncoder(fp)
	enc.SetIndent("", "  ")
	err = enc.Encode(f.c)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to encode config to file %s", f.filepath)
	}

	return nil
}

func (f *File) LogrusFields() logrus.Fields {
	if f.c == nil {
		panic("config is nil")
	}

	return logrus.Fields{
		"lowThreshold":    f.LowThreshold(),
		"highThreshold":   f.HighThreshold(),
		"unplugThreshold": f.UnplugThreshold(),
		"fullThreshold":   f.FullThreshold(),
		"interval":        f.Interval().String(),
		"notifyTimeoutMs": f.NotifyTimeout(),
		"logPath":         f.LogPath(),
		"logFileDisabled": f.LogFileDisabled(),
		"notifyDisabled":  f.NotifyDisabled(),
	}
}
