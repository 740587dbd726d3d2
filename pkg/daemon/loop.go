package daemon

import (
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hmidani-abdelilah/battery-monitoring/pkg/config"
	"github.com/hmidani-abdelilah/battery-monitoring/pkg/eventlog"
	"github.com/hmidani-abdelilah/battery-monitoring/pkg/notify"
	"github.com/hmidani-abdelilah/battery-monitoring/pkg/power"
)

// ErrNoBatteries is returned when device detection finds no battery at
// startup. The process exits with code 1 in that case.
var ErrNoBatteries = errors.New("no batteries detected")

// Monitor owns the poll loop: it reads every battery each tick, applies
// the threshold rules, and keeps the snapshot served over the socket.
type Monitor struct {
	conf     config.Config
	source   power.Source
	notifier notify.Notifier
	events   *eventlog.Log

	batteries []string
	adapters  []string

	mu      sync.RWMutex
	latches map[string]*power.Latches
	last    power.Snapshot
}

// NewMonitor detects the power devices and prepares per-battery latch
// state. Zero batteries is fatal; zero adapters is not, plug state then
// depends on battery status alone.
func NewMonitor(conf config.Config, source power.Source, notifier notify.Notifier, events *eventlog.Log) (*Monitor, error) {
	batteries, err := source.Batteries()
	if err != nil {
		logrus.Warnf("battery detection reported an error: %v", err)
	}
	if len(batteries) == 0 {
		return nil, ErrNoBatteries
	}

	adapters, err := source.Adapters()
	if err != nil {
		logrus.Warnf("adapter detection reported an error: %v", err)
	}

	latches := make(map[string]*power.Latches, len(batteries))
	for _, name := range batteries {
		latches[name] = &power.Latches{}
	}

	return &Monitor{
		conf:      conf,
		source:    source,
		notifier:  notifier,
		events:    events,
		batteries: batteries,
		adapters:  adapters,
		latches:   latches,
	}, nil
}

// loop runs forever. There is no terminal state; the process is killed
// from outside.
func (m *Monitor) loop() {
	for {
		time.Sleep(m.tick())
	}
}

// tick performs one poll iteration and returns how long to sleep before
// the next one.
func (m *Monitor) tick() time.Duration {
	if err := m.events.RotateIfNeeded(); err != nil {
		logrus.Warnf("event log rotation failed: %v", err)
	}

	readings := m.readAll()
	plugged := m.pluggedIn(readings)

	for _, r := range readings {
		m.events.Printf("Battery %s: %s | status=%s | plugged=%t",
			r.Name, percentString(r.Percent), r.Status, plugged)
		m.applyRules(r, plugged)
	}

	min := minPercent(readings)
	next := nextInterval(min, m.conf.Interval())

	m.mu.Lock()
	m.last = power.Snapshot{
		Batteries:    readings,
		Plugged:      plugged,
		MinPercent:   min,
		NextInterval: next.String(),
		Latches:      m.copyLatchesLocked(),
	}
	m.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"plugged":      plugged,
		"minPercent":   min,
		"nextInterval": next.String(),
	}).Debug("poll tick complete")

	return next
}

// readAll samples every known battery. A failed read degrades to an
// empty reading for that battery; the loop keeps going.
func (m *Monitor) readAll() []power.Reading {
	readings := make([]power.Reading, 0, len(m.batteries))
	for _, name := range m.batteries {
		r, err := m.source.Read(name)
		if err != nil {
			logrus.Warnf("failed to read battery %s: %v", name, err)
			r = power.Reading{Name: name, Status: power.StatusUnknown}
		}
		readings = append(readings, r)
	}
	return readings
}

// pluggedIn reports whether the system receives external power: any
// battery charging or full, or any adapter online.
func (m *Monitor) pluggedIn(readings []power.Reading) bool {
	if anyCharging(readings) {
		return true
	}
	for _, name := range m.adapters {
		online, err := m.source.AdapterOnline(name)
		if err != nil {
			logrus.Debugf("failed to read adapter %s: %v", name, err)
			continue
		}
		if online {
			return true
		}
	}
	return false
}

func anyCharging(readings []power.Reading) bool {
	for _, r := range readings {
		if r.Status == power.StatusCharging || r.Status == power.StatusFull {
			return true
		}
	}
	return false
}

// minPercent returns the lowest valid percentage, or 100 when no battery
// produced one this tick.
func minPercent(readings []power.Reading) int {
	min := 100
	found := false
	for _, r := range readings {
		if r.Percent == nil {
			continue
		}
		if !found || *r.Percent < min {
			min = *r.Percent
		}
		found = true
	}
	if !found {
		return 100
	}
	return min
}

// nextInterval shortens the poll interval as any battery gets low, so a
// draining battery is noticed quickly.
func nextInterval(minPercent int, def time.Duration) time.Duration {
	switch {
	case minPercent <= 20:
		return 20 * time.Second
	case minPercent <= 40:
		return 40 * time.Second
	default:
		return def
	}
}

// Snapshot returns the state of the last completed tick.
func (m *Monitor) Snapshot() power.Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := m.last
	snap.Latches = m.copyLatchesLocked()
	return snap
}

// ResetLatches re-arms every notification latch. This is a manual
// operator action; the loop itself never clears a latch.
func (m *Monitor) ResetLatches() string {
	m.mu.Lock()
	for _, l := range m.latches {
		*l = power.Latches{}
	}
	m.mu.Unlock()

	m.events.Printf("notification latches reset")
	return "notification latches reset"
}

func (m *Monitor) copyLatchesLocked() map[string]power.Latches {
	out := make(map[string]power.Latches, len(m.latches))
	for name, l := range m.latches {
		out[name] = *l
	}
	return out
}

func percentString(p *int) string {
	if p == nil {
		return "n/a"
	}
	return strconv.Itoa(*p) + "%"
}
