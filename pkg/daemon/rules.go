package daemon

import (
	"fmt"

	"github.com/hmidani-abdelilah/battery-monitoring/pkg/notify"
	"github.com/hmidani-abdelilah/battery-monitoring/pkg/power"
)

// Freedesktop icon names for each rule.
const (
	iconLow    = "battery-caution"
	iconHigh   = "battery-good"
	iconUnplug = "battery-full-charged"
	iconFull   = "battery-full"
)

// Display timeouts per rule, in milliseconds. 0 keeps the notification
// on screen until dismissed.
const (
	lowTimeout    = 0
	highTimeout   = 10000
	unplugTimeout = 12000
	fullTimeout   = 0
)

type thresholds struct {
	Low    int
	High   int
	Unplug int
	Full   int
}

func (m *Monitor) thresholds() thresholds {
	return thresholds{
		Low:    m.conf.LowThreshold(),
		High:   m.conf.HighThreshold(),
		Unplug: m.conf.UnplugThreshold(),
		Full:   m.conf.FullThreshold(),
	}
}

// evaluateRules runs the four threshold rules for one battery. Each rule
// fires at most once per latch: a fired rule sets its latch and the latch
// is never cleared here. The rules are order-insensitive; several can
// fire on the same tick.
func evaluateRules(t thresholds, name string, percent int, plugged bool, l power.Latches) (power.Latches, []notify.Notification) {
	var fired []notify.Notification

	if percent <= t.Low && !plugged && !l.Low {
		l.Low = true
		fired = append(fired, notify.Notification{
			Title:   "Battery low",
			Message: fmt.Sprintf("%s at %d%%: plug in the charger.", name, percent),
			Icon:    iconLow,
			Timeout: lowTimeout,
			Urgency: notify.UrgencyCritical,
		})
	}

	if plugged && percent >= t.High && !l.High {
		l.High = true
		fired = append(fired, notify.Notification{
			Title:   "Avoid overcharging",
			Message: fmt.Sprintf("%s at %d%%: consider unplugging the charger.", name, percent),
			Icon:    iconHigh,
			Timeout: highTimeout,
			Urgency: notify.UrgencyNormal,
		})
	}

	if plugged && percent >= t.Unplug && !l.Unplug {
		l.Unplug = true
		fired = append(fired, notify.Notification{
			Title:   "Nearly full",
			Message: fmt.Sprintf("%s at %d%%: please unplug the charger.", name, percent),
			Icon:    iconUnplug,
			Timeout: unplugTimeout,
			Urgency: notify.UrgencyNormal,
		})
	}

	if plugged && percent >= t.Full && !l.Full {
		l.Full = true
		fired = append(fired, notify.Notification{
			Title:   "Charging complete",
			Message: fmt.Sprintf("%s reached %d%%: please unplug the charger.", name, percent),
			Icon:    iconFull,
			Timeout: fullTimeout,
			Urgency: notify.UrgencyCritical,
		})
	}

	return l, fired
}

// applyRules evaluates the rules for one reading and dispatches whatever
// fired. A reading without a percentage skips rule evaluation entirely
// for this tick.
func (m *Monitor) applyRules(r power.Reading, plugged bool) {
	if r.Percent == nil {
		return
	}

	m.mu.RLock()
	current := *m.latches[r.Name]
	m.mu.RUnlock()

	updated, fired := evaluateRules(m.thresholds(), r.Name, *r.Percent, plugged, current)

	for _, n := range fired {
		m.dispatch(n)
	}

	m.mu.Lock()
	*m.latches[r.Name] = updated
	m.mu.Unlock()
}

// dispatch sends one notification, best effort. A dry run only logs; a
// failed dispatch logs the equivalent notify-send command so the event
// is still traceable.
func (m *Monitor) dispatch(n notify.Notification) {
	if n.Timeout < 0 {
		n.Timeout = m.conf.NotifyTimeout()
	}

	if m.conf.NotifyDisabled() {
		m.events.Printf("[DRY-RUN] Notify: %s: %s (icon=%s timeout=%d urgency=%s)",
			n.Title, n.Message, n.Icon, n.Timeout, n.Urgency)
		return
	}

	if err := m.notifier.Send(n); err != nil {
		m.events.Printf("failed to send notification (%v), command: %s", err, notify.CommandString(n))
		return
	}
	m.events.Printf("NOTIFY: %s: %s", n.Title, n.Message)
}
