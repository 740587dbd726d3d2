// Package notify delivers desktop notifications. The preferred backend
// talks to org.freedesktop.Notifications on the session bus; when that is
// unavailable it shells out to notify-send. Delivery is best effort: a
// failure is reported to the caller for logging and never retried.
package notify

// Urgency is the freedesktop notification urgency level.
type Urgency string

const (
	UrgencyNormal   Urgency = "normal"
	UrgencyCritical Urgency = "critical"
)

// byte value freedesktop servers expect in the "urgency" hint
func (u Urgency) hint() byte {
	if u == UrgencyCritical {
		return 2
	}
	return 1
}

// Notification is one message to put on screen.
type Notification struct {
	Title   string
	Message string
	Icon    string
	// Timeout in milliseconds. 0 keeps the notification on screen until
	// dismissed; negative means "use the configured default".
	Timeout int
	Urgency Urgency
}

// Notifier dispatches a notification.
type Notifier interface {
	Send(n Notification) error
}
