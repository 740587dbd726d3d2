package notify

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	notificationsDest = "org.freedesktop.Notifications"
	notificationsPath = "/org/freedesktop/Notifications"
	notifyMethod      = "org.freedesktop.Notifications.Notify"

	appName = "batmon"
)

// DBus sends notifications straight to the session notification service.
type DBus struct {
	conn *dbus.Conn
}

var _ Notifier = &DBus{}

// NewDBus connects to the session bus. It fails when no session is
// available, e.g. for a daemon started outside a desktop session.
func NewDBus() (*DBus, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return &DBus{conn: conn}, nil
}

func (d *DBus) Send(n Notification) error {
	obj := d.conn.Object(notificationsDest, dbus.ObjectPath(notificationsPath))

	hints := map[string]dbus.Variant{
		"urgency": dbus.MakeVariant(n.Urgency.hint()),
	}

	call := obj.Call(notifyMethod, 0,
		appName,
		uint32(0), // no notification is replaced
		n.Icon,
		n.Title,
		n.Message,
		[]string{}, // no actions
		hints,
		int32(n.Timeout),
	)
	if call.Err != nil {
		return fmt.Errorf("notification call failed: %w", call.Err)
	}
	return nil
}
