package notify

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// NotifySend dispatches through the notify-send binary.
type NotifySend struct {
	path string
}

var _ Notifier = &NotifySend{}

func NewNotifySend() *NotifySend {
	s := &NotifySend{}
	if p, err := exec.LookPath("notify-send"); err == nil {
		s.path = p
	}
	return s
}

// Args builds the notify-send argument list for a notification.
func Args(n Notification) []string {
	return []string{
		"-u", string(n.Urgency),
		"-i", n.Icon,
		"-t", strconv.Itoa(n.Timeout),
		n.Title,
		n.Message,
	}
}

// CommandString renders the full notify-send invocation. It is what gets
// logged when dispatch fails, so the event is still traceable.
func CommandString(n Notification) string {
	return strings.Join(append([]string{"notify-send"}, Args(n)...), " ")
}

func (s *NotifySend) Send(n Notification) error {
	if s.path == "" {
		return fmt.Errorf("notify-send not found in PATH")
	}
	if err := exec.Command(s.path, Args(n)...).Run(); err != nil {
		return fmt.Errorf("notify-send failed: %w", err)
	}
	return nil
}
