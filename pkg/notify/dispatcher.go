package notify

import (
	"errors"

	"github.com/sirupsen/logrus"
)

// Dispatcher tries each backend in order and stops at the first success.
type Dispatcher struct {
	backends []Notifier
}

var _ Notifier = &Dispatcher{}

// NewDispatcher assembles the production backends: the session bus when
// one is reachable, then notify-send.
func NewDispatcher() *Dispatcher {
	d := &Dispatcher{}

	if db, err := NewDBus(); err == nil {
		d.backends = append(d.backends, db)
	} else {
		logrus.Debugf("session bus unavailable, will use notify-send only: %v", err)
	}
	d.backends = append(d.backends, NewNotifySend())

	return d
}

// NewDispatcherWith builds a dispatcher over explicit backends, for tests.
func NewDispatcherWith(backends ...Notifier) *Dispatcher {
	return &Dispatcher{backends: backends}
}

func (d *Dispatcher) Send(n Notification) error {
	var errs []error
	for _, b := range d.backends {
		err := b.Send(n)
		if err == nil {
			return nil
		}
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
