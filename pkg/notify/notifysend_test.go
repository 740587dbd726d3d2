package notify

import (
	"errors"
	"reflect"
	"testing"
)

func TestArgs(t *testing.T) {
	n := Notification{
		Title:   "Battery low",
		Message: "BAT0 at 15%: plug in the charger.",
		Icon:    "battery-caution",
		Timeout: 0,
		Urgency: UrgencyCritical,
	}

	want := []string{
		"-u", "critical",
		"-i", "battery-caution",
		"-t", "0",
		"Battery low",
		"BAT0 at 15%: plug in the charger.",
	}
	if got := Args(n); !reflect.DeepEqual(got, want) {
		t.Fatalf("Args = %v, want %v", got, want)
	}
}

func TestCommandString(t *testing.T) {
	n := Notification{
		Title:   "Nearly full",
		Message: "BAT0 at 96%: please unplug the charger.",
		Icon:    "battery-full-charged",
		Timeout: 12000,
		Urgency: UrgencyNormal,
	}

	want := "notify-send -u normal -i battery-full-charged -t 12000 Nearly full BAT0 at 96%: please unplug the charger."
	if got := CommandString(n); got != want {
		t.Fatalf("CommandString = %q, want %q", got, want)
	}
}

func TestNotifySendMissingBinary(t *testing.T) {
	s := &NotifySend{}
	if err := s.Send(Notification{Title: "x"}); err == nil {
		t.Fatalf("expected error when notify-send is not installed")
	}
}

func TestUrgencyHint(t *testing.T) {
	if UrgencyNormal.hint() != 1 {
		t.Errorf("normal hint = %d, want 1", UrgencyNormal.hint())
	}
	if UrgencyCritical.hint() != 2 {
		t.Errorf("critical hint = %d, want 2", UrgencyCritical.hint())
	}
}

type stubNotifier struct {
	err   error
	calls int
}

func (s *stubNotifier) Send(Notification) error {
	s.calls++
	return s.err
}

func TestDispatcherFallsBack(t *testing.T) {
	failing := &stubNotifier{err: errors.New("no session bus")}
	working := &stubNotifier{}
	d := NewDispatcherWith(failing, working)

	if err := d.Send(Notification{Title: "x"}); err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if failing.calls != 1 || working.calls != 1 {
		t.Fatalf("backend calls = %d/%d, want 1/1", failing.calls, working.calls)
	}
}

func TestDispatcherStopsAtFirstSuccess(t *testing.T) {
	first := &stubNotifier{}
	second := &stubNotifier{}
	d := NewDispatcherWith(first, second)

	if err := d.Send(Notification{Title: "x"}); err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if second.calls != 0 {
		t.Fatalf("second backend was called after the first succeeded")
	}
}

func TestDispatcherAllFail(t *testing.T) {
	d := NewDispatcherWith(
		&stubNotifier{err: errors.New("bus gone")},
		&stubNotifier{err: errors.New("binary missing")},
	)

	if err := d.Send(Notification{Title: "x"}); err == nil {
		t.Fatalf("expected combined error when every backend fails")
	}
}
