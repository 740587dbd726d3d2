package power

import (
	"errors"
	"testing"
)

// fakeSource is a canned Source for chain tests.
type fakeSource struct {
	batteries []string
	adapters  []string
	readings  map[string]Reading
	online    map[string]bool
	err       error
}

func (f *fakeSource) Batteries() ([]string, error) { return f.batteries, f.err }
func (f *fakeSource) Adapters() ([]string, error)  { return f.adapters, f.err }

func (f *fakeSource) Read(name string) (Reading, error) {
	if f.err != nil {
		return Reading{Name: name, Status: StatusUnknown}, f.err
	}
	if r, ok := f.readings[name]; ok {
		return r, nil
	}
	return Reading{Name: name, Status: StatusUnknown}, nil
}

func (f *fakeSource) AdapterOnline(name string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.online[name], nil
}

func pct(v int) *int { return &v }

func TestChainPrefersFirstNonEmpty(t *testing.T) {
	preferred := &fakeSource{batteries: []string{"BAT0"}}
	fallback := &fakeSource{batteries: []string{"BAT0", "BAT1"}}
	c := NewChain(preferred, fallback)

	names, err := c.Batteries()
	if err != nil {
		t.Fatalf("Batteries returned error: %v", err)
	}
	if len(names) != 1 {
		t.Fatalf("expected preferred source to win, got %v", names)
	}
}

func TestChainFallsThroughOnEmpty(t *testing.T) {
	preferred := &fakeSource{} // tool not installed
	fallback := &fakeSource{batteries: []string{"BAT0"}}
	c := NewChain(preferred, fallback)

	names, err := c.Batteries()
	if err != nil {
		t.Fatalf("Batteries returned error: %v", err)
	}
	if len(names) != 1 || names[0] != "BAT0" {
		t.Fatalf("expected fallback batteries, got %v", names)
	}
}

func TestChainFallsThroughOnError(t *testing.T) {
	preferred := &fakeSource{err: errors.New("tool exploded")}
	fallback := &fakeSource{
		batteries: []string{"BAT0"},
		readings:  map[string]Reading{"BAT0": {Name: "BAT0", Percent: pct(33), Status: StatusDischarging}},
	}
	c := NewChain(preferred, fallback)

	r, err := c.Read("BAT0")
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if r.Percent == nil || *r.Percent != 33 {
		t.Fatalf("expected fallback reading, got %+v", r)
	}
}

func TestChainReadEmptyEverywhere(t *testing.T) {
	c := NewChain(&fakeSource{}, &fakeSource{})

	r, err := c.Read("BAT0")
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if !r.Empty() {
		t.Fatalf("expected empty reading, got %+v", r)
	}
}

func TestChainAdapterOnline(t *testing.T) {
	preferred := &fakeSource{online: map[string]bool{"AC": false}}
	fallback := &fakeSource{online: map[string]bool{"AC": true}}
	c := NewChain(preferred, fallback)

	online, err := c.AdapterOnline("AC")
	if err != nil {
		t.Fatalf("AdapterOnline returned error: %v", err)
	}
	if !online {
		t.Fatalf("expected online=true from fallback")
	}
}
