package power

import "github.com/sirupsen/logrus"

// Chain tries sources in fixed priority order; the first non-empty
// result wins. Errors from a source demote it to the next one.
type Chain struct {
	sources []Source
}

var _ Source = &Chain{}

// NewChain builds a chain over the given sources, highest priority first.
func NewChain(sources ...Source) *Chain {
	return &Chain{sources: sources}
}

// NewDefaultChain is the production chain: acpi first, sysfs fallback.
func NewDefaultChain() *Chain {
	return NewChain(NewACPI(), NewSysfs())
}

func (c *Chain) Batteries() ([]string, error) {
	return c.detect(Source.Batteries)
}

func (c *Chain) Adapters() ([]string, error) {
	return c.detect(Source.Adapters)
}

func (c *Chain) detect(list func(Source) ([]string, error)) ([]string, error) {
	var lastErr error
	for _, s := range c.sources {
		names, err := list(s)
		if err != nil {
			logrus.Debugf("device detection failed, trying next source: %v", err)
			lastErr = err
			continue
		}
		if len(names) > 0 {
			return names, nil
		}
	}
	return nil, lastErr
}

func (c *Chain) Read(name string) (Reading, error) {
	var lastErr error
	for _, s := range c.sources {
		r, err := s.Read(name)
		if err != nil {
			logrus.Debugf("reading %s failed, trying next source: %v", name, err)
			lastErr = err
			continue
		}
		if !r.Empty() {
			return r, nil
		}
	}
	return Reading{Name: name, Status: StatusUnknown}, lastErr
}

func (c *Chain) AdapterOnline(name string) (bool, error) {
	var lastErr error
	for _, s := range c.sources {
		online, err := s.AdapterOnline(name)
		if err != nil {
			lastErr = err
			continue
		}
		if online {
			return true, nil
		}
	}
	return false, lastErr
}
