package power

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultSysfsBase is the kernel power-supply class directory.
const DefaultSysfsBase = "/sys/class/power_supply"

var adapterPrefixes = []string{"ac", "acadapter", "ac0", "adapter"}

// Sysfs reads devices from the /sys/class/power_supply hierarchy.
type Sysfs struct {
	// Base is the power-supply class directory. Tests point it at a
	// temporary tree.
	Base string
}

var _ Source = &Sysfs{}

func NewSysfs() *Sysfs {
	return &Sysfs{Base: DefaultSysfsBase}
}

func (s *Sysfs) Batteries() ([]string, error) {
	return s.devices(func(name string) bool {
		return strings.HasPrefix(strings.ToLower(name), "bat")
	})
}

func (s *Sysfs) Adapters() ([]string, error) {
	return s.devices(func(name string) bool {
		lower := strings.ToLower(name)
		for _, p := range adapterPrefixes {
			if strings.HasPrefix(lower, p) {
				return true
			}
		}
		return false
	})
}

func (s *Sysfs) devices(match func(string) bool) ([]string, error) {
	entries, err := os.ReadDir(s.Base)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list %s: %w", s.Base, err)
	}

	var names []string
	for _, e := range entries {
		if match(e.Name()) {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// Read samples one battery from its capacity and status files. A missing
// or non-numeric capacity yields a nil percent; a missing status yields
// unknown. Only when both files are unreadable is an error returned.
func (s *Sysfs) Read(name string) (Reading, error) {
	r := Reading{Name: name, Status: StatusUnknown}

	capRaw, capErr := s.readFile(name, "capacity")
	if capErr == nil {
		if v, err := strconv.Atoi(capRaw); err == nil {
			r.Percent = &v
		}
	}

	statusRaw, statusErr := s.readFile(name, "status")
	if statusErr == nil {
		r.Status = ParseStatus(statusRaw)
	}

	if capErr != nil && statusErr != nil {
		return r, fmt.Errorf("failed to read battery %s: %v", name, capErr)
	}
	return r, nil
}

func (s *Sysfs) AdapterOnline(name string) (bool, error) {
	raw, err := s.readFile(name, "online")
	if err != nil {
		return false, err
	}
	return raw == "1", nil
}

func (s *Sysfs) readFile(device, file string) (string, error) {
	b, err := os.ReadFile(filepath.Join(s.Base, device, file))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}
