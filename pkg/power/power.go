// Package power discovers battery and AC-adapter devices and reads their
// state. Two sources exist: the acpi tool (preferred) and the sysfs
// power-supply class (fallback). A Chain tries them in priority order.
package power

import "strings"

// Status is the charging state reported for a battery.
type Status string

const (
	StatusCharging    Status = "charging"
	StatusDischarging Status = "discharging"
	StatusFull        Status = "full"
	StatusUnknown     Status = "unknown"
)

// ParseStatus normalizes a raw status string from acpi or sysfs. Anything
// unrecognized (including "Not charging") maps to unknown.
func ParseStatus(raw string) Status {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "charging":
		return StatusCharging
	case "discharging":
		return StatusDischarging
	case "full":
		return StatusFull
	default:
		return StatusUnknown
	}
}

// Reading is one battery sample. Percent is nil when the capacity value
// was missing or non-numeric.
type Reading struct {
	Name    string `json:"name"`
	Percent *int   `json:"percent"`
	Status  Status `json:"status"`
}

// Empty reports whether the reading carries no usable data at all.
func (r Reading) Empty() bool {
	return r.Percent == nil && r.Status == StatusUnknown
}

// Source is one way of discovering and reading power devices.
type Source interface {
	// Batteries returns the battery identifiers present on the host.
	Batteries() ([]string, error)
	// Adapters returns the AC-adapter identifiers present on the host.
	Adapters() ([]string, error)
	// Read samples one battery.
	Read(name string) (Reading, error)
	// AdapterOnline reports whether the named adapter is supplying power.
	AdapterOnline(name string) (bool, error)
}
