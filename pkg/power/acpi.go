package power

import (
	"bufio"
	"bytes"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

var (
	acpiBatteryLine = regexp.MustCompile(`^Battery (\d+): ([^,]+), (\d+)%`)
	acpiAdapterLine = regexp.MustCompile(`^Adapter (\d+): (on-line|off-line)`)
	trailingDigits  = regexp.MustCompile(`(\d+)$`)
)

// ACPI queries batteries through the acpi tool. When the tool is not in
// PATH every method reports nothing, so a Chain falls through to sysfs.
type ACPI struct {
	path string
	// run is swapped out in tests to feed canned tool output.
	run func(args ...string) ([]byte, error)
}

var _ Source = &ACPI{}

func NewACPI() *ACPI {
	a := &ACPI{}
	if p, err := exec.LookPath("acpi"); err == nil {
		a.path = p
	}
	a.run = func(args ...string) ([]byte, error) {
		return exec.Command(a.path, args...).Output()
	}
	return a
}

func (a *ACPI) available() bool {
	return a.path != ""
}

// Batteries synthesizes BATn identifiers from the battery numbers the
// tool prints, so they line up with the sysfs names for the same devices.
func (a *ACPI) Batteries() ([]string, error) {
	if !a.available() {
		return nil, nil
	}

	out, err := a.run("-b")
	if err != nil {
		return nil, fmt.Errorf("acpi -b: %w", err)
	}

	var names []string
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		if m := acpiBatteryLine.FindStringSubmatch(scanner.Text()); m != nil {
			names = append(names, "BAT"+m[1])
		}
	}
	return names, scanner.Err()
}

func (a *ACPI) Adapters() ([]string, error) {
	if !a.available() {
		return nil, nil
	}

	out, err := a.run("-a")
	if err != nil {
		return nil, fmt.Errorf("acpi -a: %w", err)
	}

	var names []string
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		if m := acpiAdapterLine.FindStringSubmatch(scanner.Text()); m != nil {
			names = append(names, "AC"+m[1])
		}
	}
	return names, scanner.Err()
}

// Read scans the tool output for the line whose battery number matches
// the numeric suffix of name.
func (a *ACPI) Read(name string) (Reading, error) {
	r := Reading{Name: name, Status: StatusUnknown}
	if !a.available() {
		return r, nil
	}

	out, err := a.run("-b")
	if err != nil {
		return r, fmt.Errorf("acpi -b: %w", err)
	}

	suffix := trailingDigits.FindString(name)
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		m := acpiBatteryLine.FindStringSubmatch(scanner.Text())
		if m == nil || !numberMatches(m[1], suffix) {
			continue
		}
		r.Status = ParseStatus(m[2])
		if v, err := strconv.Atoi(m[3]); err == nil {
			r.Percent = &v
		}
		return r, scanner.Err()
	}
	return r, scanner.Err()
}

func (a *ACPI) AdapterOnline(name string) (bool, error) {
	if !a.available() {
		return false, nil
	}

	out, err := a.run("-a")
	if err != nil {
		return false, fmt.Errorf("acpi -a: %w", err)
	}

	suffix := trailingDigits.FindString(name)
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		m := acpiAdapterLine.FindStringSubmatch(scanner.Text())
		if m == nil || !numberMatches(m[1], suffix) {
			continue
		}
		return m[2] == "on-line", nil
	}
	return false, scanner.Err()
}

// numberMatches compares an acpi device number against the numeric suffix
// of an identifier. Identifiers without digits (like the sysfs "AC")
// match device 0, which is the only device on single-adapter machines.
func numberMatches(number, suffix string) bool {
	if suffix == "" {
		return strings.TrimLeft(number, "0") == ""
	}
	a, errA := strconv.Atoi(number)
	b, errB := strconv.Atoi(suffix)
	return errA == nil && errB == nil && a == b
}
