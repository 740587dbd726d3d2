package power

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSysfsDevice(t *testing.T, base, name string, files map[string]string) {
	t.Helper()

	dir := filepath.Join(base, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create device dir: %v", err)
	}
	for file, content := range files {
		if err := os.WriteFile(filepath.Join(dir, file), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", file, err)
		}
	}
}

func TestSysfsDetection(t *testing.T) {
	base := t.TempDir()
	writeSysfsDevice(t, base, "BAT0", map[string]string{"capacity": "57\n", "status": "Discharging\n"})
	writeSysfsDevice(t, base, "BAT1", map[string]string{"capacity": "91\n", "status": "Charging\n"})
	writeSysfsDevice(t, base, "AC", map[string]string{"online": "1\n"})
	writeSysfsDevice(t, base, "hidpp_battery_0", nil) // peripheral, must not match
	s := &Sysfs{Base: base}

	batteries, err := s.Batteries()
	if err != nil {
		t.Fatalf("Batteries returned error: %v", err)
	}
	if len(batteries) != 2 {
		t.Fatalf("expected 2 batteries, got %v", batteries)
	}

	adapters, err := s.Adapters()
	if err != nil {
		t.Fatalf("Adapters returned error: %v", err)
	}
	if len(adapters) != 1 || adapters[0] != "AC" {
		t.Fatalf("expected [AC], got %v", adapters)
	}
}

func TestSysfsDetectionMissingBase(t *testing.T) {
	s := &Sysfs{Base: filepath.Join(t.TempDir(), "nonexistent")}

	batteries, err := s.Batteries()
	if err != nil {
		t.Fatalf("expected no error for missing base, got %v", err)
	}
	if len(batteries) != 0 {
		t.Fatalf("expected no batteries, got %v", batteries)
	}
}

func TestSysfsRead(t *testing.T) {
	tests := []struct {
		name        string
		files       map[string]string
		wantPercent int
		wantNil     bool
		wantStatus  Status
		wantErr     bool
	}{
		{
			name:        "normal reading",
			files:       map[string]string{"capacity": "42\n", "status": "Discharging\n"},
			wantPercent: 42,
			wantStatus:  StatusDischarging,
		},
		{
			name:       "non-numeric capacity is absent",
			files:      map[string]string{"capacity": "garbage\n", "status": "Full\n"},
			wantNil:    true,
			wantStatus: StatusFull,
		},
		{
			name:        "missing status is unknown",
			files:       map[string]string{"capacity": "10\n"},
			wantPercent: 10,
			wantStatus:  StatusUnknown,
		},
		{
			name:       "unreadable device errors",
			files:      nil,
			wantNil:    true,
			wantStatus: StatusUnknown,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := t.TempDir()
			writeSysfsDevice(t, base, "BAT0", tt.files)
			s := &Sysfs{Base: base}

			r, err := s.Read("BAT0")
			if tt.wantErr != (err != nil) {
				t.Fatalf("error mismatch: got %v", err)
			}
			if tt.wantNil {
				if r.Percent != nil {
					t.Fatalf("expected nil percent, got %d", *r.Percent)
				}
			} else if r.Percent == nil || *r.Percent != tt.wantPercent {
				t.Fatalf("expected percent %d, got %v", tt.wantPercent, r.Percent)
			}
			if r.Status != tt.wantStatus {
				t.Fatalf("expected status %s, got %s", tt.wantStatus, r.Status)
			}
		})
	}
}

func TestSysfsAdapterOnline(t *testing.T) {
	base := t.TempDir()
	writeSysfsDevice(t, base, "AC", map[string]string{"online": "1\n"})
	writeSysfsDevice(t, base, "ADP1", map[string]string{"online": "0\n"})
	s := &Sysfs{Base: base}

	online, err := s.AdapterOnline("AC")
	if err != nil {
		t.Fatalf("AdapterOnline returned error: %v", err)
	}
	if !online {
		t.Fatalf("expected AC online")
	}

	online, err = s.AdapterOnline("ADP1")
	if err != nil {
		t.Fatalf("AdapterOnline returned error: %v", err)
	}
	if online {
		t.Fatalf("expected ADP1 offline")
	}
}
