package eventlog

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"
)

func TestPrintfFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.log")
	l := New(path, false)
	l.now = func() time.Time {
		return time.Date(2026, 8, 26, 13, 37, 42, 0, time.UTC)
	}

	l.Printf("Battery %s: %d%%", "BAT0", 57)

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	want := "[2026-08-26 13:37:42] Battery BAT0: 57%\n"
	if string(b) != want {
		t.Fatalf("log line = %q, want %q", string(b), want)
	}
}

func TestPrintfDisabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.log")
	l := New(path, true)

	l.Printf("should not be written")

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("disabled log created a file")
	}
}

func TestRotationThreshold(t *testing.T) {
	tests := []struct {
		name       string
		size       int
		wantRotate bool
	}{
		{"at threshold stays", 100, false},
		{"above threshold rotates", 101, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "events.log")
			if err := os.WriteFile(path, []byte(strings.Repeat("x", tt.size)), 0644); err != nil {
				t.Fatalf("failed to seed log: %v", err)
			}

			l := New(path, false)
			l.maxSize = 100

			if err := l.RotateIfNeeded(); err != nil {
				t.Fatalf("RotateIfNeeded returned error: %v", err)
			}

			_, err := os.Stat(path + ".1")
			rotated := err == nil
			if rotated != tt.wantRotate {
				t.Fatalf("rotated = %t, want %t", rotated, tt.wantRotate)
			}
		})
	}
}

func TestRotationReplacesBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.log")
	if err := os.WriteFile(path+".1", []byte("old backup"), 0644); err != nil {
		t.Fatalf("failed to seed backup: %v", err)
	}
	if err := os.WriteFile(path, []byte(strings.Repeat("x", 101)), 0644); err != nil {
		t.Fatalf("failed to seed log: %v", err)
	}

	l := New(path, false)
	l.maxSize = 100

	if err := l.RotateIfNeeded(); err != nil {
		t.Fatalf("RotateIfNeeded returned error: %v", err)
	}

	b, err := os.ReadFile(path + ".1")
	if err != nil {
		t.Fatalf("failed to read backup: %v", err)
	}
	if string(b) != strings.Repeat("x", 101) {
		t.Fatalf("backup was not replaced by the rotated log")
	}
}

func TestRotationMissingFile(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "events.log"), false)
	if err := l.RotateIfNeeded(); err != nil {
		t.Fatalf("RotateIfNeeded on a missing file returned error: %v", err)
	}
}

func TestDefaultThreshold(t *testing.T) {
	if MaxSize != 1_000_000 {
		t.Fatalf("MaxSize = %d, want 1000000", MaxSize)
	}
}

func TestTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.log")
	content := "one\ntwo\nthree\nfour\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to seed log: %v", err)
	}

	lines, err := Tail(path, 2)
	if err != nil {
		t.Fatalf("Tail returned error: %v", err)
	}
	if len(lines) != 2 || lines[0] != "three" || lines[1] != "four" {
		t.Fatalf("Tail = %v, want [three four]", lines)
	}

	lines, err = Tail(path, 100)
	if err != nil {
		t.Fatalf("Tail returned error: %v", err)
	}
	if len(lines) != 4 {
		t.Fatalf("expected all 4 lines, got %v", lines)
	}
}

func TestTailMissingFile(t *testing.T) {
	lines, err := Tail(filepath.Join(t.TempDir(), "nope.log"), 10)
	if err != nil {
		t.Fatalf("Tail on a missing file returned error: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected no lines, got %v", lines)
	}
}

func TestTimestampShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.log")
	l := New(path, false)

	l.Printf("hello")

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	re := regexp.MustCompile(`^\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\] hello\n$`)
	if !re.Match(b) {
		t.Fatalf("log line %q does not match the expected timestamp shape", string(b))
	}
}
