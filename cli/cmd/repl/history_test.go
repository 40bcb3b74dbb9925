package repl

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestHistory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), baseHistory)
	h := NewHistory(path)

	if err := h.Load(); err != nil {
		t.Fatalf("Load() of a missing file: %v", err)
	}

	for _, e := range []HistoryEntry{
		{"(def x 1)", modeEval},
		{"list", modeCtrl},
		{"list", modeCtrl},
		{"  ", modeEval},
		{"(def x 1)", modeEval},
	} {
		if _, err := h.WriteWithMode(e.Line, e.Mode); err != nil {
			t.Fatal(err)
		}
	}

	want := []HistoryEntry{{"list", modeCtrl}, {"(def x 1)", modeEval}}

	if got := h.Entries(); !slices.Equal(got, want) {
		t.Errorf("Entries() = %v, want %v", got, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if got, want := string(data), "C:list\nE:(def x 1)\n"; got != want {
		t.Errorf("file = %q, want %q", got, want)
	}

	reloaded := NewHistory(path)
	if err := reloaded.Load(); err != nil {
		t.Fatal(err)
	}

	if got := reloaded.Entries(); !slices.Equal(got, want) {
		t.Errorf("reloaded Entries() = %v, want %v", got, want)
	}

	if _, err := reloaded.GetEntry(2); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("GetEntry(2) error = %v, want %v", err, ErrOutOfBounds)
	}
}

func TestDecodeEntry(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		want HistoryEntry
	}{
		{"E:(roll '1d6')", HistoryEntry{"(roll '1d6')", modeEval}},
		{"C:help", HistoryEntry{"help", modeCtrl}},
		{"(legacy)", HistoryEntry{"(legacy)", modeEval}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()

			if got := decodeEntry(tt.line); got != tt.want {
				t.Errorf("decodeEntry(%q) = %v, want %v", tt.line, got, tt.want)
			}

			if got := tt.want.encode(); got != "" && decodeEntry(got[:len(got)-1]) != tt.want {
				t.Errorf("decodeEntry(encode(%v)) differs", tt.want)
			}
		})
	}
}
