package loop

import (
	"testing"

	errs "github.com/matzehuels/tilecard/pkg/errors"
	"github.com/matzehuels/tilecard/pkg/grid"
)

func TestParseIntent(t *testing.T) {
	tests := []struct {
		line string
		want Intent
	}{
		{"cycle 3", CycleCell(3)},
		{"  CYCLE   12 ", CycleCell(12)},
		{"expand width", ExpandAxis(grid.AxisWidth)},
		{"expand count", ExpandAxis(grid.AxisCount)},
		{"press shift", Press("shift")},
		{"release shift", Release("shift")},
		{"preset strands", SelectPreset("strands")},
		{"copy", Copy("")},
		{`copy Wordle 1,582 ?/6\n`, Copy("Wordle 1,582 ?/6\n")},
		{`copy a\\nb\tc`, Copy("a\\nb\tc")},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := ParseIntent(tt.line)
			if err != nil {
				t.Fatalf("ParseIntent(%q) error: %v", tt.line, err)
			}
			if got != tt.want {
				t.Errorf("ParseIntent(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestParseIntentErrors(t *testing.T) {
	for _, line := range []string{"", "jump", "cycle", "cycle x", "expand depth", "press", "preset"} {
		t.Run(line, func(t *testing.T) {
			if _, err := ParseIntent(line); !errs.Is(err, errs.ErrCodeInvalidIntent) {
				t.Errorf("ParseIntent(%q) error = %v, want INVALID_INTENT", line, err)
			}
		})
	}
}

func TestIntentStringRoundTrip(t *testing.T) {
	intents := []Intent{
		CycleCell(7),
		ExpandAxis(grid.AxisHeight),
		Press("shift"),
		Release("shift"),
		SelectPreset("connections"),
		Copy("Strands #590\n“Hidden gems”"),
		Copy(`back\slash`),
	}
	for _, in := range intents {
		got, err := ParseIntent(in.String())
		if err != nil {
			t.Fatalf("ParseIntent(%q): %v", in.String(), err)
		}
		if got != in {
			t.Errorf("round trip of %q = %+v, want %+v", in.String(), got, in)
		}
	}
}
