package coach

import "testing"

func TestLineDeterministic(t *testing.T) {
	for _, mode := range []string{ModeEncourage, ModeRoast} {
		first := Line(mode, 42)
		second := Line(mode, 42)
		if first != second {
			t.Errorf("Line(%q, 42) not stable: %q vs %q", mode, first, second)
		}
	}
}

func TestLineNegativeSeed(t *testing.T) {
	if got, want := Line(ModeRoast, -1), Line(ModeRoast, 1); got != want {
		t.Errorf("Line(roast, -1) = %q, want %q", got, want)
	}
}

func TestLineModesDiffer(t *testing.T) {
	if Line(ModeEncourage, 0) == Line(ModeRoast, 0) {
		t.Error("encourage and roast share a line for seed 0")
	}
}

func TestLineCyclesAllLines(t *testing.T) {
	seen := make(map[string]bool)
	for seed := 0; seed < 8; seed++ {
		seen[Line(ModeEncourage, seed)] = true
	}
	if len(seen) != 4 {
		t.Errorf("got %d distinct encourage lines, want 4", len(seen))
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Settings
		want Settings
	}{
		{
			name: "valid settings pass through",
			in:   Settings{Mode: ModeEncourage, IntervalSeconds: 60, Enabled: true},
			want: Settings{Mode: ModeEncourage, IntervalSeconds: 60, Enabled: true},
		},
		{
			name: "unknown mode falls back to roast",
			in:   Settings{Mode: "drill-sergeant", IntervalSeconds: 60},
			want: Settings{Mode: ModeRoast, IntervalSeconds: 60},
		},
		{
			name: "interval clamped low",
			in:   Settings{Mode: ModeRoast, IntervalSeconds: 5},
			want: Settings{Mode: ModeRoast, IntervalSeconds: MinIntervalSeconds},
		},
		{
			name: "interval clamped high",
			in:   Settings{Mode: ModeRoast, IntervalSeconds: 900},
			want: Settings{Mode: ModeRoast, IntervalSeconds: MaxIntervalSeconds},
		},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("%s: Normalize(%+v) = %+v, want %+v", tt.name, tt.in, got, tt.want)
		}
	}
}

func TestDefaultSettings(t *testing.T) {
	got := DefaultSettings()
	if got.Mode != ModeRoast {
		t.Errorf("Mode = %q, want roast", got.Mode)
	}
	if got.IntervalSeconds != DefaultIntervalSeconds {
		t.Errorf("IntervalSeconds = %d, want %d", got.IntervalSeconds, DefaultIntervalSeconds)
	}
	if got.Enabled {
		t.Error("Enabled = true, want false")
	}
}
