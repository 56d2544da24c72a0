// Package coach hands out short motivational (or abrasive) prompt lines for
// the in-workout coach overlay. Lines are deterministic per seed so repeated
// fetches inside one rest interval do not flap.
package coach

// Coach modes.
const (
	ModeEncourage = "encourage"
	ModeRoast     = "roast"
)

// Interval bounds in seconds for how often the coach speaks.
const (
	MinIntervalSeconds     = 20
	MaxIntervalSeconds     = 300
	DefaultIntervalSeconds = 75
)

// Settings controls the coach overlay for one user.
type Settings struct {
	Mode            string `json:"mode"`
	IntervalSeconds int    `json:"intervalSeconds"`
	Enabled         bool   `json:"enabled"`
}

// DefaultSettings returns the out-of-box coach configuration.
func DefaultSettings() Settings {
	return Settings{
		Mode:            ModeRoast,
		IntervalSeconds: DefaultIntervalSeconds,
		Enabled:         false,
	}
}

// Normalize clamps the interval into bounds and falls back to roast mode for
// unknown mode strings.
func Normalize(s Settings) Settings {
	if s.Mode != ModeEncourage && s.Mode != ModeRoast {
		s.Mode = ModeRoast
	}
	if s.IntervalSeconds < MinIntervalSeconds {
		s.IntervalSeconds = MinIntervalSeconds
	}
	if s.IntervalSeconds > MaxIntervalSeconds {
		s.IntervalSeconds = MaxIntervalSeconds
	}
	return s
}

var encourageLines = []string{
	"Strong set. Keep your breathing steady and stay locked in.",
	"You are moving well. Smooth reps and clean control.",
	"Stay patient through the hard reps. You are building real strength.",
	"Keep the tempo sharp. Finish this block with intent.",
}

var roastLines = []string{
	"That all you got? Add intent and move the weight like you mean it.",
	"No autopilot. Own this next set and stop negotiating.",
	"You wanted results, not excuses. Lift with conviction.",
	"Wake up. Crisp reps and zero lazy form.",
}

// Line returns the prompt line for a mode and seed. The same seed always
// yields the same line; negative seeds are folded to positive.
func Line(mode string, seed int) string {
	lines := encourageLines
	if mode == ModeRoast {
		lines = roastLines
	}
	if seed < 0 {
		seed = -seed
	}
	return lines[seed%len(lines)]
}
