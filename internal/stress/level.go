package stress

import "fmt"

// Level is the derived stress severity. The set is closed and ordered.
type Level string

const (
	LevelLow    Level = "LOW"
	LevelMedium Level = "MEDIUM"
	LevelHigh   Level = "HIGH"
)

// Levels lists every stress level in ascending order.
var Levels = []Level{LevelLow, LevelMedium, LevelHigh}

// ParseLevel validates a stress level string. Matching is exact.
func ParseLevel(raw string) (Level, error) {
	level := Level(raw)
	if !level.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStressLevel, raw)
	}
	return level, nil
}

// Valid reports whether l is one of the enumerated levels.
func (l Level) Valid() bool {
	return l.Rank() > 0
}

// Rank orders levels for charts and comparisons: LOW=1, MEDIUM=2, HIGH=3.
// Unknown values rank 0.
func (l Level) Rank() int {
	switch l {
	case LevelLow:
		return 1
	case LevelMedium:
		return 2
	case LevelHigh:
		return 3
	default:
		return 0
	}
}

func (l Level) String() string {
	return string(l)
}
