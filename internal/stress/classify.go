// Package stress maps a detected emotion and an optional daily-routine
// description to a stress level, and a stress level to guidance text.
//
// Everything here is pure and deterministic. Callers own logging and
// persistence.
package stress

import (
	"fmt"
	"strings"
)

var baseLevels = map[Emotion]Level{
	EmotionAngry:    LevelHigh,
	EmotionFear:     LevelHigh,
	EmotionSad:      LevelHigh,
	EmotionNeutral:  LevelMedium,
	EmotionDisgust:  LevelLow,
	EmotionHappy:    LevelLow,
	EmotionSurprise: LevelLow,
}

// Classify derives the stress level for an emotion, optionally overridden by
// keywords in the routine text. An empty routine keeps the emotion mapping.
//
// The routine override replaces the emotion result outright:
// "work" without "exercise" forces HIGH, otherwise "exercise" or "sleep"
// forces LOW.
func Classify(emotion Emotion, routine string) (Level, error) {
	level, ok := baseLevels[emotion]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidEmotion, string(emotion))
	}
	if routine == "" {
		return level, nil
	}
	if override, ok := routineOverride(routine); ok {
		return override, nil
	}
	return level, nil
}

// ClassifyInput is Classify for untyped input such as decoded JSON. The
// routine may be nil, a string or a *string; any other type is rejected with
// ErrInvalidRoutine. The emotion is validated first.
func ClassifyInput(emotion string, routine any) (Level, error) {
	parsed, err := ParseEmotion(emotion)
	if err != nil {
		return "", err
	}
	text, err := routineText(routine)
	if err != nil {
		return "", err
	}
	return Classify(parsed, text)
}

func routineText(routine any) (string, error) {
	switch v := routine.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case *string:
		if v == nil {
			return "", nil
		}
		return *v, nil
	default:
		return "", fmt.Errorf("%w: expected string, got %T", ErrInvalidRoutine, routine)
	}
}

func routineOverride(routine string) (Level, bool) {
	text := strings.ToLower(routine)
	hasWork := strings.Contains(text, "work")
	hasExercise := strings.Contains(text, "exercise")
	switch {
	case hasWork && !hasExercise:
		return LevelHigh, true
	case hasExercise || strings.Contains(text, "sleep"):
		return LevelLow, true
	default:
		return "", false
	}
}
