package detection

import (
	"errors"
	"fmt"
	"math"

	"stress-backend/internal/stress"
)

var (
	ErrInvalidScores         = errors.New("invalid detector scores")
	ErrNoFace                = errors.New("no face detected")
	ErrDetectorNotConfigured = errors.New("detector not configured")
)

// Labels is the classifier output order; scores[i] belongs to Labels[i].
var Labels = stress.Emotions

// Thresholds tunes how raw classifier confidence is collapsed into a label.
type Thresholds struct {
	Happy   float64
	Neutral float64
}

// DefaultThresholds matches the thresholds the emotion model was calibrated with.
func DefaultThresholds() Thresholds {
	return Thresholds{Happy: 0.5, Neutral: 0.4}
}

// Prediction is the detector outcome handed to the stress classifier.
type Prediction struct {
	Emotion    stress.Emotion `json:"emotion"`
	Confidence float64        `json:"confidence"`
	RawLabel   stress.Emotion `json:"rawLabel"`
}

// Decide picks the arg-max label and applies the confidence thresholds:
// a confident Happy stays Happy, any other prediction above the neutral
// threshold becomes Neutral, and everything else falls back to Sad.
func Decide(scores []float64, th Thresholds) (Prediction, error) {
	if len(scores) != len(Labels) {
		return Prediction{}, fmt.Errorf("%w: want %d scores, got %d", ErrInvalidScores, len(Labels), len(scores))
	}
	best := 0
	for i, s := range scores {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return Prediction{}, fmt.Errorf("%w: score %d is not finite", ErrInvalidScores, i)
		}
		if s > scores[best] {
			best = i
		}
	}

	raw := Labels[best]
	confidence := scores[best]
	final := stress.EmotionSad
	switch {
	case raw == stress.EmotionHappy && confidence >= th.Happy:
		final = stress.EmotionHappy
	case confidence > th.Neutral:
		final = stress.EmotionNeutral
	}

	return Prediction{Emotion: final, Confidence: confidence, RawLabel: raw}, nil
}
