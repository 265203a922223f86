package stress

import "fmt"

// Emotion is a facial-expression label produced by the external detector.
type Emotion string

const (
	EmotionAngry    Emotion = "Angry"
	EmotionDisgust  Emotion = "Disgust"
	EmotionFear     Emotion = "Fear"
	EmotionHappy    Emotion = "Happy"
	EmotionSad      Emotion = "Sad"
	EmotionSurprise Emotion = "Surprise"
	EmotionNeutral  Emotion = "Neutral"
)

// Emotions lists the closed emotion set in detector output order.
var Emotions = []Emotion{
	EmotionAngry,
	EmotionDisgust,
	EmotionFear,
	EmotionHappy,
	EmotionSad,
	EmotionSurprise,
	EmotionNeutral,
}

// ParseEmotion validates an emotion label. Matching is exact and case-sensitive.
func ParseEmotion(raw string) (Emotion, error) {
	emotion := Emotion(raw)
	if !emotion.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidEmotion, raw)
	}
	return emotion, nil
}

// Valid reports whether e belongs to the closed emotion set.
func (e Emotion) Valid() bool {
	_, ok := baseLevels[e]
	return ok
}

func (e Emotion) String() string {
	return string(e)
}
