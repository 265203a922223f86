package stress

import "fmt"

// Recommendation copy is displayed and stored as-is. Do not reflow.
const (
	recommendationHigh = "1. Try deep breathing exercises or take a short walk.\n" +
		"2. Practice mindfulness or meditation for 10-15 minutes.\n" +
		"3. Take regular breaks during work to relax your mind.\n" +
		"4. Consider talking to a friend or counselor about your stress."

	recommendationMedium = "1. Listen to calming music or nature sounds.\n" +
		"2. Ensure you're getting enough sleep (7-8 hours per night).\n" +
		"3. Engage in light physical activity like yoga or stretching.\n" +
		"4. Maintain a balanced diet and stay hydrated."

	recommendationLow = "1. Keep up the good work! Stay consistent with your exercise and sleep routines.\n" +
		"2. Practice gratitude by writing down things you're thankful for.\n" +
		"3. Engage in hobbies or activities that bring you joy.\n" +
		"4. Help others or volunteer to boost your mood."
)

// Recommend returns the guidance text for a stress level.
func Recommend(level Level) (string, error) {
	switch level {
	case LevelHigh:
		return recommendationHigh, nil
	case LevelMedium:
		return recommendationMedium, nil
	case LevelLow:
		return recommendationLow, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStressLevel, string(level))
	}
}
