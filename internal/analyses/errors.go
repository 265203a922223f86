package analyses

import (
	"errors"

	"stress-backend/internal/detection"
	"stress-backend/internal/stress"
)

var (
	ErrRoutineRequired = errors.New("daily routine is required before capturing")
	ErrImageRequired   = errors.New("image is required")
	ErrUserRequired    = errors.New("user id is required")
)

// errorCode returns the API error code for known failures, or "" otherwise.
func errorCode(err error) string {
	switch {
	case errors.Is(err, stress.ErrInvalidEmotion):
		return "invalid_emotion"
	case errors.Is(err, stress.ErrInvalidRoutine):
		return "invalid_routine"
	case errors.Is(err, stress.ErrInvalidStressLevel):
		return "invalid_stress_level"
	case errors.Is(err, ErrRoutineRequired):
		return "routine_required"
	case errors.Is(err, ErrImageRequired):
		return "validation_error"
	case errors.Is(err, detection.ErrNoFace):
		return "no_face_detected"
	case errors.Is(err, detection.ErrDetectorNotConfigured):
		return "detector_unavailable"
	default:
		return ""
	}
}
