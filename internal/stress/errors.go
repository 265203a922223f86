package stress

import "errors"

var (
	ErrInvalidEmotion     = errors.New("invalid emotion")
	ErrInvalidRoutine     = errors.New("invalid routine")
	ErrInvalidStressLevel = errors.New("invalid stress level")
)
