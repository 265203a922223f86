package stress

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestClassifyBaseMapping(t *testing.T) {
	cases := map[Emotion]Level{
		EmotionAngry:    LevelHigh,
		EmotionFear:     LevelHigh,
		EmotionSad:      LevelHigh,
		EmotionNeutral:  LevelMedium,
		EmotionDisgust:  LevelLow,
		EmotionHappy:    LevelLow,
		EmotionSurprise: LevelLow,
	}
	require.Len(t, cases, len(Emotions))

	for emotion, want := range cases {
		t.Run(string(emotion), func(t *testing.T) {
			got, err := Classify(emotion, "")
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestClassifyRoutineOverride(t *testing.T) {
	tests := []struct {
		name    string
		emotion Emotion
		routine string
		want    Level
	}{
		{name: "work forces high over low", emotion: EmotionHappy, routine: "all I do is work all day", want: LevelHigh},
		{name: "exercise and sleep force low over high", emotion: EmotionAngry, routine: "I do exercise and sleep well", want: LevelLow},
		{name: "work without exercise forces high", emotion: EmotionNeutral, routine: "just work and work", want: LevelHigh},
		{name: "exercise beats work", emotion: EmotionHappy, routine: "I work every day, no time for exercise", want: LevelLow},
		{name: "sleep alone forces low", emotion: EmotionFear, routine: "need more sleep", want: LevelLow},
		{name: "work and sleep without exercise is high", emotion: EmotionSurprise, routine: "work, then sleep", want: LevelHigh},
		{name: "case insensitive", emotion: EmotionSad, routine: "EXERCISE every morning", want: LevelLow},
		{name: "substring match", emotion: EmotionHappy, routine: "homework all evening", want: LevelHigh},
		{name: "no keyword keeps base", emotion: EmotionNeutral, routine: "reading and cooking", want: LevelMedium},
		{name: "empty routine keeps base", emotion: EmotionNeutral, routine: "", want: LevelMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(tt.emotion, tt.routine)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyRejectsUnknownEmotion(t *testing.T) {
	_, err := Classify(Emotion("Unknown"), "")
	require.ErrorIs(t, err, ErrInvalidEmotion)

	_, err = Classify(Emotion("happy"), "work")
	require.ErrorIs(t, err, ErrInvalidEmotion)
}

func TestClassifyInput(t *testing.T) {
	routine := "daily exercise"

	tests := []struct {
		name    string
		emotion string
		routine any
		want    Level
		wantErr error
	}{
		{name: "absent routine", emotion: "Neutral", routine: nil, want: LevelMedium},
		{name: "string routine", emotion: "Angry", routine: "daily exercise and sleep", want: LevelLow},
		{name: "pointer routine", emotion: "Angry", routine: &routine, want: LevelLow},
		{name: "nil pointer routine", emotion: "Sad", routine: (*string)(nil), want: LevelHigh},
		{name: "unknown emotion", emotion: "Unknown", routine: nil, wantErr: ErrInvalidEmotion},
		{name: "numeric routine", emotion: "Happy", routine: 42, wantErr: ErrInvalidRoutine},
		{name: "float routine", emotion: "Happy", routine: 42.0, wantErr: ErrInvalidRoutine},
		{name: "structured routine", emotion: "Happy", routine: map[string]any{"work": true}, wantErr: ErrInvalidRoutine},
		{name: "emotion checked before routine", emotion: "Unknown", routine: 42, wantErr: ErrInvalidEmotion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ClassifyInput(tt.emotion, tt.routine)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyDoesNotMutateRoutine(t *testing.T) {
	routine := "WORK Work work"
	_, err := ClassifyInput("Happy", &routine)
	require.NoError(t, err)
	assert.Equal(t, "WORK Work work", routine)
}

func TestClassifyConcurrentCallers(t *testing.T) {
	var wg sync.WaitGroup
	results := make([]Level, 64)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			level, err := Classify(EmotionHappy, "work")
			if err == nil {
				results[i] = level
			}
		}(i)
	}
	wg.Wait()

	for _, level := range results {
		assert.Equal(t, LevelHigh, level)
	}
}

func TestParseEmotion(t *testing.T) {
	for _, emotion := range Emotions {
		got, err := ParseEmotion(string(emotion))
		require.NoError(t, err)
		assert.Equal(t, emotion, got)
	}
	for _, raw := range []string{"", "Unknown", "angry", " Happy"} {
		_, err := ParseEmotion(raw)
		assert.ErrorIs(t, err, ErrInvalidEmotion, raw)
	}
}
