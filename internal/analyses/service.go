package analyses

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"stress-backend/internal/detection"
	"stress-backend/internal/shared/metrics"
	"stress-backend/internal/shared/storage/object"
	"stress-backend/internal/shared/telemetry"
	"stress-backend/internal/stress"
)

const defaultPageLimit = 50

// Service contains business logic for stress analyses.
type Service struct {
	Repo     Repo
	Store    object.ObjectStore
	Detector detection.Detector
	// PageLimit caps History page sizes. Zero means defaultPageLimit.
	PageLimit int
	Now       func() time.Time
}

// NewService constructs a Service backed by repo. Store and Detector are optional.
func NewService(repo Repo, store object.ObjectStore, detector detection.Detector) *Service {
	return &Service{Repo: repo, Store: store, Detector: detector}
}

// Analyze classifies the input, resolves the recommendation and persists the result.
func (s *Service) Analyze(ctx context.Context, userID string, in Input) (Record, error) {
	if strings.TrimSpace(userID) == "" {
		return Record{}, ErrUserRequired
	}
	level, err := stress.ClassifyInput(in.Emotion, in.Routine)
	if err != nil {
		metrics.IncRejected(errorCode(err))
		return Record{}, err
	}
	recommendation, err := stress.Recommend(level)
	if err != nil {
		return Record{}, err
	}

	rec := Record{
		ID:             uuid.NewString(),
		UserID:         userID,
		Emotion:        stress.Emotion(in.Emotion),
		Confidence:     in.Confidence,
		DailyRoutine:   routineString(in.Routine),
		StressLevel:    level,
		Recommendation: recommendation,
		ImageKey:       in.ImageKey,
		CreatedAt:      s.now(),
	}
	if err := s.Repo.Create(ctx, rec); err != nil {
		return Record{}, fmt.Errorf("save analysis: %w", err)
	}

	metrics.IncAnalysis(level.String())
	telemetry.Info("analysis.created", map[string]any{
		"analysis_id":  rec.ID,
		"user_id":      userID,
		"emotion":      in.Emotion,
		"stress_level": level.String(),
		"captured":     in.ImageKey != "",
	})
	return rec, nil
}

// Capture stores a webcam frame, asks the detector for the dominant emotion
// and analyzes it against the supplied routine.
func (s *Service) Capture(ctx context.Context, userID string, image []byte, contentType, fileName, routine string) (Record, error) {
	if strings.TrimSpace(routine) == "" {
		metrics.IncRejected(errorCode(ErrRoutineRequired))
		return Record{}, ErrRoutineRequired
	}
	if len(image) == 0 {
		metrics.IncRejected(errorCode(ErrImageRequired))
		return Record{}, ErrImageRequired
	}
	start := time.Now()
	defer func() {
		metrics.ObserveCaptureDurationMs(float64(time.Since(start).Milliseconds()))
	}()

	imageKey := ""
	if s.Store != nil {
		if fileName == "" {
			fileName = "capture.jpg"
		}
		key, _, _, err := s.Store.Save(ctx, userID, fileName, bytes.NewReader(image))
		if err != nil {
			metrics.IncCaptureFailed()
			return Record{}, fmt.Errorf("store capture: %w", err)
		}
		imageKey = key
	}

	detector := s.Detector
	if detector == nil {
		detector = detection.Unconfigured{}
	}
	pred, err := detector.Detect(ctx, image, contentType)
	if err != nil {
		metrics.IncCaptureFailed()
		s.discardImage(ctx, userID, imageKey)
		telemetry.Warn("analysis.capture_failed", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return Record{}, err
	}

	rec, err := s.Analyze(ctx, userID, Input{
		Emotion:    pred.Emotion.String(),
		Confidence: pred.Confidence,
		Routine:    routine,
		ImageKey:   imageKey,
	})
	if err != nil {
		metrics.IncCaptureFailed()
		s.discardImage(ctx, userID, imageKey)
		return Record{}, err
	}
	return rec, nil
}

// History returns a page of the user's analyses, newest first.
func (s *Service) History(ctx context.Context, userID string, limit, offset int) ([]Record, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUserRequired
	}
	maxLimit := s.PageLimit
	if maxLimit <= 0 {
		maxLimit = defaultPageLimit
	}
	if limit <= 0 || limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Clear deletes the user's whole history and any stored frames.
func (s *Service) Clear(ctx context.Context, userID string) (int, error) {
	if strings.TrimSpace(userID) == "" {
		return 0, ErrUserRequired
	}
	deleted, keys, err := s.Repo.DeleteByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("clear history: %w", err)
	}
	for _, key := range keys {
		s.discardImage(ctx, userID, key)
	}
	metrics.IncHistoryCleared()
	telemetry.Info("analysis.history_cleared", map[string]any{
		"user_id": userID,
		"deleted": deleted,
	})
	return deleted, nil
}

// Dashboard builds the stress trend for the user. An empty history yields an
// empty dashboard.
func (s *Service) Dashboard(ctx context.Context, userID string) (Dashboard, error) {
	if strings.TrimSpace(userID) == "" {
		return Dashboard{}, ErrUserRequired
	}
	records, err := s.Repo.ListAllByUser(ctx, userID)
	if err != nil {
		return Dashboard{}, err
	}

	dash := Dashboard{
		Points: make([]DashboardPoint, 0, len(records)),
		Counts: make(map[stress.Level]int, len(stress.Levels)),
	}
	for _, level := range stress.Levels {
		dash.Counts[level] = 0
	}
	for _, rec := range records {
		if !rec.StressLevel.Valid() {
			continue
		}
		dash.Points = append(dash.Points, DashboardPoint{
			At:    rec.CreatedAt,
			Level: rec.StressLevel,
			Rank:  rec.StressLevel.Rank(),
		})
		dash.Counts[rec.StressLevel]++
		dash.Latest = rec.StressLevel
	}
	dash.Total = len(dash.Points)
	return dash, nil
}

func (s *Service) discardImage(ctx context.Context, userID, key string) {
	if s.Store == nil || key == "" {
		return
	}
	if err := s.Store.Delete(ctx, key); err != nil && !errors.Is(err, context.Canceled) {
		telemetry.Warn("analysis.image_delete_failed", map[string]any{
			"user_id":   userID,
			"image_key": key,
			"error":     err.Error(),
		})
	}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func routineString(routine any) string {
	switch v := routine.(type) {
	case string:
		return v
	case *string:
		if v != nil {
			return *v
		}
	}
	return ""
}
