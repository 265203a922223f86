package analyses

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"stress-backend/internal/detection"
	"stress-backend/internal/shared/storage/object"
	"stress-backend/internal/shared/telemetry"
)

type fakeDetector struct {
	pred  detection.Prediction
	err   error
	calls int
}

func (d *fakeDetector) Detect(ctx context.Context, image []byte, contentType string) (detection.Prediction, error) {
	d.calls++
	if d.err != nil {
		return detection.Prediction{}, d.err
	}
	return d.pred, nil
}

type fakeStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
	saveErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: make(map[string][]byte)}
}

func (s *fakeStore) Save(ctx context.Context, ownerID, fileName string, r io.Reader) (string, int64, string, error) {
	if s.saveErr != nil {
		return "", 0, "", s.saveErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", 0, "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := ownerID + "/" + fileName
	s.objects[key] = data
	return key, int64(len(data)), "image/jpeg", nil
}

func (s *fakeStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[key]
	if !ok {
		return nil, errors.New("not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	s.deleted = append(s.deleted, key)
	return nil
}

var _ object.ObjectStore = (*fakeStore)(nil)

func quietLogs(t *testing.T) {
	t.Helper()
	t.Cleanup(telemetry.SetOutput(io.Discard))
}
