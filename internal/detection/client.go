package detection

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// Detector turns a captured frame into an emotion prediction.
type Detector interface {
	Detect(ctx context.Context, image []byte, contentType string) (Prediction, error)
}

// Unconfigured is used when no detector endpoint is available.
type Unconfigured struct{}

func (Unconfigured) Detect(ctx context.Context, image []byte, contentType string) (Prediction, error) {
	_ = ctx
	_ = image
	_ = contentType
	return Prediction{}, ErrDetectorNotConfigured
}

// HTTPDetector calls an external face/emotion classifier over HTTP.
type HTTPDetector struct {
	endpoint   string
	thresholds Thresholds
	httpClient *http.Client
}

// NewHTTPDetector constructs a detector for the given endpoint.
func NewHTTPDetector(endpoint string, th Thresholds) (*HTTPDetector, error) {
	if strings.TrimSpace(endpoint) == "" {
		return nil, fmt.Errorf("DETECTOR_URL is required")
	}
	timeout := 30 * time.Second
	if raw := strings.TrimSpace(os.Getenv("DETECTOR_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return &HTTPDetector{
		endpoint:   strings.TrimSpace(endpoint),
		thresholds: th,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type detectResponse struct {
	Faces []struct {
		Scores []float64 `json:"scores"`
	} `json:"faces"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Detect posts the frame and decides on the first detected face.
func (d *HTTPDetector) Detect(ctx context.Context, image []byte, contentType string) (Prediction, error) {
	if len(image) == 0 {
		return Prediction{}, fmt.Errorf("image is empty")
	}
	if contentType == "" {
		contentType = http.DetectContentType(image)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, bytes.NewReader(image))
	if err != nil {
		return Prediction{}, fmt.Errorf("build detector request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return Prediction{}, fmt.Errorf("detector request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Prediction{}, fmt.Errorf("read detector response: %w", err)
	}

	var parsed detectResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Prediction{}, fmt.Errorf("decode detector response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		msg := http.StatusText(resp.StatusCode)
		if parsed.Error != nil && parsed.Error.Message != "" {
			msg = parsed.Error.Message
		}
		return Prediction{}, fmt.Errorf("detector error status %d: %s", resp.StatusCode, msg)
	}
	if len(parsed.Faces) == 0 {
		return Prediction{}, ErrNoFace
	}
	return Decide(parsed.Faces[0].Scores, d.thresholds)
}

var _ Detector = (*HTTPDetector)(nil)
var _ Detector = Unconfigured{}
