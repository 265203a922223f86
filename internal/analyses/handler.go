package analyses

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"stress-backend/internal/shared/server/middleware"
	"stress-backend/internal/shared/server/respond"
	"stress-backend/internal/stress"
)

const maxCaptureSize = 5 << 20 // 5MB

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches authenticated analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyses", h.analyze)
	rg.POST("/analyses/capture", h.capture)
	rg.GET("/analyses", h.history)
	rg.DELETE("/analyses", h.clear)
	rg.GET("/analyses/dashboard", h.dashboard)
}

// RegisterPublicRoutes attaches routes that need no session.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/recommendations/:level", h.recommendation)
}

type analyzeRequest struct {
	Emotion      string  `json:"emotion"`
	Confidence   float64 `json:"confidence"`
	DailyRoutine any     `json:"dailyRoutine"`
}

func (h *Handler) analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	rec, err := h.Svc.Analyze(c.Request.Context(), middleware.UserIDFromContext(c), Input{
		Emotion:    req.Emotion,
		Confidence: req.Confidence,
		Routine:    req.DailyRoutine,
	})
	if err != nil {
		writeError(c, err, "failed to analyze")
		return
	}
	markRecord(c, rec)
	respond.JSON(c, http.StatusCreated, rec)
}

func (h *Handler) capture(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxCaptureSize)

	routine := c.PostForm("dailyRoutine")
	fileHeader, err := c.FormFile("image")
	if err != nil {
		if strings.TrimSpace(routine) == "" {
			writeError(c, ErrRoutineRequired, "")
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "image is required", nil)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read image", nil)
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read image", nil)
		return
	}

	rec, err := h.Svc.Capture(
		c.Request.Context(),
		middleware.UserIDFromContext(c),
		image,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Filename,
		routine,
	)
	if err != nil {
		writeError(c, err, "failed to analyze capture")
		return
	}
	markRecord(c, rec)
	respond.JSON(c, http.StatusCreated, rec)
}

func (h *Handler) history(c *gin.Context) {
	limit := 0
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}

	records, err := h.Svc.History(c.Request.Context(), middleware.UserIDFromContext(c), limit, offset)
	if err != nil {
		writeError(c, err, "failed to list analyses")
		return
	}
	respond.OK(c, gin.H{"items": records})
}

func (h *Handler) clear(c *gin.Context) {
	deleted, err := h.Svc.Clear(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		writeError(c, err, "failed to clear history")
		return
	}
	respond.OK(c, gin.H{"deleted": deleted})
}

func (h *Handler) dashboard(c *gin.Context) {
	dash, err := h.Svc.Dashboard(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		writeError(c, err, "failed to build dashboard")
		return
	}
	respond.OK(c, dash)
}

func (h *Handler) recommendation(c *gin.Context) {
	level, err := stress.ParseLevel(c.Param("level"))
	if err != nil {
		writeError(c, err, "")
		return
	}
	text, err := stress.Recommend(level)
	if err != nil {
		writeError(c, err, "")
		return
	}
	respond.OK(c, gin.H{"level": level, "recommendation": text})
}

func markRecord(c *gin.Context, rec Record) {
	c.Set(middleware.AnalysisIDKey, rec.ID)
	c.Set(middleware.StressLevelKey, rec.StressLevel.String())
}

func writeError(c *gin.Context, err error, fallback string) {
	code := errorCode(err)
	switch code {
	case "":
	case "no_face_detected":
		respond.Error(c, http.StatusUnprocessableEntity, code, "no face detected in the captured image", nil)
		return
	case "detector_unavailable":
		respond.Error(c, http.StatusServiceUnavailable, code, "emotion detector is not configured", nil)
		return
	default:
		respond.Error(c, http.StatusBadRequest, code, err.Error(), nil)
		return
	}
	if errors.Is(err, ErrUserRequired) {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
		return
	}
	if fallback == "" {
		fallback = "internal error"
	}
	respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
}
