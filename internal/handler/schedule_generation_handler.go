// Package handler adapts the scheduling core to the HTTP surface.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sat-scheduler/internal/dto"
	"github.com/noah-isme/sat-scheduler/internal/scheduling"
	appErrors "github.com/noah-isme/sat-scheduler/pkg/errors"
	"github.com/noah-isme/sat-scheduler/pkg/response"
)

// generationLock is the narrow interface the handler needs from
// cache.GenerationLock; kept local so tests can stub it without a Redis
// connection.
type generationLock interface {
	Acquire(ctx context.Context, institutionID string) (release func(), ok bool, err error)
}

// ScheduleGenerationHandler exposes the single schedule-generation endpoint.
type ScheduleGenerationHandler struct {
	generator      *scheduling.Generator
	validate       *validator.Validate
	lock           generationLock
	logger         *zap.Logger
	defaultTimeout int
	maxTimeout     int
}

// NewScheduleGenerationHandler constructs a ScheduleGenerationHandler.
func NewScheduleGenerationHandler(generator *scheduling.Generator, lock generationLock, logger *zap.Logger, defaultTimeout, maxTimeout int) *ScheduleGenerationHandler {
	return &ScheduleGenerationHandler{
		generator:      generator,
		validate:       validator.New(),
		lock:           lock,
		logger:         logger,
		defaultTimeout: defaultTimeout,
		maxTimeout:     maxTimeout,
	}
}

// Register wires the handler's route onto the given group.
func (h *ScheduleGenerationHandler) Register(group gin.IRouter) {
	group.POST("/institutions/:institutionId/schedule/generate", h.Generate)
}

// Generate handles POST /institutions/:institutionId/schedule/generate.
func (h *ScheduleGenerationHandler) Generate(c *gin.Context) {
	institutionID := c.Param("institutionId")
	if institutionID == "" {
		response.Error(c, appErrors.New("INVALID_INPUT", http.StatusUnprocessableEntity, "institutionId is required"))
		return
	}

	var req dto.GenerateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req.TimeoutSeconds = h.defaultTimeout
	}
	if req.TimeoutSeconds == 0 {
		req.TimeoutSeconds = h.defaultTimeout
	}
	if req.TimeoutSeconds > h.maxTimeout {
		req.TimeoutSeconds = h.maxTimeout
	}
	if err := h.validate.Struct(req); err != nil {
		response.Error(c, appErrors.Wrap(err, "INVALID_INPUT", http.StatusUnprocessableEntity, "invalid generation request"))
		return
	}

	if h.lock != nil {
		release, ok, err := h.lock.Acquire(c.Request.Context(), institutionID)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "could not acquire generation lock"))
			return
		}
		if !ok {
			response.Error(c, appErrors.New("CONFLICT", http.StatusConflict, "a generation request for this institution is already running"))
			return
		}
		defer release()
	}

	entries, err := h.generator.Generate(c.Request.Context(), institutionID, req.TimeoutSeconds)
	if err != nil {
		h.respondGenerationError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, dto.FromScheduleEntries(entries))
}

func (h *ScheduleGenerationHandler) respondGenerationError(c *gin.Context, err error) {
	var invalid *scheduling.InvalidInputError
	if errors.As(err, &invalid) {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInvalidInput.Code, appErrors.ErrInvalidInput.Status, invalid.Reason))
		return
	}

	var infeasible *scheduling.InfeasibleError
	if errors.As(err, &infeasible) {
		appErr := appErrors.Wrap(err, appErrors.ErrInfeasible.Code, appErrors.ErrInfeasible.Status, appErrors.ErrInfeasible.Message)
		c.Header("Cache-Control", "no-store")
		c.JSON(appErr.Status, gin.H{
			"error": appErr,
			"pairs": infeasiblePairDTOs(infeasible.Pairs),
		})
		return
	}

	var noSolution *scheduling.NoSolutionError
	if errors.As(err, &noSolution) {
		appErr := appErrors.Wrap(err, appErrors.ErrNoSolution.Code, appErrors.ErrNoSolution.Status, noSolution.Message)
		c.Header("Cache-Control", "no-store")
		c.JSON(appErr.Status, gin.H{
			"error": appErr,
			"kind":  noSolution.Kind,
		})
		return
	}

	h.logger.Error("schedule generation failed", zap.Error(err))
	response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message))
}

func infeasiblePairDTOs(pairs []scheduling.InfeasiblePair) []dto.InfeasiblePairDTO {
	out := make([]dto.InfeasiblePairDTO, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, dto.InfeasiblePairDTO{
			LessonID: string(p.LessonID),
			GroupID:  string(p.GroupID),
			Reason:   p.Reason,
		})
	}
	return out
}
