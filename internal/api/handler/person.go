package handler

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/campus-ease/presence/internal/domain"
	"github.com/campus-ease/presence/internal/service"
)

// PersonService interface for the service
type PersonService interface {
	TrainingStatus(ctx context.Context, rosterID string) (*service.TrainingStatus, error)
	Search(ctx context.Context, query string, limit int) ([]domain.Person, error)
	AttendanceHistory(ctx context.Context, userID string, limit int) ([]domain.AttendanceRecord, error)
	Delete(ctx context.Context, rosterID string) error
	Stats(ctx context.Context) (*service.SystemStats, error)
}

// PersonHandler handles identity management requests
type PersonHandler struct {
	service PersonService
	logger  *slog.Logger
}

func NewPersonHandler(svc PersonService, logger *slog.Logger) *PersonHandler {
	return &PersonHandler{
		service: svc,
		logger:  logger,
	}
}

// TrainingStatus GET /v1/persons/:roster_id/training-status
func (h *PersonHandler) TrainingStatus(c *fiber.Ctx) error {
	rosterID := strings.TrimSpace(c.Params("roster_id"))
	if rosterID == "" {
		return domain.ErrValidationFailed.WithError(errors.New("roster_id is required"))
	}

	status, err := h.service.TrainingStatus(c.Context(), rosterID)
	if err != nil {
		return err
	}

	return c.JSON(status)
}

// SearchResponse wraps search results
type SearchResponse struct {
	Persons []domain.Person `json:"persons"`
	Total   int             `json:"total"`
}

// Search GET /v1/persons/search?q=&limit=
func (h *PersonHandler) Search(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return domain.ErrValidationFailed.WithError(errors.New("q is required"))
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 100 {
			return domain.ErrValidationFailed.WithError(errors.New("limit must be between 1 and 100"))
		}
		limit = parsed
	}

	persons, err := h.service.Search(c.Context(), query, limit)
	if err != nil {
		return err
	}

	return c.JSON(SearchResponse{Persons: persons, Total: len(persons)})
}

// AttendanceHistoryResponse wraps a student's recent attendance rows
type AttendanceHistoryResponse struct {
	Records []domain.AttendanceRecord `json:"records"`
	Total   int                       `json:"total"`
}

// AttendanceHistory GET /v1/persons/:roster_id/attendance?limit=
func (h *PersonHandler) AttendanceHistory(c *fiber.Ctx) error {
	rosterID := strings.TrimSpace(c.Params("roster_id"))
	if rosterID == "" {
		return domain.ErrValidationFailed.WithError(errors.New("roster_id is required"))
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 200 {
			return domain.ErrValidationFailed.WithError(errors.New("limit must be between 1 and 200"))
		}
		limit = parsed
	}

	records, err := h.service.AttendanceHistory(c.Context(), rosterID, limit)
	if err != nil {
		return err
	}

	return c.JSON(AttendanceHistoryResponse{Records: records, Total: len(records)})
}

// Delete DELETE /v1/persons/:roster_id
func (h *PersonHandler) Delete(c *fiber.Ctx) error {
	rosterID := strings.TrimSpace(c.Params("roster_id"))
	if rosterID == "" {
		return domain.ErrValidationFailed.WithError(errors.New("roster_id is required"))
	}

	if err := h.service.Delete(c.Context(), rosterID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Stats GET /v1/system/stats
func (h *PersonHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(stats)
}
