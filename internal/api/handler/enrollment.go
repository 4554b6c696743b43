package handler

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/campus-ease/presence/internal/domain"
	"github.com/campus-ease/presence/internal/service"
)

const maxTrainingImages = 10

// EnrollmentService interface for the service
type EnrollmentService interface {
	Enroll(ctx context.Context, attrs service.EnrollAttrs, images [][]byte) (*service.EnrollResult, error)
}

// EnrollmentHandler handles identity enrollment requests
type EnrollmentHandler struct {
	service EnrollmentService
	logger  *slog.Logger
}

func NewEnrollmentHandler(svc EnrollmentService, logger *slog.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{
		service: svc,
		logger:  logger,
	}
}

// EnrollResponse response for the enrollment endpoint
type EnrollResponse struct {
	RosterID        string  `json:"roster_id"`
	Name            string  `json:"name"`
	ImagesSubmitted int     `json:"images_submitted"`
	ImagesUsed      int     `json:"images_used"`
	Threshold       float64 `json:"threshold"`
	LastTrained     string  `json:"last_trained,omitempty"`
}

// Enroll POST /v1/enrollments - train an identity from one or more images
func (h *EnrollmentHandler) Enroll(c *fiber.Ctx) error {
	attrs := service.EnrollAttrs{
		RosterID:   strings.TrimSpace(c.FormValue("roster_id")),
		Name:       strings.TrimSpace(c.FormValue("name")),
		Role:       strings.TrimSpace(c.FormValue("role")),
		Department: strings.TrimSpace(c.FormValue("department")),
		Email:      strings.TrimSpace(c.FormValue("email")),
	}
	if attrs.RosterID == "" {
		return domain.ErrValidationFailed.WithError(errors.New("roster_id is required"))
	}
	if attrs.Name == "" {
		return domain.ErrValidationFailed.WithError(errors.New("name is required"))
	}
	if attrs.Role == "" {
		attrs.Role = "student"
	}

	form, err := c.MultipartForm()
	if err != nil {
		return domain.ErrValidationFailed.WithError(err)
	}
	files := form.File["images"]
	if len(files) == 0 {
		return domain.ErrValidationFailed.WithError(errors.New("at least one image is required"))
	}
	if len(files) > maxTrainingImages {
		return domain.ErrValidationFailed.WithError(errors.New("too many training images"))
	}

	images := make([][]byte, 0, len(files))
	for _, file := range files {
		data, err := readImageFile(file)
		if err != nil {
			return err
		}
		images = append(images, data)
	}

	result, err := h.service.Enroll(c.Context(), attrs, images)
	if err != nil {
		return err
	}

	resp := EnrollResponse{
		RosterID:        result.Person.RosterID,
		Name:            result.Person.Name,
		ImagesSubmitted: result.ImagesSubmitted,
		ImagesUsed:      result.ImagesUsed,
		Threshold:       result.Threshold,
	}
	if result.Person.LastTrained != nil {
		resp.LastTrained = result.Person.LastTrained.Format("2006-01-02T15:04:05Z")
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}
