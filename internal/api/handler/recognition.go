package handler

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/campus-ease/presence/internal/domain"
	"github.com/campus-ease/presence/internal/service"
)

// RecognitionService interface for the service
type RecognitionService interface {
	Recognize(ctx context.Context, image []byte, session domain.AttendanceSession) (*service.RecognitionResult, error)
	SaveAttendance(ctx context.Context, outcomes []domain.AttendanceOutcome, session domain.AttendanceSession) (int, error)
}

// RecognitionHandler handles attendance recognition requests
type RecognitionHandler struct {
	service RecognitionService
	logger  *slog.Logger
}

func NewRecognitionHandler(svc RecognitionService, logger *slog.Logger) *RecognitionHandler {
	return &RecognitionHandler{
		service: svc,
		logger:  logger,
	}
}

// Recognize POST /v1/recognitions - run attendance recognition on a photo
func (h *RecognitionHandler) Recognize(c *fiber.Ctx) error {
	session, err := sessionFromForm(c)
	if err != nil {
		return err
	}

	photo, err := readFormImage(c, "photo")
	if err != nil {
		return err
	}

	result, err := h.service.Recognize(c.Context(), photo, session)
	if err != nil {
		return err
	}

	return c.JSON(result)
}

// SaveAttendanceRequest body for the attendance persistence endpoint
type SaveAttendanceRequest struct {
	ClassID    string                     `json:"class_id"`
	Subject    string                     `json:"subject"`
	ClassType  string                     `json:"class_type"`
	Date       string                     `json:"date"`
	FacultyID  string                     `json:"faculty_id"`
	Attendance []domain.AttendanceOutcome `json:"attendance"`
}

// SaveAttendanceResponse reports how many rows the upsert touched
type SaveAttendanceResponse struct {
	RecordsSaved int `json:"records_saved"`
}

// SaveAttendance POST /v1/attendance - persist previously computed outcomes
func (h *RecognitionHandler) SaveAttendance(c *fiber.Ctx) error {
	var req SaveAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ErrBadRequest.WithError(err)
	}
	if len(req.Attendance) == 0 {
		return domain.ErrValidationFailed.WithError(errors.New("attendance list is empty"))
	}

	session := domain.AttendanceSession{
		ClassID:   req.ClassID,
		Subject:   req.Subject,
		ClassType: defaultString(req.ClassType, "lecture"),
		Date:      defaultString(req.Date, time.Now().Format("2006-01-02")),
		FacultyID: req.FacultyID,
	}

	saved, err := h.service.SaveAttendance(c.Context(), req.Attendance, session)
	if err != nil {
		return err
	}

	return c.JSON(SaveAttendanceResponse{RecordsSaved: saved})
}

func sessionFromForm(c *fiber.Ctx) (domain.AttendanceSession, error) {
	session := domain.AttendanceSession{
		ClassID:     strings.TrimSpace(c.FormValue("class_id")),
		Subject:     strings.TrimSpace(c.FormValue("subject")),
		ClassType:   defaultString(strings.TrimSpace(c.FormValue("class_type")), "lecture"),
		Date:        defaultString(strings.TrimSpace(c.FormValue("date")), time.Now().Format("2006-01-02")),
		FacultyID:   strings.TrimSpace(c.FormValue("faculty_id")),
		FacultyName: strings.TrimSpace(c.FormValue("faculty_name")),
		Location:    strings.TrimSpace(c.FormValue("location")),
	}

	if session.ClassID == "" {
		return session, domain.ErrValidationFailed.WithError(errors.New("class_id is required"))
	}
	if session.Subject == "" {
		return session, domain.ErrValidationFailed.WithError(errors.New("subject is required"))
	}
	if session.FacultyID == "" {
		return session, domain.ErrValidationFailed.WithError(errors.New("faculty_id is required"))
	}
	if _, err := time.Parse("2006-01-02", session.Date); err != nil {
		return session, domain.ErrValidationFailed.WithError(errors.New("date must be YYYY-MM-DD"))
	}

	return session, nil
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
