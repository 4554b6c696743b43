package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/campus-ease/presence/internal/domain"
	"github.com/campus-ease/presence/internal/gallery"
)

// AttendanceListerInterface is the read side of the attendance store used
// for per-student history
type AttendanceListerInterface interface {
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.AttendanceRecord, error)
}

// TrainingStatus summarizes how trained one identity is
type TrainingStatus struct {
	RosterID           string     `json:"roster_id"`
	Name               string     `json:"name"`
	Trained            bool       `json:"trained"`
	TrainingImageCount int        `json:"training_image_count"`
	RecognitionEnabled bool       `json:"recognition_enabled"`
	LastTrained        *time.Time `json:"last_trained,omitempty"`
}

// SystemStats is the operational snapshot exposed by the stats endpoint
type SystemStats struct {
	PersonsTotal   int     `json:"persons_total"`
	GallerySize    int     `json:"gallery_size"`
	GalleryAgeSecs float64 `json:"gallery_age_seconds"`
	Threshold      float64 `json:"similarity_threshold"`
	EmbeddingDim   int     `json:"embedding_dim"`
}

// PersonService covers identity management around the enrollment flow
type PersonService struct {
	personRepo     PersonRepositoryInterface
	attendanceRepo AttendanceListerInterface
	gallery        *gallery.Cache
	logger         *slog.Logger
	threshold      float64
	dim            int
}

func NewPersonService(
	personRepo PersonRepositoryInterface,
	attendanceRepo AttendanceListerInterface,
	galleryCache *gallery.Cache,
	logger *slog.Logger,
	threshold float64,
	dim int,
) *PersonService {
	return &PersonService{
		personRepo:     personRepo,
		attendanceRepo: attendanceRepo,
		gallery:        galleryCache,
		logger:         logger,
		threshold:      threshold,
		dim:            dim,
	}
}

func (s *PersonService) TrainingStatus(ctx context.Context, rosterID string) (*TrainingStatus, error) {
	person, err := s.personRepo.GetByRosterID(ctx, rosterID)
	if err != nil {
		return nil, err
	}

	return &TrainingStatus{
		RosterID:           person.RosterID,
		Name:               person.Name,
		Trained:            person.EmbeddingData != "",
		TrainingImageCount: person.TrainingImageCount,
		RecognitionEnabled: person.RecognitionEnabled,
		LastTrained:        person.LastTrained,
	}, nil
}

func (s *PersonService) Search(ctx context.Context, query string, limit int) ([]domain.Person, error) {
	if query == "" {
		return nil, domain.ErrValidationFailed
	}
	return s.personRepo.Search(ctx, query, limit)
}

// Delete removes an identity and refreshes the gallery so the removed
// embedding stops matching immediately
func (s *PersonService) Delete(ctx context.Context, rosterID string) error {
	if err := s.personRepo.DeleteByRosterID(ctx, rosterID); err != nil {
		return err
	}

	if err := s.gallery.Refresh(ctx); err != nil {
		s.logger.Warn("gallery refresh after delete failed",
			slog.String("roster_id", rosterID),
			slog.Any("error", err),
		)
	}

	s.logger.Info("identity deleted", slog.String("roster_id", rosterID))
	return nil
}

// AttendanceHistory lists a student's most recent attendance rows, newest
// first. Roster members without enrolled faces still accumulate absent rows,
// so the history is not gated on enrollment.
func (s *PersonService) AttendanceHistory(ctx context.Context, userID string, limit int) ([]domain.AttendanceRecord, error) {
	if userID == "" {
		return nil, domain.ErrValidationFailed
	}
	return s.attendanceRepo.ListByUser(ctx, userID, limit)
}

func (s *PersonService) Stats(ctx context.Context) (*SystemStats, error) {
	total, err := s.personRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &SystemStats{
		PersonsTotal:   total,
		GallerySize:    s.gallery.Len(),
		GalleryAgeSecs: s.gallery.Age().Seconds(),
		Threshold:      s.threshold,
		EmbeddingDim:   s.dim,
	}, nil
}
