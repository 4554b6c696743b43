package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/campus-ease/presence/internal/domain"
	"github.com/campus-ease/presence/internal/gallery"
	"github.com/campus-ease/presence/internal/provider"
)

type PersonRepositoryInterface interface {
	Create(ctx context.Context, person *domain.Person) error
	GetByRosterID(ctx context.Context, rosterID string) (*domain.Person, error)
	Update(ctx context.Context, person *domain.Person) error
	DeleteByRosterID(ctx context.Context, rosterID string) error
	Search(ctx context.Context, query string, limit int) ([]domain.Person, error)
	Count(ctx context.Context) (int, error)
}

// EnrollAttrs are the identity attributes submitted with training images
type EnrollAttrs struct {
	RosterID   string
	Name       string
	Role       string
	Department string
	Email      string
}

// EnrollResult reports what the aggregation actually used
type EnrollResult struct {
	Person          *domain.Person `json:"person"`
	ImagesSubmitted int            `json:"images_submitted"`
	ImagesUsed      int            `json:"images_used"`
	Threshold       float64        `json:"threshold"`
}

// EnrollmentService aggregates per-image embeddings into one representative
// embedding per identity
type EnrollmentService struct {
	personRepo PersonRepositoryInterface
	extractor  provider.Extractor
	gallery    *gallery.Cache
	logger     *slog.Logger
	threshold  float64
	dim        int
}

func NewEnrollmentService(
	personRepo PersonRepositoryInterface,
	extractor provider.Extractor,
	galleryCache *gallery.Cache,
	logger *slog.Logger,
	threshold float64,
	dim int,
) *EnrollmentService {
	return &EnrollmentService{
		personRepo: personRepo,
		extractor:  extractor,
		gallery:    galleryCache,
		logger:     logger,
		threshold:  threshold,
		dim:        dim,
	}
}

// Enroll extracts one embedding per image, averages them into the identity's
// representative embedding and stores it. Images where extraction fails are
// skipped individually; only when every image fails is the enrollment
// rejected, leaving the store untouched. Enrolling an existing roster id
// replaces the stored embedding, it never merges with the previous one.
func (s *EnrollmentService) Enroll(ctx context.Context, attrs EnrollAttrs, images [][]byte) (*EnrollResult, error) {
	if attrs.Name == "" || attrs.RosterID == "" || len(images) == 0 {
		return nil, domain.ErrValidationFailed
	}

	embeddings := make([][]float32, 0, len(images))
	for i, img := range images {
		face, err := s.extractor.Encode(ctx, img)
		if err != nil {
			s.logger.Warn("training image skipped",
				slog.String("roster_id", attrs.RosterID),
				slog.Int("image_index", i),
				slog.Any("error", err),
			)
			continue
		}
		// a wrong-dimension embedding would be stored and then dropped at
		// every gallery refresh, so reject it here
		if len(face.Embedding) != s.dim {
			s.logger.Warn("training image skipped, embedding dimension mismatch",
				slog.String("roster_id", attrs.RosterID),
				slog.Int("image_index", i),
				slog.Int("got", len(face.Embedding)),
				slog.Int("want", s.dim),
			)
			continue
		}
		embeddings = append(embeddings, face.Embedding)
	}

	if len(embeddings) == 0 {
		return nil, domain.ErrNoUsableFaceData
	}

	// The mean is deliberately not re-normalized; the similarity threshold
	// is calibrated against raw averaged embeddings.
	mean, err := domain.MeanEmbedding(embeddings)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	person, err := s.personRepo.GetByRosterID(ctx, attrs.RosterID)
	switch {
	case err == nil:
		person.Name = attrs.Name
		person.Role = attrs.Role
		person.Department = attrs.Department
		person.Email = attrs.Email
		person.EmbeddingData = domain.EncodeEmbedding(mean)
		person.TrainingImageCount = len(embeddings)
		person.RecognitionEnabled = true
		person.LastTrained = &now
		if err := s.personRepo.Update(ctx, person); err != nil {
			return nil, err
		}
	case errors.Is(err, domain.ErrPersonNotFound):
		person = &domain.Person{
			RosterID:           attrs.RosterID,
			Name:               attrs.Name,
			Role:               attrs.Role,
			Department:         attrs.Department,
			Email:              attrs.Email,
			EmbeddingData:      domain.EncodeEmbedding(mean),
			TrainingImageCount: len(embeddings),
			RecognitionEnabled: true,
			LastTrained:        &now,
		}
		if err := s.personRepo.Create(ctx, person); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	// Make the new identity visible to matching right away. A failed refresh
	// is not fatal, the TTL path will pick the identity up.
	if err := s.gallery.Refresh(ctx); err != nil {
		s.logger.Warn("gallery refresh after enrollment failed",
			slog.String("roster_id", attrs.RosterID),
			slog.Any("error", err),
		)
	}

	s.logger.Info("identity enrolled",
		slog.String("roster_id", attrs.RosterID),
		slog.String("name", attrs.Name),
		slog.Int("images_used", len(embeddings)),
		slog.Int("images_submitted", len(images)),
	)

	return &EnrollResult{
		Person:          person,
		ImagesSubmitted: len(images),
		ImagesUsed:      len(embeddings),
		Threshold:       s.threshold,
	}, nil
}
