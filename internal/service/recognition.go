package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/campus-ease/presence/internal/attendance"
	"github.com/campus-ease/presence/internal/domain"
	"github.com/campus-ease/presence/internal/gallery"
	"github.com/campus-ease/presence/internal/match"
	"github.com/campus-ease/presence/internal/provider"
)

type AttendanceRepositoryInterface interface {
	UpsertBatch(ctx context.Context, records []domain.AttendanceRecord) (int, error)
}

type RecognitionLogRepositoryInterface interface {
	Create(ctx context.Context, log *domain.RecognitionLog) error
}

type RosterRepositoryInterface interface {
	ListByClass(ctx context.Context, classID string) ([]domain.RosterMember, error)
}

// RecognitionResult is the full outcome of one attendance recognition run
type RecognitionResult struct {
	SessionID        uuid.UUID                  `json:"session_id"`
	TotalFaces       int                        `json:"total_faces_detected"`
	Decisions        []domain.MatchDecision     `json:"decisions"`
	Outcomes         []domain.AttendanceOutcome `json:"attendance"`
	PresentCount     int                        `json:"present_count"`
	AbsentCount      int                        `json:"absent_count"`
	Threshold        float64                    `json:"similarity_threshold"`
	RecordsSaved     int                        `json:"records_saved"`
	SaveError        string                     `json:"save_error,omitempty"`
	ProcessingTimeMS float64                    `json:"processing_time_ms"`
}

// RecognitionService runs the full recognition pipeline: gallery freshness,
// face extraction, matching, roster reconciliation and persistence
type RecognitionService struct {
	gallery        *gallery.Cache
	extractor      provider.Extractor
	rosterRepo     RosterRepositoryInterface
	attendanceRepo AttendanceRepositoryInterface
	logRepo        RecognitionLogRepositoryInterface
	logger         *slog.Logger
	threshold      float64
	maxFaces       int
}

func NewRecognitionService(
	galleryCache *gallery.Cache,
	extractor provider.Extractor,
	rosterRepo RosterRepositoryInterface,
	attendanceRepo AttendanceRepositoryInterface,
	logRepo RecognitionLogRepositoryInterface,
	logger *slog.Logger,
	threshold float64,
	maxFaces int,
) *RecognitionService {
	return &RecognitionService{
		gallery:        galleryCache,
		extractor:      extractor,
		rosterRepo:     rosterRepo,
		attendanceRepo: attendanceRepo,
		logRepo:        logRepo,
		logger:         logger,
		threshold:      threshold,
		maxFaces:       maxFaces,
	}
}

// Recognize matches every face in the session photo against the gallery,
// reconciles the result against the class roster and upserts attendance.
// Attendance persistence failure is reported in the result, it does not void
// the recognition itself.
func (s *RecognitionService) Recognize(ctx context.Context, image []byte, session domain.AttendanceSession) (*RecognitionResult, error) {
	start := time.Now()

	if err := s.gallery.EnsureFresh(ctx); err != nil {
		return nil, err
	}
	snap := s.gallery.Snapshot()
	if snap.Len() == 0 {
		return nil, domain.ErrEmptyGallery
	}

	faces, err := s.extractor.EncodeAll(ctx, image)
	if err != nil {
		return nil, err
	}
	if s.maxFaces > 0 && len(faces) > s.maxFaces {
		s.logger.Warn("face count capped",
			slog.Int("detected", len(faces)),
			slog.Int("max", s.maxFaces),
		)
		faces = faces[:s.maxFaces]
	}

	decisions := match.Match(faces, snap, s.threshold)

	roster, err := s.rosterRepo.ListByClass(ctx, session.ClassID)
	if err != nil {
		return nil, err
	}
	if len(roster) == 0 {
		return nil, domain.ErrRosterNotFound
	}

	outcomes := attendance.Reconcile(decisions, roster)
	records := buildRecords(outcomes, session)

	result := &RecognitionResult{
		SessionID:    uuid.New(),
		TotalFaces:   len(faces),
		Decisions:    decisions,
		Outcomes:     outcomes,
		PresentCount: attendance.CountPresent(outcomes),
		Threshold:    s.threshold,
	}
	result.AbsentCount = len(outcomes) - result.PresentCount

	saved, err := s.attendanceRepo.UpsertBatch(ctx, records)
	result.RecordsSaved = saved
	if err != nil {
		// recognition already succeeded, report the persistence failure
		// alongside the result instead of discarding it
		s.logger.Error("attendance persistence failed",
			slog.String("class_id", session.ClassID),
			slog.Int("saved", saved),
			slog.Any("error", err),
		)
		result.SaveError = "attendance could not be fully saved"
	}

	result.ProcessingTimeMS = float64(time.Since(start).Microseconds()) / 1000.0

	matched := 0
	for _, d := range decisions {
		if d.Matched() {
			matched++
		}
	}
	logEntry := &domain.RecognitionLog{
		SessionID:        result.SessionID,
		TotalFaces:       len(faces),
		Successful:       matched,
		Failed:           len(faces) - matched,
		ProcessingTimeMS: result.ProcessingTimeMS,
		Location:         session.Location,
	}
	if err := s.logRepo.Create(ctx, logEntry); err != nil {
		// audit only, never fails the run
		s.logger.Warn("recognition log write failed",
			slog.String("session_id", result.SessionID.String()),
			slog.Any("error", err),
		)
	}

	s.logger.Info("recognition completed",
		slog.String("session_id", result.SessionID.String()),
		slog.String("class_id", session.ClassID),
		slog.Int("faces", len(faces)),
		slog.Int("present", result.PresentCount),
		slog.Int("absent", result.AbsentCount),
	)

	return result, nil
}

// SaveAttendance persists externally computed outcomes for a session,
// reusing the same idempotent upsert as the recognition pipeline
func (s *RecognitionService) SaveAttendance(ctx context.Context, outcomes []domain.AttendanceOutcome, session domain.AttendanceSession) (int, error) {
	if session.ClassID == "" || session.Subject == "" || session.Date == "" || session.FacultyID == "" {
		return 0, domain.ErrValidationFailed
	}
	return s.attendanceRepo.UpsertBatch(ctx, buildRecords(outcomes, session))
}

func buildRecords(outcomes []domain.AttendanceOutcome, session domain.AttendanceSession) []domain.AttendanceRecord {
	records := make([]domain.AttendanceRecord, 0, len(outcomes))
	for _, o := range outcomes {
		records = append(records, domain.AttendanceRecord{
			UserID:      o.UserID,
			ClassID:     session.ClassID,
			StudentName: o.StudentName,
			Date:        session.Date,
			Subject:     session.Subject,
			ClassType:   session.ClassType,
			Status:      o.Status,
			Confidence:  o.Confidence,
			MarkedBy:    session.FacultyID,
		})
	}
	return records
}
