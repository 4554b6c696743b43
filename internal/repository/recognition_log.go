package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/campus-ease/presence/internal/domain"
)

type RecognitionLogRepository struct {
	pool PgxPool
}

func NewRecognitionLogRepository(pool PgxPool) *RecognitionLogRepository {
	return &RecognitionLogRepository{pool: pool}
}

func (r *RecognitionLogRepository) Create(ctx context.Context, log *domain.RecognitionLog) error {
	query := `
		INSERT INTO recognition_logs (id, session_id, total_faces_detected, successful_recognitions, failed_recognitions, processing_time_ms, location, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NOW())
		RETURNING created_at
	`

	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}

	err := r.pool.QueryRow(ctx, query,
		log.ID,
		log.SessionID,
		log.TotalFaces,
		log.Successful,
		log.Failed,
		log.ProcessingTimeMS,
		log.Location,
	).Scan(&log.CreatedAt)
	if err != nil {
		return fmt.Errorf("create recognition log: %w", err)
	}

	return nil
}
