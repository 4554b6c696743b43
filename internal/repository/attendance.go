package repository

import (
	"context"
	"fmt"

	"github.com/campus-ease/presence/internal/domain"
)

type AttendanceRepository struct {
	pool PgxPool
}

func NewAttendanceRepository(pool PgxPool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

// UpsertBatch persists one attendance row per record. The conflict key
// (user_id, date, subject, class_id, marked_by) makes re-submitting the
// same session idempotent, last write wins for status and confidence.
// Returns how many rows were written.
func (r *AttendanceRepository) UpsertBatch(ctx context.Context, records []domain.AttendanceRecord) (int, error) {
	query := `
		INSERT INTO attendance (user_id, class_id, student_name, date, subject, class_type, status, confidence, marked_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		ON CONFLICT (user_id, date, subject, class_id, marked_by)
		DO UPDATE SET
			status = EXCLUDED.status,
			confidence = EXCLUDED.confidence,
			student_name = EXCLUDED.student_name,
			class_type = EXCLUDED.class_type,
			updated_at = NOW()
	`

	written := 0
	for _, rec := range records {
		_, err := r.pool.Exec(ctx, query,
			rec.UserID,
			rec.ClassID,
			rec.StudentName,
			rec.Date,
			rec.Subject,
			rec.ClassType,
			rec.Status,
			rec.Confidence,
			rec.MarkedBy,
		)
		if err != nil {
			return written, fmt.Errorf("upsert attendance for %s: %w", rec.UserID, err)
		}
		written++
	}

	return written, nil
}

func (r *AttendanceRepository) ListByUser(ctx context.Context, userID string, limit int) ([]domain.AttendanceRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT user_id, class_id, student_name, date, subject, class_type, status, confidence, marked_by, created_at, updated_at
		FROM attendance
		WHERE user_id = $1
		ORDER BY date DESC, created_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	defer rows.Close()

	var records []domain.AttendanceRecord
	for rows.Next() {
		var rec domain.AttendanceRecord
		if err := rows.Scan(
			&rec.UserID,
			&rec.ClassID,
			&rec.StudentName,
			&rec.Date,
			&rec.Subject,
			&rec.ClassType,
			&rec.Status,
			&rec.Confidence,
			&rec.MarkedBy,
			&rec.CreatedAt,
			&rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attendance: %w", err)
	}

	return records, nil
}
