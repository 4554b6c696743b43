package repository

import (
	"context"
	"fmt"

	"github.com/campus-ease/presence/internal/domain"
)

type RosterRepository struct {
	pool PgxPool
}

func NewRosterRepository(pool PgxPool) *RosterRepository {
	return &RosterRepository{pool: pool}
}

// ListByClass returns the expected members of a class, ordered by user id
// so reconciled attendance output is stable
func (r *RosterRepository) ListByClass(ctx context.Context, classID string) ([]domain.RosterMember, error) {
	query := `
		SELECT user_id, class_id, COALESCE(first_name, ''), COALESCE(last_name, '')
		FROM student_records
		WHERE class_id = $1
		ORDER BY user_id
	`

	rows, err := r.pool.Query(ctx, query, classID)
	if err != nil {
		return nil, fmt.Errorf("list roster: %w", err)
	}
	defer rows.Close()

	var members []domain.RosterMember
	for rows.Next() {
		var m domain.RosterMember
		if err := rows.Scan(&m.UserID, &m.ClassID, &m.FirstName, &m.LastName); err != nil {
			return nil, fmt.Errorf("scan roster member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate roster: %w", err)
	}

	return members, nil
}
