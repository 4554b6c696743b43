package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/campus-ease/presence/internal/domain"
)

const personColumns = `id, COALESCE(roster_id, ''), name, role, COALESCE(department, ''), COALESCE(email, ''),
	COALESCE(face_embedding, ''), training_image_count, recognition_enabled, last_trained, created_at, updated_at`

type PersonRepository struct {
	pool PgxPool
}

func NewPersonRepository(pool PgxPool) *PersonRepository {
	return &PersonRepository{pool: pool}
}

func (r *PersonRepository) Create(ctx context.Context, person *domain.Person) error {
	query := `
		INSERT INTO persons (id, roster_id, name, role, department, email, face_embedding, training_image_count, recognition_enabled, last_trained, created_at, updated_at)
		VALUES ($1, NULLIF($2, ''), $3, $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), $8, $9, $10, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	if person.ID == uuid.Nil {
		person.ID = uuid.New()
	}

	err := r.pool.QueryRow(ctx, query,
		person.ID,
		person.RosterID,
		person.Name,
		person.Role,
		person.Department,
		person.Email,
		person.EmbeddingData,
		person.TrainingImageCount,
		person.RecognitionEnabled,
		person.LastTrained,
	).Scan(&person.CreatedAt, &person.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrPersonExists
		}
		return fmt.Errorf("create person: %w", err)
	}

	return nil
}

func (r *PersonRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Person, error) {
	query := `SELECT ` + personColumns + ` FROM persons WHERE id = $1`
	return r.queryOne(ctx, query, id)
}

func (r *PersonRepository) GetByRosterID(ctx context.Context, rosterID string) (*domain.Person, error) {
	query := `SELECT ` + personColumns + ` FROM persons WHERE roster_id = $1`
	return r.queryOne(ctx, query, rosterID)
}

func (r *PersonRepository) queryOne(ctx context.Context, query string, arg interface{}) (*domain.Person, error) {
	var p domain.Person
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&p.ID,
		&p.RosterID,
		&p.Name,
		&p.Role,
		&p.Department,
		&p.Email,
		&p.EmbeddingData,
		&p.TrainingImageCount,
		&p.RecognitionEnabled,
		&p.LastTrained,
		&p.CreatedAt,
		&p.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrPersonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get person: %w", err)
	}

	return &p, nil
}

// Update replaces the mutable identity fields in place. Re-enrollment
// replaces the embedding, it never merges with history.
func (r *PersonRepository) Update(ctx context.Context, person *domain.Person) error {
	query := `
		UPDATE persons
		SET name = $2, role = $3, department = NULLIF($4, ''), email = NULLIF($5, ''),
			face_embedding = NULLIF($6, ''), training_image_count = $7,
			recognition_enabled = $8, last_trained = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		person.ID,
		person.Name,
		person.Role,
		person.Department,
		person.Email,
		person.EmbeddingData,
		person.TrainingImageCount,
		person.RecognitionEnabled,
		person.LastTrained,
	).Scan(&person.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrPersonNotFound
	}
	if err != nil {
		return fmt.Errorf("update person: %w", err)
	}

	return nil
}

func (r *PersonRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM persons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete person: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrPersonNotFound
	}
	return nil
}

func (r *PersonRepository) DeleteByRosterID(ctx context.Context, rosterID string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM persons WHERE roster_id = $1`, rosterID)
	if err != nil {
		return fmt.Errorf("delete person by roster id: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrPersonNotFound
	}
	return nil
}

// SetEnabled soft-disables an identity, keeping it for audit
func (r *PersonRepository) SetEnabled(ctx context.Context, id uuid.UUID, enabled bool) error {
	result, err := r.pool.Exec(ctx,
		`UPDATE persons SET recognition_enabled = $2, updated_at = NOW() WHERE id = $1`, id, enabled)
	if err != nil {
		return fmt.Errorf("set person enabled: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrPersonNotFound
	}
	return nil
}

// ListEnabled returns recognition-enabled identities with stored embeddings.
// The (created_at, id) order is fixed so the gallery row order, and with it
// the tie-break in matching, is stable across refreshes.
func (r *PersonRepository) ListEnabled(ctx context.Context, limit int) ([]domain.Person, error) {
	query := `SELECT ` + personColumns + `
		FROM persons
		WHERE recognition_enabled = true AND face_embedding IS NOT NULL
		ORDER BY created_at, id`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list enabled persons: %w", err)
	}
	defer rows.Close()

	return scanPersons(rows)
}

// Search finds identities by case-insensitive name or roster-id substring
func (r *PersonRepository) Search(ctx context.Context, query string, limit int) ([]domain.Person, error) {
	if limit <= 0 {
		limit = 20
	}
	sql := `SELECT ` + personColumns + `
		FROM persons
		WHERE name ILIKE '%' || $1 || '%' OR roster_id ILIKE '%' || $1 || '%'
		ORDER BY name
		LIMIT $2`

	rows, err := r.pool.Query(ctx, sql, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search persons: %w", err)
	}
	defer rows.Close()

	return scanPersons(rows)
}

func (r *PersonRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM persons`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count persons: %w", err)
	}
	return count, nil
}

func scanPersons(rows pgx.Rows) ([]domain.Person, error) {
	var persons []domain.Person
	for rows.Next() {
		var p domain.Person
		if err := rows.Scan(
			&p.ID,
			&p.RosterID,
			&p.Name,
			&p.Role,
			&p.Department,
			&p.Email,
			&p.EmbeddingData,
			&p.TrainingImageCount,
			&p.RecognitionEnabled,
			&p.LastTrained,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		persons = append(persons, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate persons: %w", err)
	}
	return persons, nil
}
