package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/campus-ease/presence/internal/domain"
)

// PgxPool is the pool surface the repositories need (compatible with
// pgxpool.Pool and pgxmock)
type PgxPool interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
}

// PersonRepositoryInterface defines operations for identity data access
type PersonRepositoryInterface interface {
	Create(ctx context.Context, person *domain.Person) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Person, error)
	GetByRosterID(ctx context.Context, rosterID string) (*domain.Person, error)
	Update(ctx context.Context, person *domain.Person) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByRosterID(ctx context.Context, rosterID string) error
	SetEnabled(ctx context.Context, id uuid.UUID, enabled bool) error
	ListEnabled(ctx context.Context, limit int) ([]domain.Person, error)
	Search(ctx context.Context, query string, limit int) ([]domain.Person, error)
	Count(ctx context.Context) (int, error)
}

// AttendanceRepositoryInterface defines operations for attendance rows
type AttendanceRepositoryInterface interface {
	UpsertBatch(ctx context.Context, records []domain.AttendanceRecord) (int, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.AttendanceRecord, error)
}

// RecognitionLogRepositoryInterface records recognition sessions for audit
type RecognitionLogRepositoryInterface interface {
	Create(ctx context.Context, log *domain.RecognitionLog) error
}

// RosterRepositoryInterface resolves the expected identities for a class
type RosterRepositoryInterface interface {
	ListByClass(ctx context.Context, classID string) ([]domain.RosterMember, error)
}
