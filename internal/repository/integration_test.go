//go:build integration

package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/campus-ease/presence/internal/database"
	"github.com/campus-ease/presence/internal/domain"
)

func setupIntegrationDB(t *testing.T) (*pgxpool.Pool, func()) {
	t.Helper()

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "presence_test",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("postgres://test:test@%s:%s/presence_test?sslmode=disable", host, port.Port())

	sqlDB, err := database.NewSQLDB(connStr)
	require.NoError(t, err)

	migrator, err := database.NewMigrator(sqlDB, "presence_test")
	require.NoError(t, err)
	require.NoError(t, migrator.Up())
	require.NoError(t, migrator.Close())

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	cleanup := func() {
		pool.Close()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	}

	return pool, cleanup
}

func TestPersonRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	pool, cleanup := setupIntegrationDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewPersonRepository(pool)

	embedding := domain.EncodeEmbedding([]float32{0.6, 0.8, 0, 0})

	person := &domain.Person{
		RosterID:           "S001",
		Name:               "Alice Nguyen",
		Role:               "student",
		Department:         "CS",
		EmbeddingData:      embedding,
		TrainingImageCount: 3,
		RecognitionEnabled: true,
	}
	require.NoError(t, repo.Create(ctx, person))
	assert.NotZero(t, person.ID)
	assert.False(t, person.CreatedAt.IsZero())

	t.Run("round trip by roster id", func(t *testing.T) {
		got, err := repo.GetByRosterID(ctx, "S001")
		require.NoError(t, err)
		assert.Equal(t, person.ID, got.ID)
		assert.Equal(t, embedding, got.EmbeddingData)
		assert.Equal(t, 3, got.TrainingImageCount)
	})

	t.Run("duplicate roster id rejected", func(t *testing.T) {
		dup := &domain.Person{RosterID: "S001", Name: "Impostor", Role: "student"}
		err := repo.Create(ctx, dup)
		assert.ErrorIs(t, err, domain.ErrPersonExists)
	})

	t.Run("list enabled excludes untrained", func(t *testing.T) {
		untrained := &domain.Person{RosterID: "S002", Name: "Bob Costa", Role: "student", RecognitionEnabled: true}
		require.NoError(t, repo.Create(ctx, untrained))

		persons, err := repo.ListEnabled(ctx, 0)
		require.NoError(t, err)
		require.Len(t, persons, 1)
		assert.Equal(t, "S001", persons[0].RosterID)
	})

	t.Run("search by name substring", func(t *testing.T) {
		persons, err := repo.Search(ctx, "alice", 10)
		require.NoError(t, err)
		require.Len(t, persons, 1)
		assert.Equal(t, "S001", persons[0].RosterID)
	})

	t.Run("delete by roster id", func(t *testing.T) {
		require.NoError(t, repo.DeleteByRosterID(ctx, "S001"))
		_, err := repo.GetByRosterID(ctx, "S001")
		assert.ErrorIs(t, err, domain.ErrPersonNotFound)
	})
}

func TestAttendanceRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	pool, cleanup := setupIntegrationDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewAttendanceRepository(pool)

	record := domain.AttendanceRecord{
		UserID:      "S001",
		ClassID:     "CS101",
		StudentName: "Alice Nguyen",
		Date:        "2026-08-31",
		Subject:     "Algorithms",
		ClassType:   "lecture",
		Status:      domain.StatusPresent,
		Confidence:  0.91,
		MarkedBy:    "F100",
	}

	written, err := repo.UpsertBatch(ctx, []domain.AttendanceRecord{record})
	require.NoError(t, err)
	assert.Equal(t, 1, written)

	// Resubmitting the same session updates in place
	record.Status = domain.StatusAbsent
	record.Confidence = 0
	written, err = repo.UpsertBatch(ctx, []domain.AttendanceRecord{record})
	require.NoError(t, err)
	assert.Equal(t, 1, written)

	var count int
	var status string
	err = pool.QueryRow(ctx,
		`SELECT COUNT(*), MIN(status) FROM attendance WHERE user_id = $1 AND class_id = $2`,
		"S001", "CS101").Scan(&count, &status)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, "absent", status)
}
