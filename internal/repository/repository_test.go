package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-ease/presence/internal/domain"
)

// PersonRepository Tests

func TestPersonRepository_Create(t *testing.T) {
	personID := uuid.New()
	now := time.Now()

	tests := []struct {
		name      string
		person    *domain.Person
		mockSetup func(mock pgxmock.PgxPoolIface)
		wantErr   error
	}{
		{
			name: "successful creation",
			person: &domain.Person{
				ID:                 personID,
				RosterID:           "S12345",
				Name:               "Alice Nguyen",
				Role:               "student",
				Department:         "CS",
				EmbeddingData:      "ZmFrZQ==",
				TrainingImageCount: 3,
				RecognitionEnabled: true,
			},
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{"created_at", "updated_at"}).
					AddRow(now, now)

				mock.ExpectQuery(`INSERT INTO persons`).
					WithArgs(
						personID,
						"S12345",
						"Alice Nguyen",
						"student",
						"CS",
						"",
						"ZmFrZQ==",
						3,
						true,
						pgxmock.AnyArg(),
					).
					WillReturnRows(rows)
			},
			wantErr: nil,
		},
		{
			name: "roster id already enrolled",
			person: &domain.Person{
				ID:       personID,
				RosterID: "S12345",
				Name:     "Alice Nguyen",
				Role:     "student",
			},
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO persons`).
					WithArgs(
						pgxmock.AnyArg(),
						pgxmock.AnyArg(),
						pgxmock.AnyArg(),
						pgxmock.AnyArg(),
						pgxmock.AnyArg(),
						pgxmock.AnyArg(),
						pgxmock.AnyArg(),
						pgxmock.AnyArg(),
						pgxmock.AnyArg(),
						pgxmock.AnyArg(),
					).
					WillReturnError(errors.New("duplicate key value violates unique constraint (23505)"))
			},
			wantErr: domain.ErrPersonExists,
		},
		{
			name: "database error on create",
			person: &domain.Person{
				ID:   personID,
				Name: "Bob Costa",
				Role: "student",
			},
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO persons`).
					WithArgs(
						pgxmock.AnyArg(),
						pgxmock.AnyArg(),
						pgxmock.AnyArg(),
						pgxmock.AnyArg(),
						pgxmock.AnyArg(),
						pgxmock.AnyArg(),
						pgxmock.AnyArg(),
						pgxmock.AnyArg(),
						pgxmock.AnyArg(),
						pgxmock.AnyArg(),
					).
					WillReturnError(errors.New("disk full"))
			},
			wantErr: errors.New("create person: disk full"),
		},
		{
			name: "auto-generated id",
			person: &domain.Person{
				RosterID: "S99999",
				Name:     "Carol Mendes",
				Role:     "student",
			},
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{"created_at", "updated_at"}).
					AddRow(now, now)

				mock.ExpectQuery(`INSERT INTO persons`).
					WithArgs(
						pgxmock.AnyArg(),
						"S99999",
						"Carol Mendes",
						"student",
						pgxmock.AnyArg(),
						pgxmock.AnyArg(),
						pgxmock.AnyArg(),
						pgxmock.AnyArg(),
						pgxmock.AnyArg(),
						pgxmock.AnyArg(),
					).
					WillReturnRows(rows)
			},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.mockSetup(mock)

			repo := NewPersonRepository(mock)
			err = repo.Create(context.Background(), tt.person)

			if tt.wantErr != nil {
				require.Error(t, err)
				if errors.Is(tt.wantErr, domain.ErrPersonExists) {
					assert.ErrorIs(t, err, domain.ErrPersonExists)
				} else {
					assert.Contains(t, err.Error(), "create person")
				}
			} else {
				require.NoError(t, err)
				assert.NotEqual(t, uuid.Nil, tt.person.ID)
				assert.False(t, tt.person.CreatedAt.IsZero())
				assert.False(t, tt.person.UpdatedAt.IsZero())
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPersonRepository_GetByRosterID(t *testing.T) {
	personID := uuid.New()
	now := time.Now()

	tests := []struct {
		name      string
		rosterID  string
		mockSetup func(mock pgxmock.PgxPoolIface)
		want      *domain.Person
		wantErr   error
	}{
		{
			name:     "successful retrieval",
			rosterID: "S12345",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{
					"id", "roster_id", "name", "role", "department", "email",
					"face_embedding", "training_image_count", "recognition_enabled",
					"last_trained", "created_at", "updated_at",
				}).AddRow(
					personID,
					"S12345",
					"Alice Nguyen",
					"student",
					"CS",
					"alice@example.edu",
					"ZmFrZQ==",
					3,
					true,
					&now,
					now,
					now,
				)

				mock.ExpectQuery(`SELECT (.+) FROM persons WHERE roster_id = \$1`).
					WithArgs("S12345").
					WillReturnRows(rows)
			},
			want: &domain.Person{
				ID:                 personID,
				RosterID:           "S12345",
				Name:               "Alice Nguyen",
				Role:               "student",
				EmbeddingData:      "ZmFrZQ==",
				TrainingImageCount: 3,
				RecognitionEnabled: true,
			},
			wantErr: nil,
		},
		{
			name:     "person not found",
			rosterID: "S00000",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT (.+) FROM persons WHERE roster_id = \$1`).
					WithArgs("S00000").
					WillReturnError(pgx.ErrNoRows)
			},
			want:    nil,
			wantErr: domain.ErrPersonNotFound,
		},
		{
			name:     "database error",
			rosterID: "S12345",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT (.+) FROM persons WHERE roster_id = \$1`).
					WithArgs("S12345").
					WillReturnError(errors.New("connection lost"))
			},
			want:    nil,
			wantErr: errors.New("get person: connection lost"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.mockSetup(mock)

			repo := NewPersonRepository(mock)
			got, err := repo.GetByRosterID(context.Background(), tt.rosterID)

			if tt.wantErr != nil {
				require.Error(t, err)
				if errors.Is(tt.wantErr, domain.ErrPersonNotFound) {
					assert.ErrorIs(t, err, domain.ErrPersonNotFound)
				} else {
					assert.Contains(t, err.Error(), "get person")
				}
			} else {
				require.NoError(t, err)
				require.NotNil(t, got)
				assert.Equal(t, tt.want.ID, got.ID)
				assert.Equal(t, tt.want.RosterID, got.RosterID)
				assert.Equal(t, tt.want.Name, got.Name)
				assert.Equal(t, tt.want.EmbeddingData, got.EmbeddingData)
				assert.Equal(t, tt.want.TrainingImageCount, got.TrainingImageCount)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPersonRepository_GetByID(t *testing.T) {
	personID := uuid.New()
	now := time.Now()

	tests := []struct {
		name      string
		id        uuid.UUID
		mockSetup func(mock pgxmock.PgxPoolIface)
		wantName  string
		wantErr   error
	}{
		{
			name: "successful retrieval",
			id:   personID,
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{
					"id", "roster_id", "name", "role", "department", "email",
					"face_embedding", "training_image_count", "recognition_enabled",
					"last_trained", "created_at", "updated_at",
				}).AddRow(
					personID, "S12345", "Alice Nguyen", "student", "CS", "",
					"ZmFrZQ==", 3, true, &now, now, now,
				)

				mock.ExpectQuery(`SELECT (.+) FROM persons WHERE id = \$1`).
					WithArgs(personID).
					WillReturnRows(rows)
			},
			wantName: "Alice Nguyen",
		},
		{
			name: "person not found",
			id:   personID,
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT (.+) FROM persons WHERE id = \$1`).
					WithArgs(personID).
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: domain.ErrPersonNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.mockSetup(mock)

			repo := NewPersonRepository(mock)
			got, err := repo.GetByID(context.Background(), tt.id)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				require.NotNil(t, got)
				assert.Equal(t, tt.id, got.ID)
				assert.Equal(t, tt.wantName, got.Name)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPersonRepository_SetEnabled(t *testing.T) {
	personID := uuid.New()

	tests := []struct {
		name      string
		enabled   bool
		mockSetup func(mock pgxmock.PgxPoolIface)
		wantErr   error
	}{
		{
			name:    "disable keeps the row",
			enabled: false,
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`UPDATE persons SET recognition_enabled = \$2, updated_at = NOW\(\) WHERE id = \$1`).
					WithArgs(personID, false).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
		},
		{
			name:    "re-enable",
			enabled: true,
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`UPDATE persons SET recognition_enabled = \$2, updated_at = NOW\(\) WHERE id = \$1`).
					WithArgs(personID, true).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
		},
		{
			name:    "unknown id",
			enabled: false,
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`UPDATE persons SET recognition_enabled = \$2, updated_at = NOW\(\) WHERE id = \$1`).
					WithArgs(personID, false).
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			},
			wantErr: domain.ErrPersonNotFound,
		},
		{
			name:    "database error",
			enabled: false,
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`UPDATE persons SET recognition_enabled = \$2, updated_at = NOW\(\) WHERE id = \$1`).
					WithArgs(personID, false).
					WillReturnError(errors.New("connection lost"))
			},
			wantErr: errors.New("set person enabled: connection lost"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.mockSetup(mock)

			repo := NewPersonRepository(mock)
			err = repo.SetEnabled(context.Background(), personID, tt.enabled)

			if tt.wantErr != nil {
				require.Error(t, err)
				if errors.Is(tt.wantErr, domain.ErrPersonNotFound) {
					assert.ErrorIs(t, err, domain.ErrPersonNotFound)
				} else {
					assert.Contains(t, err.Error(), "set person enabled")
				}
			} else {
				require.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPersonRepository_DeleteByRosterID(t *testing.T) {
	tests := []struct {
		name      string
		rosterID  string
		mockSetup func(mock pgxmock.PgxPoolIface)
		wantErr   error
	}{
		{
			name:     "successful deletion",
			rosterID: "S12345",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`DELETE FROM persons WHERE roster_id = \$1`).
					WithArgs("S12345").
					WillReturnResult(pgxmock.NewResult("DELETE", 1))
			},
			wantErr: nil,
		},
		{
			name:     "person not found on delete",
			rosterID: "S00000",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`DELETE FROM persons WHERE roster_id = \$1`).
					WithArgs("S00000").
					WillReturnResult(pgxmock.NewResult("DELETE", 0))
			},
			wantErr: domain.ErrPersonNotFound,
		},
		{
			name:     "database error on delete",
			rosterID: "S12345",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`DELETE FROM persons WHERE roster_id = \$1`).
					WithArgs("S12345").
					WillReturnError(errors.New("constraint violation"))
			},
			wantErr: errors.New("delete person by roster id: constraint violation"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.mockSetup(mock)

			repo := NewPersonRepository(mock)
			err = repo.DeleteByRosterID(context.Background(), tt.rosterID)

			if tt.wantErr != nil {
				require.Error(t, err)
				if errors.Is(tt.wantErr, domain.ErrPersonNotFound) {
					assert.ErrorIs(t, err, domain.ErrPersonNotFound)
				} else {
					assert.Contains(t, err.Error(), "delete person by roster id")
				}
			} else {
				require.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPersonRepository_ListEnabled(t *testing.T) {
	firstID := uuid.New()
	secondID := uuid.New()
	now := time.Now()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rows := pgxmock.NewRows([]string{
		"id", "roster_id", "name", "role", "department", "email",
		"face_embedding", "training_image_count", "recognition_enabled",
		"last_trained", "created_at", "updated_at",
	}).
		AddRow(firstID, "S001", "Alice", "student", "", "", "QQ==", 2, true, &now, now, now).
		AddRow(secondID, "S002", "Bob", "student", "", "", "Qg==", 1, true, &now, now, now)

	mock.ExpectQuery(`SELECT (.+) FROM persons\s+WHERE recognition_enabled = true AND face_embedding IS NOT NULL\s+ORDER BY created_at, id`).
		WillReturnRows(rows)

	repo := NewPersonRepository(mock)
	persons, err := repo.ListEnabled(context.Background(), 0)

	require.NoError(t, err)
	require.Len(t, persons, 2)
	assert.Equal(t, firstID, persons[0].ID)
	assert.Equal(t, "Alice", persons[0].Name)
	assert.Equal(t, secondID, persons[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// AttendanceRepository Tests

func TestAttendanceRepository_UpsertBatch(t *testing.T) {
	records := []domain.AttendanceRecord{
		{
			UserID:      "S001",
			ClassID:     "CS101",
			StudentName: "Alice Nguyen",
			Date:        "2026-08-31",
			Subject:     "Algorithms",
			ClassType:   "lecture",
			Status:      domain.StatusPresent,
			Confidence:  0.87,
			MarkedBy:    "F100",
		},
		{
			UserID:      "S002",
			ClassID:     "CS101",
			StudentName: "Bob Costa",
			Date:        "2026-08-31",
			Subject:     "Algorithms",
			ClassType:   "lecture",
			Status:      domain.StatusAbsent,
			Confidence:  0,
			MarkedBy:    "F100",
		},
	}

	t.Run("all rows written", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		for _, rec := range records {
			mock.ExpectExec(`INSERT INTO attendance`).
				WithArgs(
					rec.UserID,
					rec.ClassID,
					rec.StudentName,
					rec.Date,
					rec.Subject,
					rec.ClassType,
					rec.Status,
					rec.Confidence,
					rec.MarkedBy,
				).
				WillReturnResult(pgxmock.NewResult("INSERT", 1))
		}

		repo := NewAttendanceRepository(mock)
		written, err := repo.UpsertBatch(context.Background(), records)

		require.NoError(t, err)
		assert.Equal(t, 2, written)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("resubmission upserts without error", func(t *testing.T) {
		// the conflict key turns the second submission into an UPDATE
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`INSERT INTO attendance`).
			WithArgs(
				records[0].UserID,
				records[0].ClassID,
				records[0].StudentName,
				records[0].Date,
				records[0].Subject,
				records[0].ClassType,
				records[0].Status,
				records[0].Confidence,
				records[0].MarkedBy,
			).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		repo := NewAttendanceRepository(mock)
		written, err := repo.UpsertBatch(context.Background(), records[:1])

		require.NoError(t, err)
		assert.Equal(t, 1, written)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failure mid-batch reports written count", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`INSERT INTO attendance`).
			WithArgs(
				records[0].UserID,
				records[0].ClassID,
				records[0].StudentName,
				records[0].Date,
				records[0].Subject,
				records[0].ClassType,
				records[0].Status,
				records[0].Confidence,
				records[0].MarkedBy,
			).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectExec(`INSERT INTO attendance`).
			WithArgs(
				records[1].UserID,
				records[1].ClassID,
				records[1].StudentName,
				records[1].Date,
				records[1].Subject,
				records[1].ClassType,
				records[1].Status,
				records[1].Confidence,
				records[1].MarkedBy,
			).
			WillReturnError(errors.New("connection reset"))

		repo := NewAttendanceRepository(mock)
		written, err := repo.UpsertBatch(context.Background(), records)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "upsert attendance for S002")
		assert.Equal(t, 1, written)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty batch writes nothing", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewAttendanceRepository(mock)
		written, err := repo.UpsertBatch(context.Background(), nil)

		require.NoError(t, err)
		assert.Zero(t, written)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAttendanceRepository_ListByUser(t *testing.T) {
	now := time.Now()

	attendanceRows := func() *pgxmock.Rows {
		return pgxmock.NewRows([]string{
			"user_id", "class_id", "student_name", "date", "subject",
			"class_type", "status", "confidence", "marked_by", "created_at", "updated_at",
		})
	}

	t.Run("returns rows newest first", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		rows := attendanceRows().
			AddRow("S001", "CS101", "Alice Nguyen", "2026-08-31", "Algorithms", "lecture", domain.StatusPresent, 0.87, "F100", now, now).
			AddRow("S001", "CS101", "Alice Nguyen", "2026-08-30", "Algorithms", "lecture", domain.StatusAbsent, 0.0, "F100", now, now)

		mock.ExpectQuery(`SELECT (.+) FROM attendance\s+WHERE user_id = \$1\s+ORDER BY date DESC, created_at DESC\s+LIMIT \$2`).
			WithArgs("S001", 10).
			WillReturnRows(rows)

		repo := NewAttendanceRepository(mock)
		records, err := repo.ListByUser(context.Background(), "S001", 10)

		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "2026-08-31", records[0].Date)
		assert.Equal(t, domain.StatusPresent, records[0].Status)
		assert.Equal(t, domain.StatusAbsent, records[1].Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("non-positive limit falls back to default", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT (.+) FROM attendance\s+WHERE user_id = \$1\s+ORDER BY date DESC, created_at DESC\s+LIMIT \$2`).
			WithArgs("S001", 50).
			WillReturnRows(attendanceRows())

		repo := NewAttendanceRepository(mock)
		records, err := repo.ListByUser(context.Background(), "S001", 0)

		require.NoError(t, err)
		assert.Empty(t, records)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT (.+) FROM attendance`).
			WithArgs("S001", 10).
			WillReturnError(errors.New("timeout"))

		repo := NewAttendanceRepository(mock)
		_, err = repo.ListByUser(context.Background(), "S001", 10)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "list attendance")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

// RosterRepository Tests

func TestRosterRepository_ListByClass(t *testing.T) {
	tests := []struct {
		name      string
		classID   string
		mockSetup func(mock pgxmock.PgxPoolIface)
		wantLen   int
		wantErr   bool
	}{
		{
			name:    "roster with members",
			classID: "CS101",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{"user_id", "class_id", "first_name", "last_name"}).
					AddRow("S001", "CS101", "Alice", "Nguyen").
					AddRow("S002", "CS101", "Bob", "Costa")

				mock.ExpectQuery(`SELECT user_id, class_id, (.+) FROM student_records WHERE class_id = \$1 ORDER BY user_id`).
					WithArgs("CS101").
					WillReturnRows(rows)
			},
			wantLen: 2,
		},
		{
			name:    "unknown class returns empty roster",
			classID: "NOPE",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{"user_id", "class_id", "first_name", "last_name"})
				mock.ExpectQuery(`SELECT user_id, class_id, (.+) FROM student_records WHERE class_id = \$1 ORDER BY user_id`).
					WithArgs("NOPE").
					WillReturnRows(rows)
			},
			wantLen: 0,
		},
		{
			name:    "database error",
			classID: "CS101",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT user_id, class_id, (.+) FROM student_records WHERE class_id = \$1 ORDER BY user_id`).
					WithArgs("CS101").
					WillReturnError(errors.New("timeout"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.mockSetup(mock)

			repo := NewRosterRepository(mock)
			members, err := repo.ListByClass(context.Background(), tt.classID)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "list roster")
			} else {
				require.NoError(t, err)
				assert.Len(t, members, tt.wantLen)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// RecognitionLogRepository Tests

func TestRecognitionLogRepository_Create(t *testing.T) {
	now := time.Now()

	t.Run("successful creation", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		log := &domain.RecognitionLog{
			SessionID:        uuid.New(),
			TotalFaces:       5,
			Successful:       4,
			Failed:           1,
			ProcessingTimeMS: 182.5,
			Location:         "Room 204",
		}

		rows := pgxmock.NewRows([]string{"created_at"}).AddRow(now)
		mock.ExpectQuery(`INSERT INTO recognition_logs`).
			WithArgs(
				pgxmock.AnyArg(),
				log.SessionID,
				5,
				4,
				1,
				182.5,
				"Room 204",
			).
			WillReturnRows(rows)

		repo := NewRecognitionLogRepository(mock)
		err = repo.Create(context.Background(), log)

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, log.ID)
		assert.False(t, log.CreatedAt.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`INSERT INTO recognition_logs`).
			WithArgs(
				pgxmock.AnyArg(),
				pgxmock.AnyArg(),
				pgxmock.AnyArg(),
				pgxmock.AnyArg(),
				pgxmock.AnyArg(),
				pgxmock.AnyArg(),
				pgxmock.AnyArg(),
			).
			WillReturnError(errors.New("database unavailable"))

		repo := NewRecognitionLogRepository(mock)
		err = repo.Create(context.Background(), &domain.RecognitionLog{SessionID: uuid.New()})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "create recognition log")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "postgres error code 23505",
			err:  fmt.Errorf("pq: duplicate key value violates unique constraint (23505)"),
			want: true,
		},
		{
			name: "error contains unique",
			err:  fmt.Errorf("ERROR: unique constraint violated"),
			want: true,
		},
		{
			name: "error contains duplicate key",
			err:  fmt.Errorf("duplicate key value"),
			want: true,
		},
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
		{
			name: "different error",
			err:  fmt.Errorf("connection timeout"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := isUniqueViolation(tt.err)
			assert.Equal(t, tt.want, got)
		})
	}
}
