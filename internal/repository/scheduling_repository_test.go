package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sat-scheduler/internal/scheduling"
)

func newRepoFixture(t *testing.T) (*SchedulingRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	sqlxDB := sqlx.NewDb(db, "postgres")
	return NewSchedulingRepository(sqlxDB), mock
}

func TestSchedulingRepository_Lessons(t *testing.T) {
	repo, mock := newRepoFixture(t)

	rows := sqlmock.NewRows([]string{"id"}).AddRow("L1").AddRow("L2")
	mock.ExpectQuery(`SELECT id FROM lessons WHERE institution_id = \$1`).
		WithArgs("inst-1").
		WillReturnRows(rows)

	lessons, err := repo.Lessons(context.Background(), "inst-1")
	require.NoError(t, err)
	require.Len(t, lessons, 2)
	require.Equal(t, scheduling.LessonID("L1"), lessons[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSchedulingRepository_TeacherCapabilities_SingleQuery(t *testing.T) {
	repo, mock := newRepoFixture(t)

	rows := sqlmock.NewRows([]string{"teacher_id", "lesson_id"}).
		AddRow(1, "L1").
		AddRow(1, "L2").
		AddRow(2, "L1")
	mock.ExpectQuery(`SELECT tl.teacher_id, tl.lesson_id`).
		WithArgs("inst-1").
		WillReturnRows(rows)

	links, err := repo.TeacherCapabilities(context.Background(), "inst-1")
	require.NoError(t, err)
	require.Len(t, links, 3)
	require.NoError(t, mock.ExpectationsWereMet(), "capability lookup must be a single batched query, never one per teacher")
}

func TestSchedulingRepository_CustomConstraints(t *testing.T) {
	repo, mock := newRepoFixture(t)

	rows := sqlmock.NewRows([]string{"kind", "priority", "payload"}).
		AddRow("teacher_unavailable", 1, []byte(`{"teacher_id":1,"time_slot_ids":["s1"]}`))
	mock.ExpectQuery(`SELECT kind, priority, payload FROM custom_constraints WHERE institution_id = \$1`).
		WithArgs("inst-1").
		WillReturnRows(rows)

	constraints, err := repo.CustomConstraints(context.Background(), "inst-1")
	require.NoError(t, err)
	require.Len(t, constraints, 1)

	teacherID, slots, ok := constraints[0].ParseTeacherUnavailable()
	require.True(t, ok)
	require.Equal(t, scheduling.TeacherID(1), teacherID)
	require.Equal(t, []scheduling.SlotID{"s1"}, slots)
}
