package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-schedule-engine/internal/models"
)

var teacherRowColumns = []string{"id", "full_name", "email", "knowledge_area_id", "active"}

func TestTeacherRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM teachers WHERE id = $1")).
		WithArgs("t-ana").
		WillReturnRows(sqlmock.NewRows(teacherRowColumns).AddRow("t-ana", "Ana Torres", "ana@example.com", "science", true))
	mock.ExpectQuery(regexp.QuoteMeta("FROM teachers WHERE id = $1")).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	teacher, err := repo.FindByID(context.Background(), "t-ana")
	require.NoError(t, err)
	assert.Equal(t, "Ana Torres", teacher.FullName)

	_, err = repo.FindByID(context.Background(), "ghost")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepositoryListEligibleForCourse(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	mock.ExpectQuery("JOIN courses c ON c.knowledge_area_id = t.knowledge_area_id").
		WithArgs("math").
		WillReturnRows(sqlmock.NewRows(teacherRowColumns).
			AddRow("t-ana", "Ana Torres", "ana@example.com", "science", true).
			AddRow("t-ben", "Ben Ruiz", "ben@example.com", "science", true))

	teachers, err := repo.ListEligibleForCourse(context.Background(), "math")
	require.NoError(t, err)
	assert.Len(t, teachers, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepositoryListAvailability(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM teacher_availabilities")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "teacher_id", "day_of_week", "start_time", "end_time"}).
			AddRow("w1", "t-ana", "MONDAY", "07:00", "12:00"))

	windows, err := repo.ListAvailability(context.Background(), []string{"t-ana"})
	require.NoError(t, err)
	require.Len(t, windows, 1)
	assert.Equal(t, models.Monday, windows[0].DayOfWeek)

	windows, err = repo.ListAvailability(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, windows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
