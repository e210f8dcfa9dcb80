package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-schedule-engine/internal/models"
)

var classSessionRowColumns = []string{
	"id", "day_of_week", "session_type", "notes", "created_at", "updated_at",
	"group_id", "group_name",
	"course_id", "course_code", "course_name", "course_theory_hours", "course_practice_hours", "course_knowledge_area_id",
	"teacher_id", "teacher_name", "teacher_email", "teacher_knowledge_area_id", "teacher_active",
	"space_id", "space_name", "space_capacity", "space_session_type",
}

var sessionHourRowColumns = []string{"class_session_id", "id", "time_slot_id", "order_in_time_slot", "start_time", "end_time", "duration_minutes"}

func sessionRow(rows *sqlmock.Rows, id, day string, notes interface{}) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(id, day, "THEORY", notes, now, now,
		"g-a", "Group A",
		"math", "MAT101", "Mathematics", 4, 2, "science",
		"t-ana", "Ana Torres", "ana@example.com", "science", true,
		"r101", "Room 101", 30, "THEORY")
}

func TestClassSessionRepositoryListByGroupAttachesHours(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewClassSessionRepository(db)

	rows := sqlmock.NewRows(classSessionRowColumns)
	sessionRow(rows, "s1", "MONDAY", "lab coats")
	sessionRow(rows, "s2", "TUESDAY", nil)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE cs.student_group_id = $1 ORDER BY cs.day_of_week, cs.created_at")).
		WithArgs("g-a").
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE csh.class_session_id = ANY($1)")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(sessionHourRowColumns).
			AddRow("s1", "m1", "morning", 1, "07:00", "07:40", 40).
			AddRow("s1", "m2", "morning", 2, "07:40", "08:20", 40).
			AddRow("s2", "m1", "morning", 1, "07:00", "07:40", 40))

	sessions, err := repo.ListByGroup(context.Background(), "g-a")
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	assert.Equal(t, models.Monday, sessions[0].DayOfWeek)
	assert.Equal(t, "lab coats", sessions[0].Notes)
	assert.Equal(t, "Ana Torres", sessions[0].Teacher.FullName)
	assert.Equal(t, models.SessionTypeTheory, sessions[0].LearningSpace.SessionType)
	assert.Equal(t, 2, sessions[0].HourCount())
	assert.Equal(t, "m2", sessions[0].TeachingHours[1].ID)
	assert.Empty(t, sessions[1].Notes)
	assert.Equal(t, 1, sessions[1].HourCount())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassSessionRepositoryListByTeachersOnDay(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewClassSessionRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE cs.teacher_id = ANY($1) AND cs.day_of_week = $2")).
		WithArgs(sqlmock.AnyArg(), "MONDAY").
		WillReturnRows(sqlmock.NewRows(classSessionRowColumns))

	sessions, err := repo.ListByTeachersOnDay(context.Background(), []string{"t-ana", "t-ben"}, models.Monday)
	require.NoError(t, err)
	assert.Empty(t, sessions)

	sessions, err = repo.ListByTeachersOnDay(context.Background(), nil, models.Monday)
	require.NoError(t, err)
	assert.Empty(t, sessions)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassSessionRepositoryFindByIDMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewClassSessionRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE cs.id = $1")).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(classSessionRowColumns))

	_, err := repo.FindByID(context.Background(), "ghost")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassSessionRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewClassSessionRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO class_sessions").
		WithArgs(sqlmock.AnyArg(), "g-a", "math", "t-ana", "r101", "MONDAY", "THEORY", nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO class_session_hours (class_session_id, teaching_hour_id) SELECT $1, UNNEST($2::text[])")).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	record := &models.ClassSessionRecord{
		StudentGroupID:  "g-a",
		CourseID:        "math",
		TeacherID:       "t-ana",
		LearningSpaceID: "r101",
		DayOfWeek:       models.Monday,
		SessionType:     models.SessionTypeTheory,
	}
	require.NoError(t, repo.Create(context.Background(), record, []string{"m1", "m2"}))
	assert.NotEmpty(t, record.ID)
	assert.False(t, record.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassSessionRepositoryCreateRollsBackOnLinkFailure(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewClassSessionRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO class_sessions").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO class_session_hours").WillReturnError(errors.New("fk violation"))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &models.ClassSessionRecord{ID: "s1"}, []string{"ghost"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "link session hours")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassSessionRepositoryUpdateReplacesHours(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewClassSessionRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE class_sessions SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM class_session_hours WHERE class_session_id = $1")).
		WithArgs("s1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO class_session_hours").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	notes := "moved"
	require.NoError(t, repo.Update(context.Background(), &models.ClassSessionRecord{ID: "s1", Notes: &notes}, []string{"m3"}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassSessionRepositoryUpdateMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewClassSessionRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE class_sessions SET").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Update(context.Background(), &models.ClassSessionRecord{ID: "ghost"}, []string{"m1"})
	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassSessionRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewClassSessionRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM class_session_hours").WithArgs("s1").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM class_sessions WHERE id = $1")).WithArgs("s1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), "s1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
