package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-schedule-engine/internal/models"
)

var courseRowColumns = []string{"id", "code", "name", "weekly_theory_hours", "weekly_practice_hours", "knowledge_area_id"}

func TestCourseRepositoryQueries(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM courses c WHERE c.id = $1")).
		WithArgs("math").
		WillReturnRows(sqlmock.NewRows(courseRowColumns).AddRow("math", "MAT101", "Mathematics", 4, 2, "science"))
	mock.ExpectQuery(regexp.QuoteMeta("JOIN group_courses gc ON gc.course_id = c.id")).
		WithArgs("g-a").
		WillReturnRows(sqlmock.NewRows(courseRowColumns).
			AddRow("hist", "HIS101", "History", 2, 0, "humanities").
			AddRow("math", "MAT101", "Mathematics", 4, 2, "science"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT")).
		WithArgs("t-ana").
		WillReturnRows(sqlmock.NewRows(courseRowColumns).AddRow("math", "MAT101", "Mathematics", 4, 2, "science"))

	course, err := repo.FindByID(context.Background(), "math")
	require.NoError(t, err)
	assert.Equal(t, 6, course.WeeklyTheoryHours+course.WeeklyPracticeHours)

	plan, err := repo.ListByGroup(context.Background(), "g-a")
	require.NoError(t, err)
	assert.Len(t, plan, 2)

	taught, err := repo.ListByTeacher(context.Background(), "t-ana")
	require.NoError(t, err)
	assert.Len(t, taught, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLearningSpaceRepositoryQueries(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewLearningSpaceRepository(db)
	columns := []string{"id", "name", "capacity", "session_type"}

	mock.ExpectQuery(regexp.QuoteMeta("FROM learning_spaces WHERE id = $1")).
		WithArgs("lab-a").
		WillReturnRows(sqlmock.NewRows(columns).AddRow("lab-a", "Lab A", 20, "PRACTICE"))
	mock.ExpectQuery(regexp.QuoteMeta("FROM learning_spaces WHERE session_type = $1")).
		WithArgs("THEORY").
		WillReturnRows(sqlmock.NewRows(columns).AddRow("r101", "Room 101", 30, "THEORY"))

	space, err := repo.FindByID(context.Background(), "lab-a")
	require.NoError(t, err)
	assert.Equal(t, models.SessionTypePractice, space.SessionType)

	spaces, err := repo.ListBySessionType(context.Background(), models.SessionTypeTheory)
	require.NoError(t, err)
	assert.Len(t, spaces, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentGroupRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentGroupRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name FROM student_groups WHERE id = $1")).
		WithArgs("g-a").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("g-a", "Group A"))

	group, err := repo.FindByID(context.Background(), "g-a")
	require.NoError(t, err)
	assert.Equal(t, "Group A", group.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
