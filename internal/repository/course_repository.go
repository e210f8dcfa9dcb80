package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-schedule-engine/internal/models"
)

const courseColumns = `c.id, c.code, c.name, c.weekly_theory_hours, c.weekly_practice_hours, c.knowledge_area_id`

// CourseRepository reads course definitions and the study plans of student groups.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs the repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// FindByID returns a course.
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	const query = `SELECT ` + courseColumns + ` FROM courses c WHERE c.id = $1`
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		return nil, fmt.Errorf("get course: %w", err)
	}
	return &course, nil
}

// ListByGroup returns the courses in a group's study plan.
func (r *CourseRepository) ListByGroup(ctx context.Context, groupID string) ([]models.Course, error) {
	const query = `SELECT ` + courseColumns + `
FROM courses c
JOIN group_courses gc ON gc.course_id = c.id
WHERE gc.student_group_id = $1
ORDER BY c.name ASC`
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query, groupID); err != nil {
		return nil, fmt.Errorf("list group courses: %w", err)
	}
	return courses, nil
}

// ListByTeacher returns the distinct courses a teacher currently teaches.
func (r *CourseRepository) ListByTeacher(ctx context.Context, teacherID string) ([]models.Course, error) {
	const query = `SELECT DISTINCT ` + courseColumns + `
FROM courses c
JOIN class_sessions cs ON cs.course_id = c.id
WHERE cs.teacher_id = $1
ORDER BY c.name ASC`
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query, teacherID); err != nil {
		return nil, fmt.Errorf("list teacher courses: %w", err)
	}
	return courses, nil
}
