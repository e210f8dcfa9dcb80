package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/sma-schedule-engine/internal/models"
)

// TeacherRepository reads teachers and their weekly availability.
type TeacherRepository struct {
	db *sqlx.DB
}

// NewTeacherRepository constructs a TeacherRepository.
func NewTeacherRepository(db *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// FindByID returns a teacher.
func (r *TeacherRepository) FindByID(ctx context.Context, id string) (*models.Teacher, error) {
	const query = `SELECT id, full_name, email, knowledge_area_id, active FROM teachers WHERE id = $1`
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, query, id); err != nil {
		return nil, fmt.Errorf("get teacher: %w", err)
	}
	return &teacher, nil
}

// ListEligibleForCourse returns active teachers whose knowledge area matches the course.
func (r *TeacherRepository) ListEligibleForCourse(ctx context.Context, courseID string) ([]models.Teacher, error) {
	const query = `SELECT t.id, t.full_name, t.email, t.knowledge_area_id, t.active
FROM teachers t
JOIN courses c ON c.knowledge_area_id = t.knowledge_area_id
WHERE c.id = $1 AND t.active = TRUE
ORDER BY t.full_name ASC`
	var teachers []models.Teacher
	if err := r.db.SelectContext(ctx, &teachers, query, courseID); err != nil {
		return nil, fmt.Errorf("list eligible teachers: %w", err)
	}
	return teachers, nil
}

// ListAvailability returns the availability windows of the given teachers across the week.
func (r *TeacherRepository) ListAvailability(ctx context.Context, teacherIDs []string) ([]models.AvailabilityWindow, error) {
	if len(teacherIDs) == 0 {
		return []models.AvailabilityWindow{}, nil
	}
	const query = `SELECT id, teacher_id, day_of_week, start_time, end_time
FROM teacher_availabilities
WHERE teacher_id = ANY($1)
ORDER BY teacher_id, day_of_week, start_time`
	var windows []models.AvailabilityWindow
	if err := r.db.SelectContext(ctx, &windows, query, pq.Array(teacherIDs)); err != nil {
		return nil, fmt.Errorf("list teacher availability: %w", err)
	}
	return windows, nil
}
