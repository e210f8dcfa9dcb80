package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-schedule-engine/internal/models"
)

// StudentGroupRepository reads student groups.
type StudentGroupRepository struct {
	db *sqlx.DB
}

// NewStudentGroupRepository constructs the repository.
func NewStudentGroupRepository(db *sqlx.DB) *StudentGroupRepository {
	return &StudentGroupRepository{db: db}
}

// FindByID returns a student group.
func (r *StudentGroupRepository) FindByID(ctx context.Context, id string) (*models.StudentGroup, error) {
	const query = `SELECT id, name FROM student_groups WHERE id = $1`
	var group models.StudentGroup
	if err := r.db.GetContext(ctx, &group, query, id); err != nil {
		return nil, fmt.Errorf("get student group: %w", err)
	}
	return &group, nil
}
