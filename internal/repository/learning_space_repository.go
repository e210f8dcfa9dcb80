package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-schedule-engine/internal/models"
)

// LearningSpaceRepository reads rooms and labs.
type LearningSpaceRepository struct {
	db *sqlx.DB
}

// NewLearningSpaceRepository constructs the repository.
func NewLearningSpaceRepository(db *sqlx.DB) *LearningSpaceRepository {
	return &LearningSpaceRepository{db: db}
}

// FindByID returns a learning space.
func (r *LearningSpaceRepository) FindByID(ctx context.Context, id string) (*models.LearningSpace, error) {
	const query = `SELECT id, name, capacity, session_type FROM learning_spaces WHERE id = $1`
	var space models.LearningSpace
	if err := r.db.GetContext(ctx, &space, query, id); err != nil {
		return nil, fmt.Errorf("get learning space: %w", err)
	}
	return &space, nil
}

// ListBySessionType returns the spaces that host sessions of type t.
func (r *LearningSpaceRepository) ListBySessionType(ctx context.Context, t models.SessionType) ([]models.LearningSpace, error) {
	const query = `SELECT id, name, capacity, session_type FROM learning_spaces WHERE session_type = $1 ORDER BY name ASC`
	var spaces []models.LearningSpace
	if err := r.db.SelectContext(ctx, &spaces, query, string(t)); err != nil {
		return nil, fmt.Errorf("list learning spaces: %w", err)
	}
	return spaces, nil
}
