package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/sma-schedule-engine/internal/models"
)

const teachingHourColumns = `id, time_slot_id, order_in_time_slot, start_time, end_time, duration_minutes`

// TimeSlotRepository reads time slots and their teaching hours.
type TimeSlotRepository struct {
	db *sqlx.DB
}

// NewTimeSlotRepository constructs the repository.
func NewTimeSlotRepository(db *sqlx.DB) *TimeSlotRepository {
	return &TimeSlotRepository{db: db}
}

// ListWithHours returns every time slot with its teaching hours attached.
func (r *TimeSlotRepository) ListWithHours(ctx context.Context) ([]models.TimeSlot, error) {
	const slotQuery = `SELECT id, name, start_time, end_time FROM time_slots ORDER BY start_time ASC`
	var slots []models.TimeSlot
	if err := r.db.SelectContext(ctx, &slots, slotQuery); err != nil {
		return nil, fmt.Errorf("list time slots: %w", err)
	}
	if len(slots) == 0 {
		return slots, nil
	}

	const hourQuery = `SELECT ` + teachingHourColumns + ` FROM teaching_hours ORDER BY time_slot_id, order_in_time_slot`
	var hours []models.TeachingHour
	if err := r.db.SelectContext(ctx, &hours, hourQuery); err != nil {
		return nil, fmt.Errorf("list teaching hours: %w", err)
	}

	index := make(map[string]int, len(slots))
	for i := range slots {
		index[slots[i].ID] = i
		slots[i].TeachingHours = []models.TeachingHour{}
	}
	for _, hour := range hours {
		if i, ok := index[hour.TimeSlotID]; ok {
			slots[i].TeachingHours = append(slots[i].TeachingHours, hour)
		}
	}
	return slots, nil
}

// FindHoursByIDs returns the teaching hours with the given ids.
func (r *TimeSlotRepository) FindHoursByIDs(ctx context.Context, ids []string) ([]models.TeachingHour, error) {
	if len(ids) == 0 {
		return []models.TeachingHour{}, nil
	}
	const query = `SELECT ` + teachingHourColumns + ` FROM teaching_hours WHERE id = ANY($1) ORDER BY time_slot_id, order_in_time_slot`
	var hours []models.TeachingHour
	if err := r.db.SelectContext(ctx, &hours, query, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("find teaching hours: %w", err)
	}
	return hours, nil
}
