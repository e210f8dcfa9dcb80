package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/sma-schedule-engine/internal/models"
)

const classSessionSelect = `SELECT cs.id, cs.day_of_week, cs.session_type, cs.notes, cs.created_at, cs.updated_at,
	g.id AS group_id, g.name AS group_name,
	c.id AS course_id, c.code AS course_code, c.name AS course_name,
	c.weekly_theory_hours AS course_theory_hours, c.weekly_practice_hours AS course_practice_hours,
	c.knowledge_area_id AS course_knowledge_area_id,
	t.id AS teacher_id, t.full_name AS teacher_name, t.email AS teacher_email,
	t.knowledge_area_id AS teacher_knowledge_area_id, t.active AS teacher_active,
	ls.id AS space_id, ls.name AS space_name, ls.capacity AS space_capacity, ls.session_type AS space_session_type
FROM class_sessions cs
JOIN student_groups g ON g.id = cs.student_group_id
JOIN courses c ON c.id = cs.course_id
JOIN teachers t ON t.id = cs.teacher_id
JOIN learning_spaces ls ON ls.id = cs.learning_space_id`

const classSessionHoursSelect = `SELECT csh.class_session_id, th.id, th.time_slot_id, th.order_in_time_slot, th.start_time, th.end_time, th.duration_minutes
FROM class_session_hours csh
JOIN teaching_hours th ON th.id = csh.teaching_hour_id
WHERE csh.class_session_id = ANY($1)
ORDER BY th.time_slot_id, th.order_in_time_slot`

type classSessionRow struct {
	ID                     string         `db:"id"`
	DayOfWeek              string         `db:"day_of_week"`
	SessionType            string         `db:"session_type"`
	Notes                  sql.NullString `db:"notes"`
	CreatedAt              time.Time      `db:"created_at"`
	UpdatedAt              time.Time      `db:"updated_at"`
	GroupID                string         `db:"group_id"`
	GroupName              string         `db:"group_name"`
	CourseID               string         `db:"course_id"`
	CourseCode             string         `db:"course_code"`
	CourseName             string         `db:"course_name"`
	CourseTheoryHours      int            `db:"course_theory_hours"`
	CoursePracticeHours    int            `db:"course_practice_hours"`
	CourseKnowledgeAreaID  string         `db:"course_knowledge_area_id"`
	TeacherID              string         `db:"teacher_id"`
	TeacherName            string         `db:"teacher_name"`
	TeacherEmail           string         `db:"teacher_email"`
	TeacherKnowledgeAreaID string         `db:"teacher_knowledge_area_id"`
	TeacherActive          bool           `db:"teacher_active"`
	SpaceID                string         `db:"space_id"`
	SpaceName              string         `db:"space_name"`
	SpaceCapacity          int            `db:"space_capacity"`
	SpaceSessionType       string         `db:"space_session_type"`
}

func (row classSessionRow) toModel() models.ClassSession {
	return models.ClassSession{
		ID:           row.ID,
		StudentGroup: models.StudentGroup{ID: row.GroupID, Name: row.GroupName},
		Course: models.Course{
			ID:                  row.CourseID,
			Code:                row.CourseCode,
			Name:                row.CourseName,
			WeeklyTheoryHours:   row.CourseTheoryHours,
			WeeklyPracticeHours: row.CoursePracticeHours,
			KnowledgeAreaID:     row.CourseKnowledgeAreaID,
		},
		Teacher: models.Teacher{
			ID:              row.TeacherID,
			FullName:        row.TeacherName,
			Email:           row.TeacherEmail,
			KnowledgeAreaID: row.TeacherKnowledgeAreaID,
			Active:          row.TeacherActive,
		},
		LearningSpace: models.LearningSpace{
			ID:          row.SpaceID,
			Name:        row.SpaceName,
			Capacity:    row.SpaceCapacity,
			SessionType: models.SessionType(row.SpaceSessionType),
		},
		DayOfWeek:     models.DayOfWeek(row.DayOfWeek),
		SessionType:   models.SessionType(row.SessionType),
		TeachingHours: []models.TeachingHour{},
		Notes:         row.Notes.String,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

type sessionHourRow struct {
	SessionID string `db:"class_session_id"`
	models.TeachingHour
}

// ClassSessionRepository persists class sessions and the teaching hours they occupy.
type ClassSessionRepository struct {
	db *sqlx.DB
}

// NewClassSessionRepository constructs the repository.
func NewClassSessionRepository(db *sqlx.DB) *ClassSessionRepository {
	return &ClassSessionRepository{db: db}
}

// ListByTeacher returns every session taught by teacherID.
func (r *ClassSessionRepository) ListByTeacher(ctx context.Context, teacherID string) ([]models.ClassSession, error) {
	return r.list(ctx, "list sessions by teacher", ` WHERE cs.teacher_id = $1`, teacherID)
}

// ListByGroup returns every session attended by groupID.
func (r *ClassSessionRepository) ListByGroup(ctx context.Context, groupID string) ([]models.ClassSession, error) {
	return r.list(ctx, "list sessions by group", ` WHERE cs.student_group_id = $1`, groupID)
}

// ListByDay returns every session held on day.
func (r *ClassSessionRepository) ListByDay(ctx context.Context, day models.DayOfWeek) ([]models.ClassSession, error) {
	return r.list(ctx, "list sessions by day", ` WHERE cs.day_of_week = $1`, string(day))
}

// ListByTeachersOnDay returns the sessions of the given teachers held on day.
func (r *ClassSessionRepository) ListByTeachersOnDay(ctx context.Context, teacherIDs []string, day models.DayOfWeek) ([]models.ClassSession, error) {
	if len(teacherIDs) == 0 {
		return []models.ClassSession{}, nil
	}
	return r.list(ctx, "list sessions by teachers", ` WHERE cs.teacher_id = ANY($1) AND cs.day_of_week = $2`, pq.Array(teacherIDs), string(day))
}

// FindByID returns one session. sql.ErrNoRows is wrapped when it does not exist.
func (r *ClassSessionRepository) FindByID(ctx context.Context, id string) (*models.ClassSession, error) {
	sessions, err := r.list(ctx, "find session", ` WHERE cs.id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, fmt.Errorf("find session %s: %w", id, sql.ErrNoRows)
	}
	return &sessions[0], nil
}

func (r *ClassSessionRepository) list(ctx context.Context, label, where string, args ...interface{}) ([]models.ClassSession, error) {
	query := classSessionSelect + where + ` ORDER BY cs.day_of_week, cs.created_at`
	var rows []classSessionRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", label, err)
	}
	sessions := make([]models.ClassSession, 0, len(rows))
	if len(rows) == 0 {
		return sessions, nil
	}

	ids := make([]string, 0, len(rows))
	index := make(map[string]int, len(rows))
	for i, row := range rows {
		sessions = append(sessions, row.toModel())
		ids = append(ids, row.ID)
		index[row.ID] = i
	}

	var hours []sessionHourRow
	if err := r.db.SelectContext(ctx, &hours, classSessionHoursSelect, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("%s hours: %w", label, err)
	}
	for _, hour := range hours {
		if i, ok := index[hour.SessionID]; ok {
			sessions[i].TeachingHours = append(sessions[i].TeachingHours, hour.TeachingHour)
		}
	}
	return sessions, nil
}

// Create inserts the session and links its hours in one transaction.
func (r *ClassSessionRepository) Create(ctx context.Context, record *models.ClassSessionRecord, hourIDs []string) (err error) {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create session: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const insert = `INSERT INTO class_sessions (id, student_group_id, course_id, teacher_id, learning_space_id, day_of_week, session_type, notes, created_at, updated_at)
		VALUES (:id, :student_group_id, :course_id, :teacher_id, :learning_space_id, :day_of_week, :session_type, :notes, :created_at, :updated_at)`
	if _, err = tx.NamedExecContext(ctx, insert, record); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	if err = linkHours(ctx, tx, record.ID, hourIDs); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit create session: %w", err)
	}
	return nil
}

// Update rewrites the session and replaces its hour links in one transaction.
func (r *ClassSessionRepository) Update(ctx context.Context, record *models.ClassSessionRecord, hourIDs []string) (err error) {
	record.UpdatedAt = time.Now().UTC()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update session: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const update = `UPDATE class_sessions SET student_group_id = :student_group_id, course_id = :course_id, teacher_id = :teacher_id,
		learning_space_id = :learning_space_id, day_of_week = :day_of_week, session_type = :session_type, notes = :notes, updated_at = :updated_at
		WHERE id = :id`
	res, err := tx.NamedExecContext(ctx, update, record)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	if err = expectAffected(res, "update session "+record.ID); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM class_session_hours WHERE class_session_id = $1`, record.ID); err != nil {
		return fmt.Errorf("clear session hours: %w", err)
	}
	if err = linkHours(ctx, tx, record.ID, hourIDs); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit update session: %w", err)
	}
	return nil
}

// Delete removes the session and its hour links in one transaction.
func (r *ClassSessionRepository) Delete(ctx context.Context, id string) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete session: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM class_session_hours WHERE class_session_id = $1`, id); err != nil {
		return fmt.Errorf("delete session hours: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM class_sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if err = expectAffected(res, "delete session "+id); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit delete session: %w", err)
	}
	return nil
}

func linkHours(ctx context.Context, tx *sqlx.Tx, sessionID string, hourIDs []string) error {
	const query = `INSERT INTO class_session_hours (class_session_id, teaching_hour_id) SELECT $1, UNNEST($2::text[])`
	if _, err := tx.ExecContext(ctx, query, sessionID, pq.Array(hourIDs)); err != nil {
		return fmt.Errorf("link session hours: %w", err)
	}
	return nil
}

func expectAffected(res sql.Result, label string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", label, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", label, sql.ErrNoRows)
	}
	return nil
}
