package service

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/noah-isme/sma-schedule-engine/internal/dto"
	"github.com/noah-isme/sma-schedule-engine/internal/models"
)

// stubGateway is an in-memory SchedulingGateway.
type stubGateway struct {
	mu         sync.Mutex
	slots      []models.TimeSlot
	sessions   []models.ClassSession
	courses    []models.Course
	windows    []models.AvailabilityWindow
	candidates []models.TeacherCandidate
	spaces     []models.LearningSpace
	verdict    *models.AssignmentValidationResult

	listErr     error
	saveErr     error
	onClassify  func()
	onSpaces    func()
	nextID      int
	validations []dto.AssignmentValidationRequest
	created     []dto.SessionRequest
	updated     map[string]dto.SessionRequest
	deleted     []string
	sessionLoad int
	courseLoads int
}

func newStubGateway() *stubGateway {
	return &stubGateway{
		slots:   timeSlotsFixture(),
		courses: []models.Course{mathCourse, historyCourse},
		candidates: []models.TeacherCandidate{
			{Teacher: teacherAna, Windows: []models.AvailabilityWindow{window(teacherAna.ID, models.Monday, "07:00", "12:00")}},
			{Teacher: teacherBen, LoadError: "timeout"},
		},
		spaces:  []models.LearningSpace{room101, room102, labA},
		verdict: &models.AssignmentValidationResult{IsValid: true},
		updated: make(map[string]dto.SessionRequest),
	}
}

func (g *stubGateway) ListTimeSlots(ctx context.Context) ([]models.TimeSlot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.listErr != nil {
		return nil, g.listErr
	}
	return g.slots, nil
}

func (g *stubGateway) ListSessions(ctx context.Context, scope models.ScheduleScope) ([]models.ClassSession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sessionLoad++
	if g.listErr != nil {
		return nil, g.listErr
	}
	var out []models.ClassSession
	for _, session := range g.sessions {
		if scope.Matches(session) {
			out = append(out, session)
		}
	}
	return out, nil
}

func (g *stubGateway) ListEligibleTeachers(ctx context.Context, courseID string, day models.DayOfWeek, hourIDs []string) ([]models.TeacherCandidate, error) {
	if g.onClassify != nil {
		g.onClassify()
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.candidates, nil
}

func (g *stubGateway) ListEligibleSpaces(ctx context.Context, courseID string, day models.DayOfWeek, hourIDs []string, sessionType models.SessionType, excludeSessionID string) ([]models.LearningSpace, error) {
	if g.onSpaces != nil {
		g.onSpaces()
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.spaces, nil
}

func (g *stubGateway) ListTeacherAvailability(ctx context.Context, teacherID string) ([]models.AvailabilityWindow, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.windows, nil
}

func (g *stubGateway) ValidateAssignment(ctx context.Context, req dto.AssignmentValidationRequest) (*models.AssignmentValidationResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.validations = append(g.validations, req)
	verdict := *g.verdict
	return &verdict, nil
}

func (g *stubGateway) buildSession(id string, req dto.SessionRequest) models.ClassSession {
	hours, _ := NormalizeTimeSlots(g.slots).HoursByID(req.HourIDs)
	session := models.ClassSession{
		ID:            id,
		StudentGroup:  models.StudentGroup{ID: req.GroupID},
		Course:        models.Course{ID: req.CourseID},
		Teacher:       models.Teacher{ID: req.TeacherID},
		LearningSpace: models.LearningSpace{ID: req.SpaceID},
		DayOfWeek:     models.DayOfWeek(req.Day),
		SessionType:   models.SessionType(req.SessionType),
		TeachingHours: hours,
		Notes:         req.Notes,
	}
	for _, course := range g.courses {
		if course.ID == req.CourseID {
			session.Course = course
		}
	}
	return session
}

func (g *stubGateway) CreateSession(ctx context.Context, req dto.SessionRequest) (*models.ClassSession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.saveErr != nil {
		return nil, g.saveErr
	}
	g.nextID++
	session := g.buildSession(fmt.Sprintf("new-%d", g.nextID), req)
	g.created = append(g.created, req)
	g.sessions = append(g.sessions, session)
	return &session, nil
}

func (g *stubGateway) UpdateSession(ctx context.Context, id string, req dto.SessionRequest) (*models.ClassSession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.saveErr != nil {
		return nil, g.saveErr
	}
	for i := range g.sessions {
		if g.sessions[i].ID == id {
			g.sessions[i] = g.buildSession(id, req)
			g.updated[id] = req
			session := g.sessions[i]
			return &session, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (g *stubGateway) DeleteSession(ctx context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range g.sessions {
		if g.sessions[i].ID == id {
			g.sessions = append(g.sessions[:i], g.sessions[i+1:]...)
			g.deleted = append(g.deleted, id)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (g *stubGateway) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, course := range g.courses {
		if course.ID == id {
			c := course
			return &c, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (g *stubGateway) ListCourses(ctx context.Context, scope models.ScheduleScope) ([]models.Course, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.courseLoads++
	if g.listErr != nil {
		return nil, g.listErr
	}
	return g.courses, nil
}

func (g *stubGateway) setListErr(err error) {
	g.mu.Lock()
	g.listErr = err
	g.mu.Unlock()
}
