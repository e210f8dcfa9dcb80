package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-schedule-engine/internal/dto"
	"github.com/noah-isme/sma-schedule-engine/internal/models"
)

type hourReader interface {
	FindHoursByIDs(ctx context.Context, ids []string) ([]models.TeachingHour, error)
}

type daySessionReader interface {
	ListByDay(ctx context.Context, day models.DayOfWeek) ([]models.ClassSession, error)
	ListByGroup(ctx context.Context, groupID string) ([]models.ClassSession, error)
}

type courseFinder interface {
	FindByID(ctx context.Context, id string) (*models.Course, error)
}

type teacherFinder interface {
	FindByID(ctx context.Context, id string) (*models.Teacher, error)
	ListAvailability(ctx context.Context, teacherIDs []string) ([]models.AvailabilityWindow, error)
}

type spaceFinder interface {
	FindByID(ctx context.Context, id string) (*models.LearningSpace, error)
	ListBySessionType(ctx context.Context, t models.SessionType) ([]models.LearningSpace, error)
}

type groupFinder interface {
	FindByID(ctx context.Context, id string) (*models.StudentGroup, error)
}

// AssignmentValidationService is the authoritative check run before a session is saved.
type AssignmentValidationService struct {
	hours     hourReader
	sessions  daySessionReader
	courses   courseFinder
	teachers  teacherFinder
	spaces    spaceFinder
	groups    groupFinder
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAssignmentValidationService constructs the service.
func NewAssignmentValidationService(hours hourReader, sessions daySessionReader, courses courseFinder, teachers teacherFinder, spaces spaceFinder, groups groupFinder, validate *validator.Validate, logger *zap.Logger) *AssignmentValidationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentValidationService{
		hours:     hours,
		sessions:  sessions,
		courses:   courses,
		teachers:  teachers,
		spaces:    spaces,
		groups:    groups,
		validator: validate,
		logger:    logger,
	}
}

type validationCollector struct {
	result models.AssignmentValidationResult
}

func (c *validationCollector) fail(code string, severity models.Severity, format string, args ...interface{}) {
	c.result.Errors = append(c.result.Errors, models.ValidationIssue{Code: code, Severity: severity, Message: fmt.Sprintf(format, args...)})
}

func (c *validationCollector) warn(code string, severity models.Severity, format string, args ...interface{}) {
	c.result.Warnings = append(c.result.Warnings, models.ValidationIssue{Code: code, Severity: severity, Message: fmt.Sprintf(format, args...)})
}

func (c *validationCollector) suggest(format string, args ...interface{}) {
	c.result.Suggestions = append(c.result.Suggestions, fmt.Sprintf(format, args...))
}

func (c *validationCollector) finish() *models.AssignmentValidationResult {
	result := c.result
	result.IsValid = len(result.Errors) == 0
	if result.Errors == nil {
		result.Errors = []models.ValidationIssue{}
	}
	if result.Warnings == nil {
		result.Warnings = []models.ValidationIssue{}
	}
	if result.Suggestions == nil {
		result.Suggestions = []string{}
	}
	return &result
}

// Validate checks hours, references, conflicts, quota and availability of a proposed
// assignment. Findings are returned in the result; an error means the check itself
// could not run.
func (s *AssignmentValidationService) Validate(ctx context.Context, req dto.AssignmentValidationRequest) (*models.AssignmentValidationResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	day := models.DayOfWeek(req.Day)
	sessionType := models.SessionType(req.SessionType)
	c := &validationCollector{}

	hours, err := s.hours.FindHoursByIDs(ctx, req.HourIDs)
	if err != nil {
		return nil, storeError(err, "teaching hours")
	}
	hours = uniqueHours(hours)
	if missing := missingHourIDs(req.HourIDs, hours); len(missing) > 0 {
		c.fail("UNKNOWN_HOUR", models.SeverityCritical, "unknown teaching hours: %s", strings.Join(missing, ", "))
	}
	sortTeachingHours(hours)
	checkHourSequence(c, hours)

	course, err := findOptional(ctx, s.courses.FindByID, req.CourseID)
	if err != nil {
		return nil, storeError(err, "course")
	}
	teacher, err := findOptional(ctx, s.teachers.FindByID, req.TeacherID)
	if err != nil {
		return nil, storeError(err, "teacher")
	}
	space, err := findOptional(ctx, s.spaces.FindByID, req.SpaceID)
	if err != nil {
		return nil, storeError(err, "learning space")
	}
	group, err := findOptional(ctx, s.groups.FindByID, req.GroupID)
	if err != nil {
		return nil, storeError(err, "student group")
	}

	if course == nil {
		c.fail("UNKNOWN_COURSE", models.SeverityCritical, "course %s does not exist", req.CourseID)
	} else if course.RequiredHours(sessionType) == 0 {
		c.fail("SESSION_TYPE_NOT_TAUGHT", models.SeverityHigh, "%s has no weekly %s hours", nonEmpty(course.Name, course.ID), strings.ToLower(string(sessionType)))
	}
	if group == nil {
		c.fail("UNKNOWN_GROUP", models.SeverityCritical, "student group %s does not exist", req.GroupID)
	}
	if teacher == nil {
		c.fail("UNKNOWN_TEACHER", models.SeverityCritical, "teacher %s does not exist", req.TeacherID)
	} else {
		if !teacher.Active {
			c.fail("TEACHER_INACTIVE", models.SeverityHigh, "%s is not active", displayName(*teacher))
		}
		if course != nil && course.KnowledgeAreaID != "" && teacher.KnowledgeAreaID != course.KnowledgeAreaID {
			c.warn("KNOWLEDGE_AREA_MISMATCH", models.SeverityLow, "%s does not belong to the knowledge area of %s", displayName(*teacher), nonEmpty(course.Name, course.ID))
		}
	}
	if space == nil {
		c.fail("UNKNOWN_SPACE", models.SeverityCritical, "learning space %s does not exist", req.SpaceID)
	} else if space.SessionType != sessionType {
		c.fail("SPACE_TYPE_MISMATCH", models.SeverityMedium, "%s hosts %s sessions, not %s", nonEmpty(space.Name, space.ID),
			strings.ToLower(string(space.SessionType)), strings.ToLower(string(sessionType)))
	}

	if len(hours) == 0 {
		return c.finish(), nil
	}
	targets, err := targetHours(hours)
	if err != nil {
		c.fail("MALFORMED_HOUR", models.SeverityCritical, "%v", err)
		return c.finish(), nil
	}

	daySessions, err := s.sessions.ListByDay(ctx, day)
	if err != nil {
		return nil, storeError(err, "sessions")
	}
	if err := s.checkConflicts(ctx, c, req, daySessions, targets, sessionType); err != nil {
		return nil, err
	}
	if course != nil {
		if err := s.checkQuota(ctx, c, req, *course, sessionType, len(hours)); err != nil {
			return nil, err
		}
	}
	if teacher != nil {
		if err := s.checkAvailability(ctx, c, *teacher, day, hours); err != nil {
			return nil, err
		}
	}

	result := c.finish()
	s.logger.Debug("assignment validated",
		zap.String("course_id", req.CourseID),
		zap.String("teacher_id", req.TeacherID),
		zap.String("group_id", req.GroupID),
		zap.Bool("valid", result.IsValid),
		zap.Int("errors", len(result.Errors)),
		zap.Int("warnings", len(result.Warnings)),
	)
	return result, nil
}

func (s *AssignmentValidationService) checkConflicts(ctx context.Context, c *validationCollector, req dto.AssignmentValidationRequest, daySessions []models.ClassSession, targets []targetHour, sessionType models.SessionType) error {
	day := models.DayOfWeek(req.Day)
	teacherConflicts, err := conflictingSessions(daySessions, day, req.ExcludeSessionID, targets, func(session models.ClassSession) bool {
		return session.Teacher.ID == req.TeacherID
	})
	if err != nil {
		return storeError(err, "sessions")
	}
	for _, conflict := range teacherConflicts {
		c.fail("TEACHER_CONFLICT", models.SeverityCritical, "teacher is already assigned: %s", describeConflict(conflict))
	}

	groupConflicts, err := conflictingSessions(daySessions, day, req.ExcludeSessionID, targets, func(session models.ClassSession) bool {
		return session.StudentGroup.ID == req.GroupID
	})
	if err != nil {
		return storeError(err, "sessions")
	}
	for _, conflict := range groupConflicts {
		c.fail("GROUP_CONFLICT", models.SeverityCritical, "group already has a class: %s", describeConflict(conflict))
	}

	spaceConflicts, err := conflictingSessions(daySessions, day, req.ExcludeSessionID, targets, func(session models.ClassSession) bool {
		return session.LearningSpace.ID == req.SpaceID
	})
	if err != nil {
		return storeError(err, "sessions")
	}
	if len(spaceConflicts) == 0 {
		return nil
	}
	for _, conflict := range spaceConflicts {
		c.fail("SPACE_CONFLICT", models.SeverityHigh, "learning space is occupied: %s", describeConflict(conflict))
	}

	alternatives, err := s.spaces.ListBySessionType(ctx, sessionType)
	if err != nil {
		return storeError(err, "learning spaces")
	}
	busy, err := busySpaces(daySessions, day, req.ExcludeSessionID, targets)
	if err != nil {
		return storeError(err, "sessions")
	}
	for _, space := range alternatives {
		if _, taken := busy[space.ID]; taken || space.ID == req.SpaceID {
			continue
		}
		c.suggest("%s is free at this time", nonEmpty(space.Name, space.ID))
	}
	return nil
}

func (s *AssignmentValidationService) checkQuota(ctx context.Context, c *validationCollector, req dto.AssignmentValidationRequest, course models.Course, sessionType models.SessionType, requested int) error {
	groupSessions, err := s.sessions.ListByGroup(ctx, req.GroupID)
	if err != nil {
		return storeError(err, "sessions")
	}
	kept := make([]models.ClassSession, 0, len(groupSessions))
	for _, session := range groupSessions {
		if req.ExcludeSessionID != "" && session.ID == req.ExcludeSessionID {
			continue
		}
		kept = append(kept, session)
	}
	meta := CourseQuota(course, kept)
	left := meta.RemainingHours(sessionType)
	if requested > left {
		c.warn("QUOTA_EXCEEDED", models.SeverityMedium, "%d %s hours requested but only %d remain for %s",
			requested, strings.ToLower(string(sessionType)), left, nonEmpty(course.Name, course.ID))
	}
	return nil
}

func (s *AssignmentValidationService) checkAvailability(ctx context.Context, c *validationCollector, teacher models.Teacher, day models.DayOfWeek, hours []models.TeachingHour) error {
	windows, err := s.teachers.ListAvailability(ctx, []string{teacher.ID})
	if err != nil {
		return storeError(err, "teacher availability")
	}
	eligibility := ClassifyTeacher(ClassificationRequest{Day: day, Hours: hours}, models.TeacherCandidate{Teacher: teacher, Windows: windows})
	switch eligibility.Status {
	case models.AvailabilityNoScheduleConfigured:
		c.warn("NO_AVAILABILITY_CONFIGURED", models.SeverityLow, "%s: %s", displayName(teacher), eligibility.Reason)
	case models.AvailabilityTimeConflict:
		c.warn("OUTSIDE_AVAILABILITY", models.SeverityMedium, "%s: %s", displayName(teacher), eligibility.Reason)
	case models.AvailabilityError:
		c.warn("AVAILABILITY_UNKNOWN", models.SeverityLow, "%s: %s", displayName(teacher), eligibility.Reason)
	}
	return nil
}

// checkHourSequence flags hours that cannot form one session.
func checkHourSequence(c *validationCollector, hours []models.TeachingHour) {
	slots := make(map[string]struct{})
	for _, hour := range hours {
		slots[hour.TimeSlotID] = struct{}{}
	}
	if len(slots) > 1 {
		c.fail("HOURS_SPLIT_ACROSS_SLOTS", models.SeverityHigh, "hours belong to %d different time slots", len(slots))
		return
	}
	if gaps := contiguityGaps(hours); len(gaps) > 0 {
		c.fail("HOURS_NOT_CONTIGUOUS", models.SeverityHigh, "hours must be contiguous: %s", strings.Join(gaps, "; "))
	}
}

// busySpaces returns the ids of spaces used by sessions overlapping the targets.
func busySpaces(sessions []models.ClassSession, day models.DayOfWeek, excludeSessionID string, targets []targetHour) (map[string]struct{}, error) {
	conflicts, err := conflictingSessions(sessions, day, excludeSessionID, targets, nil)
	if err != nil {
		return nil, err
	}
	busy := make(map[string]struct{}, len(conflicts))
	for _, conflict := range conflicts {
		busy[conflict.LearningSpace.ID] = struct{}{}
	}
	return busy, nil
}

func missingHourIDs(requested []string, found []models.TeachingHour) []string {
	known := make(map[string]struct{}, len(found))
	for _, hour := range found {
		known[hour.ID] = struct{}{}
	}
	var missing []string
	for _, id := range requested {
		if _, ok := known[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

// findOptional returns nil without error when the record does not exist.
func findOptional[T any](ctx context.Context, find func(context.Context, string) (*T, error), id string) (*T, error) {
	item, err := find(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return item, nil
}
