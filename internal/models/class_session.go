package models

import "time"

// ClassSession is a persisted assignment of course, teacher, group and space to
// one or more contiguous teaching hours on a single day.
type ClassSession struct {
	ID            string         `json:"id"`
	StudentGroup  StudentGroup   `json:"student_group"`
	Course        Course         `json:"course"`
	Teacher       Teacher        `json:"teacher"`
	LearningSpace LearningSpace  `json:"learning_space"`
	DayOfWeek     DayOfWeek      `json:"day_of_week"`
	SessionType   SessionType    `json:"session_type"`
	TeachingHours []TeachingHour `json:"teaching_hours"`
	Notes         string         `json:"notes,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// HourCount is the number of teaching hours the session occupies.
func (s ClassSession) HourCount() int {
	return len(s.TeachingHours)
}

// ScheduleScope selects whose sessions populate a grid. Exactly one id is set.
type ScheduleScope struct {
	TeacherID string `json:"teacher_id,omitempty"`
	GroupID   string `json:"group_id,omitempty"`
}

// IsTeacher reports whether the scope is a teacher's schedule.
func (s ScheduleScope) IsTeacher() bool {
	return s.TeacherID != "" && s.GroupID == ""
}

// IsGroup reports whether the scope is a student group's schedule.
func (s ScheduleScope) IsGroup() bool {
	return s.GroupID != "" && s.TeacherID == ""
}

// Valid reports whether exactly one of the ids is set.
func (s ScheduleScope) Valid() bool {
	return s.IsTeacher() || s.IsGroup()
}

// Matches reports whether session belongs to the scope.
func (s ScheduleScope) Matches(session ClassSession) bool {
	switch {
	case s.IsTeacher():
		return session.Teacher.ID == s.TeacherID
	case s.IsGroup():
		return session.StudentGroup.ID == s.GroupID
	default:
		return false
	}
}

// ClassSessionRecord is the row written for a session; hours are linked separately.
type ClassSessionRecord struct {
	ID              string      `db:"id"`
	StudentGroupID  string      `db:"student_group_id"`
	CourseID        string      `db:"course_id"`
	TeacherID       string      `db:"teacher_id"`
	LearningSpaceID string      `db:"learning_space_id"`
	DayOfWeek       DayOfWeek   `db:"day_of_week"`
	SessionType     SessionType `db:"session_type"`
	Notes           *string     `db:"notes"`
	CreatedAt       time.Time   `db:"created_at"`
	UpdatedAt       time.Time   `db:"updated_at"`
}
