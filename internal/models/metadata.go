package models

// CourseMetadata tracks weekly hour quotas for one course in one group.
type CourseMetadata struct {
	CourseID               string `json:"course_id"`
	CourseCode             string `json:"course_code"`
	CourseName             string `json:"course_name"`
	RequiredTheoryHours    int    `json:"required_theory_hours"`
	RequiredPracticeHours  int    `json:"required_practice_hours"`
	AssignedTheoryHours    int    `json:"assigned_theory_hours"`
	AssignedPracticeHours  int    `json:"assigned_practice_hours"`
	RemainingTheoryHours   int    `json:"remaining_theory_hours"`
	RemainingPracticeHours int    `json:"remaining_practice_hours"`
	ProgressPercentage     int    `json:"progress_percentage"`
	IsCompleted            bool   `json:"is_completed"`
	SessionCount           int    `json:"session_count"`
}

// RemainingHours returns the remaining hours for t.
func (m CourseMetadata) RemainingHours(t SessionType) int {
	switch t {
	case SessionTypeTheory:
		return m.RemainingTheoryHours
	case SessionTypePractice:
		return m.RemainingPracticeHours
	default:
		return 0
	}
}

// CourseQuotaSummary aggregates course metadata across a scope.
type CourseQuotaSummary struct {
	TotalCourses      int `json:"total_courses"`
	CompletedCourses  int `json:"completed_courses"`
	RequiredHours     int `json:"required_hours"`
	AssignedHours     int `json:"assigned_hours"`
	RemainingHours    int `json:"remaining_hours"`
	OverallProgress   int `json:"overall_progress"`
	OverAssignedHours int `json:"over_assigned_hours"`
}

// SessionTypeChoice tells the session-type picker what to offer.
type SessionTypeChoice struct {
	CourseID       string        `json:"course_id"`
	Open           []SessionType `json:"open"`
	AutoSelected   SessionType   `json:"auto_selected,omitempty"`
	RequiresChoice bool          `json:"requires_choice"`
}

// Allows reports whether t is open for selection.
func (c SessionTypeChoice) Allows(t SessionType) bool {
	for _, open := range c.Open {
		if open == t {
			return true
		}
	}
	return false
}

// TeacherScheduleMetadata summarises a teacher's weekly load.
type TeacherScheduleMetadata struct {
	TeacherID               string                       `json:"teacher_id"`
	TotalHours              int                          `json:"total_hours"`
	TotalSessions           int                          `json:"total_sessions"`
	SessionsByDay           map[DayOfWeek][]ClassSession `json:"sessions_by_day"`
	EstimatedAvailableHours float64                      `json:"estimated_available_hours"`
	WorkloadPercentage      float64                      `json:"workload_percentage"`
}
