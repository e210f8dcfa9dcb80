package models

// Teacher is an instructor who can be assigned to class sessions.
type Teacher struct {
	ID              string `db:"id" json:"id"`
	FullName        string `db:"full_name" json:"full_name"`
	Email           string `db:"email" json:"email"`
	KnowledgeAreaID string `db:"knowledge_area_id" json:"knowledge_area_id"`
	Active          bool   `db:"active" json:"active"`
}

// AvailabilityWindow is a declared interval during which a teacher can teach.
type AvailabilityWindow struct {
	ID        string    `db:"id" json:"id"`
	TeacherID string    `db:"teacher_id" json:"teacher_id"`
	DayOfWeek DayOfWeek `db:"day_of_week" json:"day_of_week"`
	StartTime string    `db:"start_time" json:"start_time"`
	EndTime   string    `db:"end_time" json:"end_time"`
}

// TeacherCandidate bundles a teacher with the evidence needed to classify them
// for one day: their sessions and availability windows on that day.
type TeacherCandidate struct {
	Teacher   Teacher              `json:"teacher"`
	Sessions  []ClassSession       `json:"sessions"`
	Windows   []AvailabilityWindow `json:"windows"`
	LoadError string               `json:"load_error,omitempty"`
}
