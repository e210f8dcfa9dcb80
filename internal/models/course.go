package models

// Course is a subject with weekly hour requirements per session type.
type Course struct {
	ID                  string `db:"id" json:"id"`
	Code                string `db:"code" json:"code"`
	Name                string `db:"name" json:"name"`
	WeeklyTheoryHours   int    `db:"weekly_theory_hours" json:"weekly_theory_hours"`
	WeeklyPracticeHours int    `db:"weekly_practice_hours" json:"weekly_practice_hours"`
	KnowledgeAreaID     string `db:"knowledge_area_id" json:"knowledge_area_id"`
}

// RequiredHours returns the weekly requirement for the given session type.
func (c Course) RequiredHours(t SessionType) int {
	switch t {
	case SessionTypeTheory:
		return c.WeeklyTheoryHours
	case SessionTypePractice:
		return c.WeeklyPracticeHours
	default:
		return 0
	}
}

// TeachableTypes lists the session types with a positive weekly requirement.
func (c Course) TeachableTypes() []SessionType {
	types := make([]SessionType, 0, 2)
	if c.WeeklyTheoryHours > 0 {
		types = append(types, SessionTypeTheory)
	}
	if c.WeeklyPracticeHours > 0 {
		types = append(types, SessionTypePractice)
	}
	return types
}

// StudentGroup is a cohort of students that attends sessions together.
type StudentGroup struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// LearningSpace is a room or lab; SessionType is the kind of session it hosts.
type LearningSpace struct {
	ID          string      `db:"id" json:"id"`
	Name        string      `db:"name" json:"name"`
	Capacity    int         `db:"capacity" json:"capacity"`
	SessionType SessionType `db:"session_type" json:"session_type"`
}
