package service

import (
	"github.com/noah-isme/sma-schedule-engine/internal/models"
)

var workingDays = []models.DayOfWeek{models.Monday, models.Tuesday, models.Wednesday, models.Thursday, models.Friday, models.Saturday}

func teachingHour(id, slotID string, order int, start, end string) models.TeachingHour {
	return models.TeachingHour{ID: id, TimeSlotID: slotID, OrderInTimeSlot: order, StartTime: start, EndTime: end, DurationMinutes: 40}
}

var (
	hourM1 = teachingHour("m1", "morning", 1, "07:00", "07:40")
	hourM2 = teachingHour("m2", "morning", 2, "07:40", "08:20")
	hourM3 = teachingHour("m3", "morning", 3, "08:20", "09:00")
	hourA1 = teachingHour("a1", "afternoon", 1, "13:00", "13:40")
	hourA2 = teachingHour("a2", "afternoon", 2, "13:40", "14:20")
)

// timeSlotsFixture returns two slots deliberately out of order.
func timeSlotsFixture() []models.TimeSlot {
	return []models.TimeSlot{
		{ID: "afternoon", Name: "Afternoon", StartTime: "13:00", EndTime: "14:20", TeachingHours: []models.TeachingHour{hourA2, hourA1}},
		{ID: "morning", Name: "Morning", StartTime: "07:00", EndTime: "09:00", TeachingHours: []models.TeachingHour{hourM3, hourM1, hourM2}},
	}
}

func gridFixture(sessions ...models.ClassSession) *models.ScheduleGrid {
	return BuildScheduleGrid(NormalizeTimeSlots(timeSlotsFixture()), workingDays, sessions)
}

var (
	mathCourse    = models.Course{ID: "math", Code: "MAT101", Name: "Mathematics", WeeklyTheoryHours: 4, WeeklyPracticeHours: 2, KnowledgeAreaID: "science"}
	historyCourse = models.Course{ID: "hist", Code: "HIS101", Name: "History", WeeklyTheoryHours: 2, KnowledgeAreaID: "humanities"}
	groupA        = models.StudentGroup{ID: "g-a", Name: "Group A"}
	groupB        = models.StudentGroup{ID: "g-b", Name: "Group B"}
	room101       = models.LearningSpace{ID: "r101", Name: "Room 101", Capacity: 30, SessionType: models.SessionTypeTheory}
	room102       = models.LearningSpace{ID: "r102", Name: "Room 102", Capacity: 30, SessionType: models.SessionTypeTheory}
	labA          = models.LearningSpace{ID: "lab-a", Name: "Lab A", Capacity: 20, SessionType: models.SessionTypePractice}
	teacherAna    = models.Teacher{ID: "t-ana", FullName: "Ana Torres", KnowledgeAreaID: "science", Active: true}
	teacherBen    = models.Teacher{ID: "t-ben", FullName: "ben Ruiz", KnowledgeAreaID: "science", Active: true}
	teacherCruz   = models.Teacher{ID: "t-cruz", FullName: "Cruz Vega", KnowledgeAreaID: "science", Active: true}
)

func classSession(id string, day models.DayOfWeek, teacher models.Teacher, group models.StudentGroup, course models.Course, space models.LearningSpace, sessionType models.SessionType, hours ...models.TeachingHour) models.ClassSession {
	return models.ClassSession{
		ID:            id,
		StudentGroup:  group,
		Course:        course,
		Teacher:       teacher,
		LearningSpace: space,
		DayOfWeek:     day,
		SessionType:   sessionType,
		TeachingHours: hours,
	}
}

func window(teacherID string, day models.DayOfWeek, start, end string) models.AvailabilityWindow {
	return models.AvailabilityWindow{ID: teacherID + "-" + string(day) + "-" + start, TeacherID: teacherID, DayOfWeek: day, StartTime: start, EndTime: end}
}

func selected(day models.DayOfWeek, hour models.TeachingHour) models.SelectedCellInfo {
	return models.SelectedCellInfo{Day: day, Hour: hour, TimeSlotID: hour.TimeSlotID}
}
