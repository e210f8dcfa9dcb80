package models

import (
	"fmt"
	"strings"
)

// DayOfWeek is the weekday a class session is held on.
type DayOfWeek string

const (
	Monday    DayOfWeek = "MONDAY"
	Tuesday   DayOfWeek = "TUESDAY"
	Wednesday DayOfWeek = "WEDNESDAY"
	Thursday  DayOfWeek = "THURSDAY"
	Friday    DayOfWeek = "FRIDAY"
	Saturday  DayOfWeek = "SATURDAY"
	Sunday    DayOfWeek = "SUNDAY"
)

var dayIndex = map[DayOfWeek]int{
	Monday:    1,
	Tuesday:   2,
	Wednesday: 3,
	Thursday:  4,
	Friday:    5,
	Saturday:  6,
	Sunday:    7,
}

// AllDays lists the week in calendar order starting on Monday.
func AllDays() []DayOfWeek {
	return []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

// Valid reports whether d is one of the seven known weekdays.
func (d DayOfWeek) Valid() bool {
	_, ok := dayIndex[d]
	return ok
}

// Index returns the ISO weekday number (Monday = 1) or 0 for unknown values.
func (d DayOfWeek) Index() int {
	return dayIndex[d]
}

// ParseDayOfWeek accepts weekday names in any case.
func ParseDayOfWeek(raw string) (DayOfWeek, error) {
	day := DayOfWeek(strings.ToUpper(strings.TrimSpace(raw)))
	if !day.Valid() {
		return "", fmt.Errorf("unknown day of week %q", raw)
	}
	return day, nil
}

// ParseWorkingDays converts configured day names, dropping duplicates and keeping calendar order.
func ParseWorkingDays(raw []string) ([]DayOfWeek, error) {
	seen := make(map[DayOfWeek]struct{}, len(raw))
	for _, item := range raw {
		day, err := ParseDayOfWeek(item)
		if err != nil {
			return nil, err
		}
		seen[day] = struct{}{}
	}
	days := make([]DayOfWeek, 0, len(seen))
	for _, day := range AllDays() {
		if _, ok := seen[day]; ok {
			days = append(days, day)
		}
	}
	return days, nil
}

// SessionType distinguishes theory from practice sessions.
type SessionType string

const (
	SessionTypeTheory   SessionType = "THEORY"
	SessionTypePractice SessionType = "PRACTICE"
)

// Valid reports whether t is a known session type.
func (t SessionType) Valid() bool {
	return t == SessionTypeTheory || t == SessionTypePractice
}
