package models

import "strings"

// AvailabilityStatus is the terminal classification of a teacher for one request.
type AvailabilityStatus string

const (
	AvailabilityAvailable            AvailabilityStatus = "AVAILABLE"
	AvailabilityScheduleConflict     AvailabilityStatus = "SCHEDULE_CONFLICT"
	AvailabilityPartialConflict      AvailabilityStatus = "PARTIAL_CONFLICT"
	AvailabilityTimeConflict         AvailabilityStatus = "TIME_CONFLICT"
	AvailabilityNoScheduleConfigured AvailabilityStatus = "NO_SCHEDULE_CONFIGURED"
	AvailabilityError                AvailabilityStatus = "ERROR"

	legacyNotAvailable = "NOT_AVAILABLE"
)

// AvailabilityStatuses lists every label a classification can produce.
func AvailabilityStatuses() []AvailabilityStatus {
	return []AvailabilityStatus{
		AvailabilityAvailable,
		AvailabilityScheduleConflict,
		AvailabilityPartialConflict,
		AvailabilityTimeConflict,
		AvailabilityNoScheduleConfigured,
		AvailabilityError,
	}
}

// ParseAvailabilityStatus maps stored labels onto the closed set. The legacy
// NOT_AVAILABLE label becomes TIME_CONFLICT; anything unknown becomes ERROR.
func ParseAvailabilityStatus(raw string) AvailabilityStatus {
	value := strings.ToUpper(strings.TrimSpace(raw))
	if value == legacyNotAvailable {
		return AvailabilityTimeConflict
	}
	for _, status := range AvailabilityStatuses() {
		if string(status) == value {
			return status
		}
	}
	return AvailabilityError
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *AvailabilityStatus) UnmarshalText(text []byte) error {
	*s = ParseAvailabilityStatus(string(text))
	return nil
}

// TeacherBucket groups availability statuses for presentation and selection.
type TeacherBucket string

const (
	BucketAvailable     TeacherBucket = "available"
	BucketWithConflicts TeacherBucket = "with_conflicts"
	BucketUnavailable   TeacherBucket = "unavailable"
	BucketNoSchedule    TeacherBucket = "no_schedule"
)

// SessionConflict is an existing session that overlaps the requested hours.
// Hours holds only the requested hours the session overlaps.
type SessionConflict struct {
	SessionID     string         `json:"session_id"`
	Course        Course         `json:"course"`
	StudentGroup  StudentGroup   `json:"student_group"`
	LearningSpace LearningSpace  `json:"learning_space"`
	Hours         []TeachingHour `json:"hours"`
}

// TeacherEligibility is the classification of one teacher for a (course, day, hours) request.
type TeacherEligibility struct {
	Teacher             Teacher            `json:"teacher"`
	Status              AvailabilityStatus `json:"status"`
	Bucket              TeacherBucket      `json:"bucket"`
	Reason              string             `json:"reason"`
	ConflictingSessions []SessionConflict  `json:"conflicting_sessions,omitempty"`
}

// TeacherBuckets holds classified teachers grouped by bucket, each sorted by display name.
type TeacherBuckets struct {
	Available     []TeacherEligibility `json:"available"`
	WithConflicts []TeacherEligibility `json:"with_conflicts"`
	Unavailable   []TeacherEligibility `json:"unavailable"`
	NoSchedule    []TeacherEligibility `json:"no_schedule"`
}

// All returns every classified teacher across buckets.
func (b TeacherBuckets) All() []TeacherEligibility {
	all := make([]TeacherEligibility, 0, len(b.Available)+len(b.WithConflicts)+len(b.Unavailable)+len(b.NoSchedule))
	all = append(all, b.Available...)
	all = append(all, b.WithConflicts...)
	all = append(all, b.Unavailable...)
	all = append(all, b.NoSchedule...)
	return all
}
