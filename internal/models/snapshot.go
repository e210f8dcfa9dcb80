package models

// SnapshotName identifies a read-mostly reference snapshot held in the cache.
type SnapshotName string

const (
	// SnapshotTimeSlots is the full list of time slots with their teaching hours.
	SnapshotTimeSlots SnapshotName = "time-slots"
)
