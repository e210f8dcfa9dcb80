package service

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

// parseClock converts "HH:MM" or "HH:MM:SS" into minutes since midnight.
func parseClock(value string) (int, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid clock value %q", value)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("invalid hour in %q", value)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid minute in %q", value)
	}
	if len(parts) == 3 {
		seconds, err := strconv.Atoi(parts[2])
		if err != nil || seconds < 0 || seconds > 59 {
			return 0, fmt.Errorf("invalid second in %q", value)
		}
	}
	return hours*60 + minutes, nil
}

// formatClock renders minutes since midnight as "HH:MM", wrapping past midnight.
func formatClock(minutes int) string {
	minutes = ((minutes % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// clockRange is a half-open interval [start, end) in minutes. end may exceed
// minutesPerDay when the range crosses midnight.
type clockRange struct {
	start int
	end   int
}

func newClockRange(start, end string) (clockRange, error) {
	s, err := parseClock(start)
	if err != nil {
		return clockRange{}, err
	}
	e, err := parseClock(end)
	if err != nil {
		return clockRange{}, err
	}
	if e == s {
		return clockRange{}, fmt.Errorf("empty clock range %s-%s", start, end)
	}
	if e < s {
		e += minutesPerDay
	}
	return clockRange{start: s, end: e}, nil
}

func (r clockRange) duration() int {
	return r.end - r.start
}

func (r clockRange) shift(minutes int) clockRange {
	return clockRange{start: r.start + minutes, end: r.end + minutes}
}

// overlaps reports whether the ranges intersect, also comparing across midnight.
func (r clockRange) overlaps(other clockRange) bool {
	for _, offset := range []int{0, -minutesPerDay, minutesPerDay} {
		o := other.shift(offset)
		if r.start < o.end && o.start < r.end {
			return true
		}
	}
	return false
}

// covers reports whether inner lies entirely within r.
func (r clockRange) covers(inner clockRange) bool {
	for _, offset := range []int{0, minutesPerDay} {
		in := inner.shift(offset)
		if r.start <= in.start && in.end <= r.end {
			return true
		}
	}
	return false
}

func (r clockRange) String() string {
	return formatClock(r.start) + "–" + formatClock(r.end)
}

// mergeClockRanges sorts ranges and joins touching or overlapping ones.
func mergeClockRanges(ranges []clockRange) []clockRange {
	if len(ranges) == 0 {
		return nil
	}
	sorted := append([]clockRange(nil), ranges...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].start != sorted[j].start {
			return sorted[i].start < sorted[j].start
		}
		return sorted[i].end < sorted[j].end
	})
	merged := []clockRange{sorted[0]}
	for _, current := range sorted[1:] {
		last := &merged[len(merged)-1]
		if current.start <= last.end {
			if current.end > last.end {
				last.end = current.end
			}
			continue
		}
		merged = append(merged, current)
	}
	return merged
}
