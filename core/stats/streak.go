// Package stats derives per-user activity statistics from accepted submissions.
package stats

import (
	"sort"
	"time"
)

// DateLayout is the calendar day format used for solved days and heatmap cells.
const DateLayout = "2006-01-02"

// Day truncates t to its UTC calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type daySet map[string]struct{}

func newDaySet(days []string) daySet {
	set := make(daySet, len(days))
	for _, d := range days {
		set[d] = struct{}{}
	}
	return set
}

func (s daySet) has(t time.Time) bool {
	_, ok := s[t.Format(DateLayout)]
	return ok
}

// CurrentStreak counts consecutive solved days ending today.
// A streak ending yesterday still counts when nothing was solved yet today.
func CurrentStreak(days []string, now time.Time) (streak int, solvedToday bool) {
	solved := newDaySet(days)
	cursor := Day(now)
	solvedToday = solved.has(cursor)
	if !solvedToday {
		cursor = cursor.AddDate(0, 0, -1)
	}
	for solved.has(cursor) {
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak, solvedToday
}

// LongestStreak returns the longest run of consecutive days. days may be unordered and repeated.
func LongestStreak(days []string) int {
	parsed := make([]time.Time, 0, len(days))
	for d := range newDaySet(days) {
		if day, err := time.Parse(DateLayout, d); err == nil {
			parsed = append(parsed, day)
		}
	}
	sort.Slice(parsed, func(i, j int) bool { return parsed[i].Before(parsed[j]) })

	var longest, current int
	var prev time.Time
	for i, day := range parsed {
		if i > 0 && day.Sub(prev) == 24*time.Hour {
			current++
		} else {
			current = 1
		}
		if current > longest {
			longest = current
		}
		prev = day
	}
	return longest
}
