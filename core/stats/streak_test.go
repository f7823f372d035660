package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t.Add(15 * time.Hour)
}

func TestCurrentStreak(t *testing.T) {
	days := []string{"2024-01-01", "2024-01-02", "2024-01-03"}
	tests := []struct {
		name            string
		days            []string
		now             string
		wantStreak      int
		wantSolvedToday bool
	}{
		{"solved today", days, "2024-01-03", 3, true},
		{"solved yesterday", days, "2024-01-04", 3, false},
		{"broken", days, "2024-01-05", 0, false},
		{"no days", nil, "2024-01-05", 0, false},
		{"today only", []string{"2024-01-05"}, "2024-01-05", 1, true},
		{"gap", []string{"2024-01-01", "2024-01-03", "2024-01-04"}, "2024-01-04", 2, true},
		{"unordered", []string{"2024-01-03", "2024-01-01", "2024-01-02"}, "2024-01-03", 3, true},
		{"month boundary", []string{"2024-02-28", "2024-02-29", "2024-03-01"}, "2024-03-01", 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			streak, solvedToday := CurrentStreak(tt.days, date(tt.now))
			assert.Equal(t, tt.wantStreak, streak)
			assert.Equal(t, tt.wantSolvedToday, solvedToday)
		})
	}
}

func TestCurrentStreak_NonUTCClock(t *testing.T) {
	loc := time.FixedZone("KST", 9*3600)
	// 2024-01-04 01:00 KST is still 2024-01-03 in UTC
	now := time.Date(2024, 1, 4, 1, 0, 0, 0, loc)
	streak, solvedToday := CurrentStreak([]string{"2024-01-02", "2024-01-03"}, now)
	assert.Equal(t, 2, streak)
	assert.True(t, solvedToday)
}

func TestLongestStreak(t *testing.T) {
	tests := []struct {
		name string
		days []string
		want int
	}{
		{"empty", nil, 0},
		{"single", []string{"2024-01-01"}, 1},
		{"two runs", []string{"2024-01-01", "2024-01-02", "2024-01-04", "2024-01-05", "2024-01-06"}, 3},
		{"first run longest", []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-10"}, 3},
		{"year boundary", []string{"2023-12-30", "2023-12-31", "2024-01-01"}, 3},
		{"unordered", []string{"2024-01-03", "2024-01-01", "2024-01-02"}, 3},
		{"repeated days", []string{"2024-01-02", "2024-01-01", "2024-01-02", "2024-01-01"}, 2},
		{"descending", []string{"2024-01-09", "2024-01-08", "2024-01-03", "2024-01-02", "2024-01-01"}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LongestStreak(tt.days))
		})
	}
}
