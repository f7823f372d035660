package stats

import (
	"time"
)

// HeatmapDays is the number of past days, today included, covered by a heatmap.
const HeatmapDays = 370

type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type HeatmapDay struct {
	Date     string `json:"date"`
	Count    int    `json:"count"`
	InFuture bool   `json:"inFuture"`
}

// HeatmapStart is the first of the last HeatmapDays days.
func HeatmapStart(now time.Time) time.Time {
	return Day(now).AddDate(0, 0, -(HeatmapDays - 1))
}

// HeatmapGridStart is the Sunday on or before HeatmapStart: the first cell of the grid.
// Counts must be fetched from this day so the leading cells are filled too.
func HeatmapGridStart(now time.Time) time.Time {
	start := HeatmapStart(now)
	return start.AddDate(0, 0, -int(start.Weekday()))
}

// Heatmap lays counts out as whole weeks, Sunday to Saturday, covering the last HeatmapDays days.
// Days after today are flagged InFuture and always have a zero count.
func Heatmap(counts []DailyCount, now time.Time) []HeatmapDay {
	byDate := make(map[string]int, len(counts))
	for _, c := range counts {
		byDate[c.Date] += c.Count
	}

	today := Day(now)
	start := HeatmapGridStart(now)
	end := today.AddDate(0, 0, int(time.Saturday-today.Weekday()))

	var days []HeatmapDay
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(DateLayout)
		if d.After(today) {
			days = append(days, HeatmapDay{Date: key, InFuture: true})
			continue
		}
		days = append(days, HeatmapDay{Date: key, Count: byDate[key]})
	}
	return days
}
