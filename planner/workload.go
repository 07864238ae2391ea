// Package planner holds the pure scheduling logic for practices: workload
// aggregation, team balance, chukker and assignment mutation, and the
// shareable session summary. Nothing here touches the database; callers
// pass snapshots in and persist the results.
package planner

import (
	"time"

	"github.com/padraicbc/poloapi/models"
)

// DateLayout is the calendar-day format used by logs and practices.
const DateLayout = "2006-01-02"

// Today returns the current calendar day.
func Today() string {
	return time.Now().Format(DateLayout)
}

// DailyWorkload sums chukker deltas of workload entries dated exactly on
// date. Entries of other types or days never contribute.
func DailyWorkload(logs []models.HorseLog, date string) int {
	total := 0
	for _, l := range logs {
		if l.Type == models.LogWorkload && l.Date == date {
			total += l.ChukkersDelta
		}
	}
	return total
}

// WeeklyWorkload sums chukker deltas of workload entries within the
// 7-day window ending at ref inclusive. Dates compare as calendar-day
// strings, so entry timestamps play no part.
func WeeklyWorkload(logs []models.HorseLog, ref string) int {
	t, err := time.Parse(DateLayout, ref)
	if err != nil {
		return 0
	}
	start := t.AddDate(0, 0, -6).Format(DateLayout)

	total := 0
	for _, l := range logs {
		if l.Type == models.LogWorkload && l.Date >= start && l.Date <= ref {
			total += l.ChukkersDelta
		}
	}
	return total
}

// Overworked reports whether the horse has reached its daily cap on date.
func Overworked(logs []models.HorseLog, date string, maxPerDay int) bool {
	return DailyWorkload(logs, date) >= maxPerDay
}
