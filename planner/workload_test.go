package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/padraicbc/poloapi/models"
)

func workloadEntry(date string, delta int) models.HorseLog {
	return models.HorseLog{Date: date, Type: models.LogWorkload, ChukkersDelta: delta}
}

func TestDailyWorkload(t *testing.T) {
	t.Parallel()

	logs := []models.HorseLog{
		workloadEntry("2026-03-10", 2),
		workloadEntry("2026-03-10", 1),
		workloadEntry("2026-03-09", 3),
		{Date: "2026-03-10", Type: models.LogHealth, ChukkersDelta: 5},
		{Date: "2026-03-10", Type: models.LogNote},
	}

	assert.Equal(t, 3, DailyWorkload(logs, "2026-03-10"))
	assert.Equal(t, 3, DailyWorkload(logs, "2026-03-09"))
	assert.Equal(t, 0, DailyWorkload(logs, "2026-03-11"))
}

func TestWeeklyWorkloadWindow(t *testing.T) {
	t.Parallel()

	ref := "2026-03-10"
	tests := []struct {
		name string
		logs []models.HorseLog
		want int
	}{
		{
			name: "empty",
			want: 0,
		},
		{
			name: "window start inclusive",
			logs: []models.HorseLog{workloadEntry("2026-03-04", 2)},
			want: 2,
		},
		{
			name: "day before window ignored",
			logs: []models.HorseLog{workloadEntry("2026-03-03", 2)},
			want: 0,
		},
		{
			name: "reference day inclusive",
			logs: []models.HorseLog{workloadEntry("2026-03-10", 1)},
			want: 1,
		},
		{
			name: "day after reference ignored",
			logs: []models.HorseLog{workloadEntry("2026-03-11", 4)},
			want: 0,
		},
		{
			name: "non-workload entries ignored",
			logs: []models.HorseLog{
				workloadEntry("2026-03-08", 2),
				{Date: "2026-03-08", Type: models.LogHealth, ChukkersDelta: 9},
			},
			want: 2,
		},
		{
			name: "negative corrections count",
			logs: []models.HorseLog{
				workloadEntry("2026-03-08", 3),
				workloadEntry("2026-03-09", -1),
			},
			want: 2,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, WeeklyWorkload(tc.logs, ref))
		})
	}
}

func TestWeeklyWorkloadMonotonic(t *testing.T) {
	t.Parallel()

	ref := "2026-03-10"
	logs := []models.HorseLog{workloadEntry("2026-03-05", 2)}
	before := WeeklyWorkload(logs, ref)

	logs = append(logs, workloadEntry("2026-03-07", 1))
	assert.GreaterOrEqual(t, WeeklyWorkload(logs, ref), before)
}

func TestWeeklyWorkloadBadReference(t *testing.T) {
	t.Parallel()

	logs := []models.HorseLog{workloadEntry("2026-03-05", 2)}
	assert.Equal(t, 0, WeeklyWorkload(logs, "not-a-date"))
}

func TestOverworked(t *testing.T) {
	t.Parallel()

	logs := []models.HorseLog{
		workloadEntry("2026-03-10", 1),
		workloadEntry("2026-03-10", 1),
	}

	assert.False(t, Overworked(logs, "2026-03-10", 3))
	assert.True(t, Overworked(logs, "2026-03-10", 2))
	assert.False(t, Overworked(logs, "2026-03-09", 2))
}
