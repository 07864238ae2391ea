package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padraicbc/poloapi/models"
)

func TestUsageCountsAcrossChukkers(t *testing.T) {
	t.Parallel()

	// Same horse under two players in one chukker counts twice.
	p := &models.Practice{
		Chukkers: []models.Chukker{
			{Number: 1, Assignments: []models.Assignment{
				{PlayerID: 1, HorseID: 10},
				{PlayerID: 2, HorseID: 10},
			}},
			{Number: 2, Assignments: []models.Assignment{
				{PlayerID: 1, HorseID: 11},
			}},
		},
	}

	counts := UsageCounts(p)
	assert.Equal(t, 2, counts[10])
	assert.Equal(t, 1, counts[11])
	assert.NotContains(t, counts, 12)
}

func TestAssignHorse(t *testing.T) {
	t.Parallel()

	t.Run("insert then replace", func(t *testing.T) {
		t.Parallel()
		p := &models.Practice{Chukkers: models.NewChukkers(2)}

		require.NoError(t, AssignHorse(p, 1, 1, 10))
		require.NoError(t, AssignHorse(p, 1, 1, 11))

		require.Len(t, p.Chukkers[0].Assignments, 1)
		assert.Equal(t, 11, p.Chukkers[0].Assignments[0].HorseID)
	})

	t.Run("idempotent re-selection", func(t *testing.T) {
		t.Parallel()
		p := &models.Practice{Chukkers: models.NewChukkers(1)}

		require.NoError(t, AssignHorse(p, 1, 1, 10))
		require.NoError(t, AssignHorse(p, 1, 1, 10))

		assert.Equal(t, 1, UsageCounts(p)[10])
	})

	t.Run("zero horse removes pairing", func(t *testing.T) {
		t.Parallel()
		p := &models.Practice{Chukkers: models.NewChukkers(1)}

		require.NoError(t, AssignHorse(p, 1, 1, 10))
		require.NoError(t, AssignHorse(p, 1, 1, 0))

		assert.Empty(t, p.Chukkers[0].Assignments)
	})

	t.Run("removing a missing pairing is a no-op", func(t *testing.T) {
		t.Parallel()
		p := &models.Practice{Chukkers: models.NewChukkers(1)}

		require.NoError(t, AssignHorse(p, 1, 1, 0))
		assert.Empty(t, p.Chukkers[0].Assignments)
	})

	t.Run("unknown chukker", func(t *testing.T) {
		t.Parallel()
		p := &models.Practice{Chukkers: models.NewChukkers(1)}

		assert.ErrorIs(t, AssignHorse(p, 9, 1, 10), ErrChukkerNotFound)
	})
}

func TestAddRemoveChukker(t *testing.T) {
	t.Parallel()

	p := &models.Practice{Chukkers: models.NewChukkers(3)}
	require.NoError(t, AssignHorse(p, 2, 1, 10))

	AddChukker(p)
	require.Len(t, p.Chukkers, 4)
	assert.Equal(t, 4, p.Chukkers[3].Number)

	require.NoError(t, RemoveChukker(p, 1))
	require.Len(t, p.Chukkers, 3)
	for i, c := range p.Chukkers {
		assert.Equal(t, i+1, c.Number)
	}
	// The old chukker 2 is now chukker 1 and keeps its assignment.
	assert.Equal(t, 10, p.Chukkers[0].Assignments[0].HorseID)

	assert.ErrorIs(t, RemoveChukker(p, 9), ErrChukkerNotFound)

	require.NoError(t, RemoveChukker(p, 1))
	require.NoError(t, RemoveChukker(p, 1))
	assert.ErrorIs(t, RemoveChukker(p, 1), ErrLastChukker)
}

func TestScoresAndWinner(t *testing.T) {
	t.Parallel()

	p := &models.Practice{Chukkers: models.NewChukkers(2)}
	require.NoError(t, SetScore(p, 1, 3, 1))
	require.NoError(t, SetScore(p, 2, 0, 2))

	a, b := TotalScore(p)
	assert.Equal(t, 3, a)
	assert.Equal(t, 3, b)
	assert.Equal(t, "", Winner(p))

	require.NoError(t, SetScore(p, 2, 0, 4))
	assert.Equal(t, models.TeamB, Winner(p))

	assert.Error(t, SetScore(p, 1, -1, 0))
	assert.ErrorIs(t, SetScore(p, 9, 0, 0), ErrChukkerNotFound)
}

func TestAssignmentWarning(t *testing.T) {
	t.Parallel()

	available := models.Horse{HorseID: 10, Name: "Mora", Status: models.StatusAvailable, MaxChukkersPerDay: 2, Active: true}

	atCap := func() *models.Practice {
		return &models.Practice{
			Chukkers: []models.Chukker{
				{Number: 1, Assignments: []models.Assignment{{PlayerID: 1, HorseID: 10}}},
				{Number: 2, Assignments: []models.Assignment{{PlayerID: 2, HorseID: 10}}},
				{Number: 3, Assignments: []models.Assignment{}},
			},
		}
	}

	t.Run("clean pairing", func(t *testing.T) {
		t.Parallel()
		p := &models.Practice{Chukkers: models.NewChukkers(1)}
		assert.Empty(t, AssignmentWarning(p, available, 1, 1))
	})

	t.Run("horse not available", func(t *testing.T) {
		t.Parallel()
		resting := available
		resting.Status = models.StatusRest
		p := &models.Practice{Chukkers: models.NewChukkers(1)}
		assert.Contains(t, AssignmentWarning(p, resting, 1, 1), "not available")
	})

	t.Run("horse soft-deleted", func(t *testing.T) {
		t.Parallel()
		gone := available
		gone.Active = false
		p := &models.Practice{Chukkers: models.NewChukkers(1)}
		assert.Contains(t, AssignmentWarning(p, gone, 1, 1), "removed from the roster")
	})

	t.Run("at daily cap", func(t *testing.T) {
		t.Parallel()
		assert.Contains(t, AssignmentWarning(atCap(), available, 3, 3), "daily cap")
	})

	t.Run("re-selecting the current pair is allowed at cap", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, AssignmentWarning(atCap(), available, 1, 1))
	})
}
