package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level float64
		want  bool
	}{
		{0, true},
		{2, true},
		{2.5, true},
		{-2, true},
		{-1.5, true},
		{10, true},
		{10.5, false},
		{-2.5, false},
		{2.3, false},
	}

	for _, tc := range tests {
		tc := tc
		assert.Equal(t, tc.want, ValidLevel(tc.level), "level %v", tc.level)
	}
}

func TestValidHorseEnums(t *testing.T) {
	t.Parallel()

	assert.True(t, ValidStatus(StatusAvailable))
	assert.True(t, ValidStatus(StatusRest))
	assert.False(t, ValidStatus("retired"))

	assert.True(t, ValidSuitability(SuitabilityBeginner))
	assert.False(t, ValidSuitability("expert"))

	assert.True(t, ValidTemperament(TemperamentHot))
	assert.False(t, ValidTemperament("wild"))

	assert.True(t, ValidLogType(LogWorkload))
	assert.False(t, ValidLogType("grooming"))

	assert.True(t, ValidPracticeStatus(PracticeInProgress))
	assert.False(t, ValidPracticeStatus("cancelled"))
}

func TestNewChukkers(t *testing.T) {
	t.Parallel()

	chukkers := NewChukkers(4)
	assert.Len(t, chukkers, 4)
	for i, c := range chukkers {
		assert.Equal(t, i+1, c.Number)
		assert.NotNil(t, c.Assignments)
		assert.Empty(t, c.Assignments)
	}
}
