package planner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padraicbc/poloapi/models"
)

func summaryFixture() (*models.Practice, []models.Player, []models.Horse) {
	p := &models.Practice{
		Name:   "Sábado",
		Date:   "2026-03-14",
		Status: models.PracticePlanned,
		Teams:  models.Teams{A: []int{1, 2}, B: []int{3}},
		Chukkers: []models.Chukker{
			{Number: 1, Assignments: []models.Assignment{
				{PlayerID: 1, HorseID: 10},
			}},
			{Number: 2},
		},
	}
	players := []models.Player{
		{PlayerID: 1, Name: "Ana", Level: 2},
		{PlayerID: 2, Name: "Bruno", Level: 2.5},
		{PlayerID: 3, Name: "Clara", Level: 1},
	}
	horses := []models.Horse{
		{HorseID: 10, Name: "Mora"},
	}
	return p, players, horses
}

func TestShareTextPlanned(t *testing.T) {
	t.Parallel()

	p, players, horses := summaryFixture()
	text := ShareText(p, players, horses)

	assert.True(t, strings.HasPrefix(text, "🏇 *Sábado*\n📅 2026-03-14"))
	assert.Contains(t, text, "🔵 *Equipo Azul* (4.5 HCP)")
	assert.Contains(t, text, "   • Bruno (2.5 HCP)")
	assert.Contains(t, text, "🔴 *Equipo Rojo* (1 HCP)")
	assert.Contains(t, text, "*Chukker 1*")
	assert.Contains(t, text, "🔵 Ana: Mora")
	assert.Contains(t, text, "🔵 Bruno: Por asignar")

	// No score block before play starts, no trailing blank lines.
	assert.NotContains(t, text, "*MARCADOR*")
	assert.False(t, strings.HasSuffix(text, "\n"))
}

func TestShareTextCompleted(t *testing.T) {
	t.Parallel()

	p, players, horses := summaryFixture()
	p.Status = models.PracticeCompleted
	require.NoError(t, SetScore(p, 1, 4, 2))

	text := ShareText(p, players, horses)
	assert.Contains(t, text, "🔵 Azul 4 - 2 Rojo 🔴")
	assert.Contains(t, text, "🏆 Ganador: Equipo Azul 🔵")

	require.NoError(t, SetScore(p, 2, 0, 2))
	assert.Contains(t, ShareText(p, players, horses), "🏆 Ganador: Empate")
}

func TestShareTextDefaults(t *testing.T) {
	t.Parallel()

	p := &models.Practice{Date: "2026-03-14", Chukkers: models.NewChukkers(1)}
	text := ShareText(p, nil, nil)

	assert.True(t, strings.HasPrefix(text, "🏇 *Práctica*"))
	// No rosters yet, so the team and assignment sections are omitted.
	assert.NotContains(t, text, "*EQUIPOS*")
	assert.NotContains(t, text, "*ASIGNACIÓN DE CABALLOS*")
}
