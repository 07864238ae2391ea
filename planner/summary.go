package planner

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/padraicbc/poloapi/models"
)

// PlayerIndex maps player ids to players for snapshot lookups.
func PlayerIndex(players []models.Player) map[int]models.Player {
	idx := make(map[int]models.Player, len(players))
	for _, p := range players {
		idx[p.PlayerID] = p
	}
	return idx
}

// HorseIndex maps horse ids to horses for snapshot lookups.
func HorseIndex(horses []models.Horse) map[int]models.Horse {
	idx := make(map[int]models.Horse, len(horses))
	for _, h := range horses {
		idx[h.HorseID] = h
	}
	return idx
}

// ShareText renders the WhatsApp-ready summary of a practice: header,
// team rosters with handicaps, per-chukker horse pairings and, once play
// has started, the score line. The club reads these in Spanish, so the
// user-facing labels stay Spanish.
func ShareText(p *models.Practice, players []models.Player, horses []models.Horse) string {
	pIdx := PlayerIndex(players)
	hIdx := HorseIndex(horses)

	name := p.Name
	if name == "" {
		name = "Práctica"
	}

	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}

	line("🏇 *%s*", name)
	line("📅 %s", p.Date)
	line("")

	teamA := knownPlayers(p.Teams.A, pIdx)
	teamB := knownPlayers(p.Teams.B, pIdx)

	if len(teamA) > 0 || len(teamB) > 0 {
		line("*EQUIPOS*")
		line("")
		if len(teamA) > 0 {
			line("🔵 *Equipo Azul* (%s HCP)", hcp(TeamHandicap(p.Teams.A, pIdx)))
			for _, pl := range teamA {
				line("   • %s (%s HCP)", pl.Name, hcp(pl.Level))
			}
			line("")
		}
		if len(teamB) > 0 {
			line("🔴 *Equipo Rojo* (%s HCP)", hcp(TeamHandicap(p.Teams.B, pIdx)))
			for _, pl := range teamB {
				line("   • %s (%s HCP)", pl.Name, hcp(pl.Level))
			}
			line("")
		}
	}

	if len(p.Chukkers) > 0 && len(teamA)+len(teamB) > 0 {
		line("*ASIGNACIÓN DE CABALLOS*")
		line("")
		for _, c := range p.Chukkers {
			line("*Chukker %d*", c.Number)
			for _, pl := range teamA {
				line("🔵 %s: %s", pl.Name, assignedHorse(c, pl.PlayerID, hIdx))
			}
			for _, pl := range teamB {
				line("🔴 %s: %s", pl.Name, assignedHorse(c, pl.PlayerID, hIdx))
			}
			line("")
		}
	}

	if p.Status == models.PracticeInProgress || p.Status == models.PracticeCompleted {
		a, bScore := TotalScore(p)
		line("*MARCADOR*")
		line("🔵 Azul %d - %d Rojo 🔴", a, bScore)
		if p.Status == models.PracticeCompleted {
			switch Winner(p) {
			case models.TeamA:
				line("🏆 Ganador: Equipo Azul 🔵")
			case models.TeamB:
				line("🏆 Ganador: Equipo Rojo 🔴")
			default:
				line("🏆 Ganador: Empate")
			}
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func knownPlayers(ids []int, idx map[int]models.Player) []models.Player {
	out := make([]models.Player, 0, len(ids))
	for _, id := range ids {
		if p, ok := idx[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

func assignedHorse(c models.Chukker, playerID int, idx map[int]models.Horse) string {
	for _, a := range c.Assignments {
		if a.PlayerID == playerID {
			if h, ok := idx[a.HorseID]; ok {
				return h.Name
			}
		}
	}
	return "Por asignar"
}

// hcp prints a handicap without trailing zeroes: 2, -1, 2.5.
func hcp(level float64) string {
	return strconv.FormatFloat(level, 'f', -1, 64)
}
