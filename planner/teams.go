package planner

import "github.com/padraicbc/poloapi/models"

// DefaultBalanceThreshold is the handicap delta above which teams are
// flagged as unbalanced when no threshold is configured.
const DefaultBalanceThreshold = 2

// TeamHandicap sums the levels of the referenced players. Unknown ids
// count as zero so a stale roster never breaks the calculation.
func TeamHandicap(ids []int, players map[int]models.Player) float64 {
	sum := 0.0
	for _, id := range ids {
		if p, ok := players[id]; ok {
			sum += p.Level
		}
	}
	return sum
}

// BalanceDelta is the absolute handicap difference between the sides.
func BalanceDelta(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}

// Unbalanced flags a delta above threshold. Display-only; nothing blocks
// an unbalanced lineup.
func Unbalanced(delta float64, threshold float64) bool {
	return delta > threshold
}

// AssignToTeam puts the player on the given side, removing them from the
// other side first so the rosters stay disjoint. An empty team removes
// the player from both sides and purges every chukker assignment that
// references them, in the same operation.
func AssignToTeam(p *models.Practice, playerID int, team string) {
	p.Teams.A = removeID(p.Teams.A, playerID)
	p.Teams.B = removeID(p.Teams.B, playerID)

	switch team {
	case models.TeamA:
		p.Teams.A = append(p.Teams.A, playerID)
	case models.TeamB:
		p.Teams.B = append(p.Teams.B, playerID)
	default:
		for i := range p.Chukkers {
			p.Chukkers[i].Assignments = removeAssignments(p.Chukkers[i].Assignments, playerID)
		}
	}
}

// MovePlayer switches the player to the given side. The player is
// stripped from both rosters first, so a caller with a stale view of the
// lineup can never leave them on two teams at once. Chukker assignments
// carry over untouched: the horse pairings belong to the player, not the
// team.
func MovePlayer(p *models.Practice, playerID int, to string) {
	if to != models.TeamA && to != models.TeamB {
		return
	}
	AssignToTeam(p, playerID, to)
}

// OnTeam reports which side the player is on, or "" when unassigned.
func OnTeam(p *models.Practice, playerID int) string {
	for _, id := range p.Teams.A {
		if id == playerID {
			return models.TeamA
		}
	}
	for _, id := range p.Teams.B {
		if id == playerID {
			return models.TeamB
		}
	}
	return ""
}

// ToggleConfirmation adds the player to the confirmed set, or removes
// them if already present. Toggling twice restores the original set.
func ToggleConfirmation(p *models.Practice, playerID int) (confirmed bool) {
	for _, id := range p.ConfirmedPlayers {
		if id == playerID {
			p.ConfirmedPlayers = removeID(p.ConfirmedPlayers, playerID)
			return false
		}
	}
	p.ConfirmedPlayers = append(p.ConfirmedPlayers, playerID)
	return true
}

func removeID(ids []int, id int) []int {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func removeAssignments(as []models.Assignment, playerID int) []models.Assignment {
	out := as[:0]
	for _, a := range as {
		if a.PlayerID != playerID {
			out = append(out, a)
		}
	}
	return out
}
