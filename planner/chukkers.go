package planner

import (
	"errors"
	"fmt"

	"github.com/padraicbc/poloapi/models"
)

var (
	// ErrChukkerNotFound means no chukker carries the requested number.
	ErrChukkerNotFound = errors.New("chukker not found")
	// ErrLastChukker guards against removing the only chukker.
	ErrLastChukker = errors.New("a practice needs at least one chukker")
)

// UsageCounts tallies how many chukker slots each horse fills across the
// whole practice. A horse ridden by two players in two chukkers counts
// twice.
func UsageCounts(p *models.Practice) map[int]int {
	counts := map[int]int{}
	for _, c := range p.Chukkers {
		for _, a := range c.Assignments {
			if a.HorseID != 0 {
				counts[a.HorseID]++
			}
		}
	}
	return counts
}

// AddChukker appends an empty chukker with the next number.
func AddChukker(p *models.Practice) {
	p.Chukkers = append(p.Chukkers, models.Chukker{
		Number:      len(p.Chukkers) + 1,
		Assignments: []models.Assignment{},
	})
}

// RemoveChukker drops the chukker with the given number and renumbers the
// rest to a contiguous 1..N sequence. The last chukker cannot be removed.
func RemoveChukker(p *models.Practice, number int) error {
	if len(p.Chukkers) <= 1 {
		return ErrLastChukker
	}
	idx := chukkerIndex(p, number)
	if idx < 0 {
		return ErrChukkerNotFound
	}
	p.Chukkers = append(p.Chukkers[:idx], p.Chukkers[idx+1:]...)
	for i := range p.Chukkers {
		p.Chukkers[i].Number = i + 1
	}
	return nil
}

// SetScore records both sides' goals for one chukker.
func SetScore(p *models.Practice, number, scoreA, scoreB int) error {
	if scoreA < 0 || scoreB < 0 {
		return errors.New("scores cannot be negative")
	}
	idx := chukkerIndex(p, number)
	if idx < 0 {
		return ErrChukkerNotFound
	}
	p.Chukkers[idx].ScoreA = scoreA
	p.Chukkers[idx].ScoreB = scoreB
	return nil
}

// TotalScore sums each side's goals across all chukkers.
func TotalScore(p *models.Practice) (a, b int) {
	for _, c := range p.Chukkers {
		a += c.ScoreA
		b += c.ScoreB
	}
	return a, b
}

// Winner returns the side with the strictly greater total, or "" for a
// draw.
func Winner(p *models.Practice) string {
	a, b := TotalScore(p)
	switch {
	case a > b:
		return models.TeamA
	case b > a:
		return models.TeamB
	}
	return ""
}

// AssignHorse upserts the player's horse pairing in one chukker. A zero
// horseID removes the pairing. Each player holds at most one entry per
// chukker.
func AssignHorse(p *models.Practice, number, playerID, horseID int) error {
	idx := chukkerIndex(p, number)
	if idx < 0 {
		return ErrChukkerNotFound
	}
	c := &p.Chukkers[idx]

	for i, a := range c.Assignments {
		if a.PlayerID == playerID {
			if horseID == 0 {
				c.Assignments = append(c.Assignments[:i], c.Assignments[i+1:]...)
			} else {
				c.Assignments[i].HorseID = horseID
			}
			return nil
		}
	}
	if horseID != 0 {
		c.Assignments = append(c.Assignments, models.Assignment{PlayerID: playerID, HorseID: horseID})
	}
	return nil
}

// AssignmentWarning checks whether pairing the horse into (chukker,
// player) would break the advisory rules: the horse must be available and
// under its daily cap, unless the exact pair is being re-selected. The
// returned message is empty when the pairing is clean. Violations warn,
// they never block the write.
func AssignmentWarning(p *models.Practice, horse models.Horse, number, playerID int) string {
	if !horse.Active {
		return fmt.Sprintf("%s has been removed from the roster", horse.Name)
	}
	if horse.Status != models.StatusAvailable {
		return fmt.Sprintf("%s is not available (status: %s)", horse.Name, horse.Status)
	}

	if idx := chukkerIndex(p, number); idx >= 0 {
		for _, a := range p.Chukkers[idx].Assignments {
			if a.PlayerID == playerID && a.HorseID == horse.HorseID {
				// Re-selecting the current pairing is always fine.
				return ""
			}
		}
	}

	if UsageCounts(p)[horse.HorseID] >= horse.MaxChukkersPerDay {
		return fmt.Sprintf("%s is already at its daily cap of %d chukkers", horse.Name, horse.MaxChukkersPerDay)
	}
	return ""
}

func chukkerIndex(p *models.Practice, number int) int {
	for i, c := range p.Chukkers {
		if c.Number == number {
			return i
		}
	}
	return -1
}
