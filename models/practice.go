package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Practice statuses. The guarded flow is planned → in-progress → completed,
// never backwards. The generic update endpoint can still set any status
// directly; that is an escape hatch, not a supported path.
const (
	PracticePlanned    = "planned"
	PracticeInProgress = "in-progress"
	PracticeCompleted  = "completed"
)

// Team side labels.
const (
	TeamA = "A"
	TeamB = "B"
)

// Assignment pairs a player with a horse inside one chukker.
// At most one assignment per player per chukker.
type Assignment struct {
	PlayerID int `json:"playerId"`
	HorseID  int `json:"horseId"`
}

// Chukker is one timed period of play. Number is 1-based and kept
// contiguous when chukkers are removed. Scores are only meaningful once
// the practice is in progress.
type Chukker struct {
	Number      int          `json:"number"`
	Assignments []Assignment `json:"assignments"`
	ScoreA      int          `json:"scoreA"`
	ScoreB      int          `json:"scoreB"`
}

// Teams holds the two disjoint player rosters. A player appears in at
// most one side at a time; the planner mutators maintain that invariant
// by construction.
type Teams struct {
	A []int `json:"A"`
	B []int `json:"B"`
}

// Practice is the scheduling aggregate: rosters, chukkers and
// confirmations live as jsonb documents owned by the practice row.
type Practice struct {
	bun.BaseModel `bun:"table:practices,alias:pr"`

	PracticeID       int        `bun:"practice_id,pk,autoincrement" json:"practiceID"`
	Name             string     `bun:"name,notnull,default:''" json:"name"`
	Date             string     `bun:"date,notnull,type:date" json:"date"`
	Status           string     `bun:"status,notnull,default:'planned'" json:"status"`
	Teams            Teams      `bun:"teams,notnull,type:jsonb" json:"teams"`
	Chukkers         []Chukker  `bun:"chukkers,notnull,type:jsonb" json:"chukkers"`
	ConfirmedPlayers []int      `bun:"confirmed_players,notnull,type:jsonb" json:"confirmedPlayers"`
	CreatedAt        time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt        time.Time  `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updatedAt"`
	CompletedAt      *time.Time `bun:"completed_at" json:"completedAt,omitempty"`
}

// ValidPracticeStatus reports whether s is a known practice status.
func ValidPracticeStatus(s string) bool {
	switch s {
	case PracticePlanned, PracticeInProgress, PracticeCompleted:
		return true
	}
	return false
}

// NewChukkers builds n empty chukkers numbered 1..n.
func NewChukkers(n int) []Chukker {
	chukkers := make([]Chukker, n)
	for i := range chukkers {
		chukkers[i] = Chukker{Number: i + 1, Assignments: []Assignment{}}
	}
	return chukkers
}
