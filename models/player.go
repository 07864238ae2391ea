package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Handicap bounds for a player level.
const (
	MinLevel = -2
	MaxLevel = 10
)

// Player is a club member with a polo handicap. Levels run in half-point
// steps from MinLevel to MaxLevel. Soft-deleted via Active.
type Player struct {
	bun.BaseModel `bun:"table:players,alias:p"`

	PlayerID  int       `bun:"player_id,pk,autoincrement" json:"playerID"`
	Name      string    `bun:"name,notnull" json:"name"`
	Level     float64   `bun:"level,notnull,default:0" json:"level"`
	Notes     string    `bun:"notes,notnull,default:''" json:"notes"`
	Active    bool      `bun:"active,notnull,default:true" json:"active"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updatedAt"`
}

// ValidLevel reports whether l is a half-point handicap within bounds.
func ValidLevel(l float64) bool {
	if l < MinLevel || l > MaxLevel {
		return false
	}
	doubled := l * 2
	return doubled == float64(int(doubled))
}
