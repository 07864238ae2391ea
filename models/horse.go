package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Horse roster statuses. Transitions between them are unconstrained, but
// only StatusAvailable horses may receive quick workload entries or be
// offered in chukker assignment pickers.
const (
	StatusAvailable = "available"
	StatusRest      = "rest"
	StatusObserve   = "observe"
	StatusOut       = "out"
)

const (
	SuitabilityBeginner     = "beginner"
	SuitabilityIntermediate = "intermediate"
	SuitabilityAdvanced     = "advanced"
)

const (
	TemperamentCalm   = "calm"
	TemperamentMedium = "medium"
	TemperamentHot    = "hot"
)

// Horse represents a polo pony with its daily workload cap.
// Deleting a horse only flips Active so its log history stays attributable.
type Horse struct {
	bun.BaseModel `bun:"table:horses,alias:h"`

	HorseID           int       `bun:"horse_id,pk,autoincrement" json:"horseID"`
	Name              string    `bun:"name,notnull,unique" json:"name"`
	Status            string    `bun:"status,notnull,default:'available'" json:"status"`
	Suitability       string    `bun:"suitability,notnull,default:'intermediate'" json:"suitability"`
	Temperament       string    `bun:"temperament,notnull,default:'medium'" json:"temperament"`
	MaxChukkersPerDay int       `bun:"max_chukkers_per_day,notnull,default:2" json:"maxChukkersPerDay"`
	Notes             string    `bun:"notes,notnull,default:''" json:"notes"`
	Active            bool      `bun:"active,notnull,default:true" json:"active"`
	CreatedAt         time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt         time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updatedAt"`
}

// ValidStatus reports whether s is one of the roster statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusAvailable, StatusRest, StatusObserve, StatusOut:
		return true
	}
	return false
}

// ValidSuitability reports whether s is a known suitability rating.
func ValidSuitability(s string) bool {
	switch s {
	case SuitabilityBeginner, SuitabilityIntermediate, SuitabilityAdvanced:
		return true
	}
	return false
}

// ValidTemperament reports whether s is a known temperament rating.
func ValidTemperament(s string) bool {
	switch s {
	case TemperamentCalm, TemperamentMedium, TemperamentHot:
		return true
	}
	return false
}
