package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Horse log entry types.
const (
	LogWorkload = "workload"
	LogNote     = "note"
	LogHealth   = "health"
)

// HorseLog is one activity entry for a horse. Entries are append-only:
// they are created (manually, by quick increment, or in bulk when a
// practice completes) and deleted, never updated. ChukkersDelta only
// carries meaning for LogWorkload entries.
type HorseLog struct {
	bun.BaseModel `bun:"table:horse_logs,alias:hl"`

	ID            int       `bun:"id,pk,autoincrement" json:"id"`
	HorseID       int       `bun:"horse_id,notnull" json:"horseID"`
	Date          string    `bun:"date,notnull,type:date" json:"date"`
	Type          string    `bun:"type,notnull" json:"type"`
	ChukkersDelta int       `bun:"chukkers_delta,notnull,default:0" json:"chukkersDelta"`
	Note          string    `bun:"note,notnull,default:''" json:"note"`
	CreatedAt     time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`

	Horse *Horse `bun:"rel:belongs-to,join:horse_id=horse_id" json:"-"`
}

// ValidLogType reports whether s is a known log entry type.
func ValidLogType(s string) bool {
	switch s {
	case LogWorkload, LogNote, LogHealth:
		return true
	}
	return false
}
