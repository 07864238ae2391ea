package models

import (
	"time"

	"github.com/uptrace/bun"
)

// User is an account identified by email with a bcrypt-hashed password.
// Whether a user is the administrator is derived from configuration at
// sign-in, not stored here.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID        int       `bun:"id,pk,autoincrement" json:"id"`
	Email     string    `bun:"email,notnull,unique" json:"email"`
	Password  string    `bun:"password,notnull" json:"-"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
}
