package models

import (
	"time"
)

// User represents a player with a balance inside one scope
type User struct {
	Platform  Platform  `db:"platform"`
	ScopeID   int64     `db:"scope_id"`
	UserID    int64     `db:"user_id"`
	Username  string    `db:"username"`
	Balance   int64     `db:"balance"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Scope returns the scope the user belongs to
func (u *User) Scope() Scope {
	return Scope{Platform: u.Platform, ID: u.ScopeID}
}
