package model

import "time"

// RefereeID uniquely identifies a referee across the system
type RefereeID string

// Referee runs shootouts and records their kicks
type Referee struct {
	ID          RefereeID
	DisplayName string
	CreatedAt   time.Time
}

// RegisteredReferee holds authentication data for a Referee
// Stored separately so the password hash never travels with the session
type RegisteredReferee struct {
	RefereeID    RefereeID
	Username     string // login username (immutable)
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
