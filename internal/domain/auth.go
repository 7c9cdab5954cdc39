package domain

import "time"

// Token represents issued access token metadata.
type Token struct {
	ID        string
	StaffID   int64
	Role      StaffRole
	ExpiresAt time.Time
	IssuedAt  time.Time
}
