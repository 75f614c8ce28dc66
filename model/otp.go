package model

import "time"

// OTPEntity is one live verification code. The table is keyed by phone, so
// resending a code replaces the previous one (last-write-wins).
type OTPEntity struct {
	Phone     string    `db:"phone"`
	Code      string    `db:"code"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}
