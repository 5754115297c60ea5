package entity

import "time"

// OtpRecord is one outstanding verification code. At most one live record
// exists per user; replacement happens as delete-then-insert inside a single
// transaction keyed on the user row.
type OtpRecord struct {
	ID          int64
	UserID      int64
	PhoneNumber string
	Code        string // exactly 6 digits, stored and compared as text
	CreatedAt   time.Time
	ExpiresAt   time.Time
}
