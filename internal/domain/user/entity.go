package user

import "time"

// User is one account record. ID and both timestamps are assigned by the
// database; CreatedAt never changes after insert, UpdatedAt is refreshed on
// every successful update.
type User struct {
	ID        int64
	Name      string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
