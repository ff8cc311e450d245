package models

import "time"

// Subscriber gets an email when a station's program roster changes.
type Subscriber struct {
	ID        int       `db:"id"`
	Email     string    `db:"email"`
	Notify    bool      `db:"notify"`
	CreatedAt time.Time `db:"created_at"`
}
