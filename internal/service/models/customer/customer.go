package customer

import (
	"errors"
	"time"
)

// ErrConflict signals that a concurrent insert hit the email uniqueness
// constraint. The call is safe to retry: the winning row will be found
// by email on the next attempt.
var ErrConflict = errors.New("customer already exists")

// Customer is the deduplicated relational identity, keyed by email with
// phone as the fallback match.
type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
