package user

import (
	"fmt"
	"time"
)

// User carries the identity fields the billing core needs plus the credit
// balance it owns. Account management lives elsewhere; billing only ever
// mutates credits.
type User struct {
	id        uint
	email     string
	name      string
	status    string
	credits   int
	createdAt time.Time
	updatedAt time.Time
}

func ReconstructUser(id uint, email, name, status string, credits int, createdAt, updatedAt time.Time) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if email == "" {
		return nil, fmt.Errorf("user email is required")
	}
	return &User{
		id:        id,
		email:     email,
		name:      name,
		status:    status,
		credits:   credits,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (u *User) ID() uint             { return u.id }
func (u *User) Email() string        { return u.email }
func (u *User) Name() string         { return u.name }
func (u *User) Status() string       { return u.status }
func (u *User) Credits() int         { return u.credits }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// AddCredits grants credits. Purchases never decrement here.
func (u *User) AddCredits(amount int) {
	if amount < 0 {
		amount = 0
	}
	u.credits += amount
	u.updatedAt = time.Now().UTC()
}

// SetCredits replaces the balance outright. Renewal uses this: a successful
// renewal resets the balance to the plan grant, a failed one to zero.
func (u *User) SetCredits(amount int) {
	if amount < 0 {
		amount = 0
	}
	u.credits = amount
	u.updatedAt = time.Now().UTC()
}
