package models

import "time"

// Role is a user's global role within the practice.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleLawyer    Role = "lawyer"
	RoleParalegal Role = "paralegal"
	RoleStaff     Role = "staff"
)

// Privileged reports whether the role may delete resources on any case
// regardless of ownership or membership.
func (r Role) Privileged() bool {
	return r == RoleAdmin || r == RoleLawyer
}

// User is an authenticated member of the practice.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Actor is the denormalized identity snapshot embedded in every audit record.
// It captures who the user was at write time (including their role then) and
// is never re-resolved against the users table.
type Actor struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

// ActorFor builds the audit snapshot for a user.
func ActorFor(u *User) Actor {
	return Actor{UserID: u.ID, Email: u.Email, Name: u.Name, Role: string(u.Role)}
}
