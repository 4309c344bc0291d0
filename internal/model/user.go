package model

import "time"

// User is an authenticated account.  Users own projects, queries, image
// templates and images; company and employee rows are owned transitively
// through their query.  The primary key is a UUID string because the job
// queue contract identifies users by UUID.  Corresponds to the `users`
// table.
type User struct {
	ID           string    `json:"id"`    // users.id (UUID)
	Email        string    `json:"email"` // users.email
	PasswordHash string    `json:"-"`     // users.password_hash
	Role         string    `json:"role"`  // users.role
	IsActive     bool      `json:"-"`     // users.is_active
	CreatedAt    time.Time `json:"-"`     // users.created_at
	UpdatedAt    time.Time `json:"-"`     // users.updated_at
}
