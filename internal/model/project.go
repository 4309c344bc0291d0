package model

import "time"

// Project is a top-level container a user creates to group lead-generation
// queries.  Projects are soft-deleted: IsActive=false hides a project from
// every listing and lookup but the row is never removed.  This struct
// corresponds to a row in the `projects` table.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – human-friendly project name.
//  IsActive  – soft-delete flag; false means "deleted".
//  UserID    – UUID of the owning user.
//  CreatedAt – timestamp when the project was created.
//  UpdatedAt – timestamp of last update.
type Project struct {
	ID        uint64    `json:"project_id"` // projects.project_id
	Name      string    `json:"name"`       // projects.name
	IsActive  bool      `json:"is_active"`  // projects.is_active
	UserID    string    `json:"-"`          // projects.user_id (UUID, not exposed)
	CreatedAt time.Time `json:"created_at"` // projects.created_at
	UpdatedAt time.Time `json:"updated_at"` // projects.updated_at
}
