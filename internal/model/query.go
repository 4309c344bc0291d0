package model

import "time"

// Query represents one asynchronous lead-generation job scoped to a sector
// and location.  The API never inserts query rows itself: it publishes a job
// message and the scraping worker creates the row when it picks the job up.
// A query is "in progress" until the worker sets finished_at.  IsActive is an
// orthogonal soft-delete flag, not a lifecycle state; a finished query can
// still be active or deleted.
//
// Fields:
//  ID            – primary key identifier.
//  Sector        – business sector searched for (e.g. "plumbers").
//  Location      – location searched in.
//  Type          – query kind ("standard", "from_csv", ...).
//  MapsResults   – number of maps results the worker collected.
//  SearchResults – number of search results the worker collected.
//  UserID        – UUID of the owning user.
//  ProjectID     – project the query belongs to.
//  IsActive      – soft-delete flag.
//  StartedAt     – when the worker started processing.
//  FinishedAt    – when the worker finished; nil while running.
type Query struct {
	ID            uint64     `json:"query_id"`       // queries.query_id
	Sector        string     `json:"sector"`         // queries.sector
	Location      string     `json:"location"`       // queries.location
	Type          string     `json:"type"`           // queries.type
	MapsResults   *int64     `json:"maps_results"`   // queries.maps_results
	SearchResults *int64     `json:"search_results"` // queries.search_results
	UserID        string     `json:"-"`              // queries.user_id (UUID)
	ProjectID     uint64     `json:"project_id"`     // queries.project_id
	IsActive      bool       `json:"is_active"`      // queries.is_active
	StartedAt     time.Time  `json:"started_at"`     // queries.started_at
	FinishedAt    *time.Time `json:"finished_at"`    // queries.finished_at (NULL = running)
}

// RunState is the explicit form of the implicit nullable-timestamp state
// machine: Finished=false means the worker is still processing.
type RunState struct {
	Finished   bool
	FinishedAt time.Time
}

// Run reports the query's lifecycle state derived from finished_at.
func (q *Query) Run() RunState {
	if q.FinishedAt != nil {
		return RunState{Finished: true, FinishedAt: *q.FinishedAt}
	}
	return RunState{}
}
