// Package leads contains the aggregation rules applied on top of the raw
// scraped data: picking the best contact email per company, bucketing
// companies by size, and the derived rate/duration math shared by the
// stats and export features.
package leads

import "github.com/leadforge/b2b-api/internal/model"

// ContactEmail is the single best contact the aggregation selected for a
// company: the employee whose non-empty email carries the highest
// rank_score.
type ContactEmail struct {
	FullName string `json:"full_name"`
	Position string `json:"position"`
	Email    string `json:"email"`
}

// CompanyView is a company response shape with the aggregated contact
// attached.  Email is nil — and absent from the JSON — when no employee of
// the company has an email; downstream consumers rely on presence/absence,
// not on a null value.
type CompanyView struct {
	model.Company
	Email *ContactEmail `json:"email,omitempty"`
}

// PopulateEmails selects, for each company, the employee with the highest
// rank_score among those with a non-empty email and attaches it to the
// returned view.  The score accumulator starts at zero and only a strictly
// greater score replaces the current pick, so ties keep the first-seen
// employee and a zero-scored email is never selected.  The accumulator
// resets per company.  Input entities are never mutated; the views carry
// copies.
func PopulateEmails(companies []*model.Company) []CompanyView {
	out := make([]CompanyView, 0, len(companies))
	for _, company := range companies {
		view := CompanyView{Company: *company}
		lastScore := 0
		for i := range company.Employees {
			e := &company.Employees[i]
			if e.Email != "" && e.RankScore > lastScore {
				view.Email = &ContactEmail{
					FullName: e.FullName,
					Position: e.Position,
					Email:    e.Email,
				}
				lastScore = e.RankScore
			}
		}
		out = append(out, view)
	}
	return out
}
