package model

// Employee is a person the worker associated with a company, together with
// the contact data it managed to extract.  RankScore is the worker's
// confidence that the email is genuine and primary; the aggregation layer
// uses it to pick the single best contact per company.  This struct
// corresponds to a row in the `employees` table.
type Employee struct {
	ID               uint64 `json:"employee_id"`       // employees.employee_id
	FullName         string `json:"full_name"`         // employees.full_name
	FirstName        string `json:"first_name"`        // employees.first_name
	LastName         string `json:"last_name"`         // employees.last_name
	Position         string `json:"position"`          // employees.position
	ExtractedCompany string `json:"extracted_company"` // employees.extracted_company
	Email            string `json:"email"`             // employees.email ("" = none found)
	RankScore        int    `json:"rank_score"`        // employees.rank_score (higher = more confident)
	SearchTitle      string `json:"search_title"`      // employees.search_title
	PreSnippet       string `json:"pre_snippet"`       // employees.pre_snippet
	LinkedinURL      string `json:"linkedin_url"`      // employees.linkedin_url
	CompanyID        uint64 `json:"company_id"`        // employees.company_id
}
