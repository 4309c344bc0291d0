package export

import (
	"context"
	"fmt"

	"github.com/leadforge/b2b-api/internal/leads"
	"github.com/leadforge/b2b-api/internal/model"
)

// SheetExport is the full data handed to the spreadsheet service: a title
// and the row grid of each of the four worksheets.  Cells are `any` because
// the sheet mixes strings, numbers and empty cells.
type SheetExport struct {
	Title     string
	Summary   [][]any
	Companies [][]any
	Employees [][]any
	Stats     [][]any
}

// SheetResult identifies the created spreadsheet.
type SheetResult struct {
	URL   string `json:"sheet_url"`
	Title string `json:"sheet_title"`
}

// SheetService creates a spreadsheet from a SheetExport and shares it:
// with shareEmail as an editor when given, otherwise readable by anyone
// with the link.  The only implementation talks to Google Sheets; tests
// exercise the data shaping without it.
type SheetService interface {
	Export(ctx context.Context, exp SheetExport, shareEmail string) (SheetResult, error)
}

// SheetTitle derives the spreadsheet title from the query type.
func SheetTitle(q *model.Query) string {
	switch q.Type {
	case "standard":
		return fmt.Sprintf("[B2B] %s in %s", q.Sector, q.Location)
	case "from_csv":
		return fmt.Sprintf("[B2B] CSV import #%d", q.ID)
	default:
		return fmt.Sprintf("[B2B] Unknown query type #%d", q.ID)
	}
}

// sheetTimeLayout matches what the workers and existing exports use.
const sheetTimeLayout = "02/01/2006, 15:04:05"

// BuildSheetExport shapes the four worksheets from a query's companies
// (employees loaded) and their optional maps rows.
//
// Companies: one row per company with the aggregated best email, employee
// count, contact/social fields and maps rating/reviews/position when the
// company has a maps row.
// Employees: every employee of every company.
// Summary: the short contact list — employees whose email looks real
// (longer than two characters), with name, position and company.
// Stats: launch/finish timestamps, run minutes, email counts and rate.
func BuildSheetExport(q *model.Query, companies []*model.Company, maps map[uint64]*model.CompanyMapsData) SheetExport {
	exp := SheetExport{Title: SheetTitle(q)}

	exp.Companies = [][]any{{
		"Company Name", "Website", "Employee Email", "Employee Name",
		"Employees found", "Phone", "Full Address", "Linkedin", "Twitter",
		"Facebook", "Instagram", "Youtube", "Maps Rating", "Maps Reviews",
		"Maps Lat Long",
	}}
	views := leads.PopulateEmails(companies)
	for i, c := range companies {
		view := views[i]
		email, fullName := any(nil), any(nil)
		if view.Email != nil {
			email, fullName = view.Email.Email, view.Email.FullName
		}
		row := []any{
			c.Name, c.Website, email, fullName, len(c.Employees),
			c.Phone, c.FullAddress, c.Linkedin, c.Twitter, c.Facebook,
			c.Instagram, c.Youtube,
		}
		if m := maps[c.ID]; m != nil {
			row = append(row, m.Rating, m.Reviews,
				fmt.Sprintf("%v,%v", m.Lat, m.Lng))
		}
		exp.Companies = append(exp.Companies, row)
	}

	exp.Employees = [][]any{{
		"Company Name", "Full Name", "Position", "Email", "Rank Score",
		"Linkedin URL",
	}}
	nameByCompany := make(map[uint64]string, len(companies))
	for _, c := range companies {
		nameByCompany[c.ID] = c.Name
	}
	totalEmployees := 0
	emailsFound := 0
	withEmails := []model.Employee{}
	for _, c := range companies {
		for _, e := range c.Employees {
			totalEmployees++
			exp.Employees = append(exp.Employees, []any{
				nameByCompany[e.CompanyID], e.FullName, e.Position,
				e.Email, e.RankScore, e.LinkedinURL,
			})
			if len(e.Email) > 2 {
				emailsFound++
				withEmails = append(withEmails, e)
			}
		}
	}

	exp.Summary = [][]any{{"Email", "First Name", "Last Name", "Position", "Company"}}
	for _, e := range withEmails {
		exp.Summary = append(exp.Summary, []any{
			e.Email, e.FirstName, e.LastName, e.Position,
			nameByCompany[e.CompanyID],
		})
	}

	finished := ""
	if run := q.Run(); run.Finished {
		finished = run.FinishedAt.Format(sheetTimeLayout)
	}
	minutes := leads.RunMinutes(q.StartedAt, q.FinishedAt)
	rate := leads.EmailRate(emailsFound, len(companies))
	exp.Stats = [][]any{
		{nil, "Query Stats:", nil},
		{"Launched", "Finished", "Time Taken"},
		{q.StartedAt.Format(sheetTimeLayout), finished, fmt.Sprintf("%d minutes", minutes)},
		{"Emails", "Email Rate", "Employees"},
		{fmt.Sprintf("%d", emailsFound), fmt.Sprintf("%.1f%%", rate), fmt.Sprintf("%d", totalEmployees)},
		{nil, "Companies", nil},
		{nil, fmt.Sprintf("%d", len(companies)), nil},
	}

	return exp
}
