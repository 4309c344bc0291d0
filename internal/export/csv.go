// Package export renders ownership-checked query data into the two export
// formats: a CSV stream and a shared spreadsheet.  Both formats are built
// from the same aggregated company views so the "best email per company"
// rule is identical everywhere.
package export

import (
	"encoding/csv"
	"io"

	"github.com/leadforge/b2b-api/internal/leads"
)

// csvHeader is the fixed column layout of the CSV export.
var csvHeader = []string{
	"Company", "Website", "Employee name", "Employee position",
	"Employee email", "Contact Email", "Facebook", "Twitter",
	"Youtube", "LinkedIn", "Instagram", "Phone",
}

// WriteCSV emits one row per company.  Companies without an aggregated
// email render empty strings in the three employee columns — empty, not
// "null", so spreadsheet imports stay clean.
func WriteCSV(w io.Writer, companies []leads.CompanyView) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, c := range companies {
		empName, empPosition, empEmail := "", "", ""
		if c.Email != nil {
			empName = c.Email.FullName
			empPosition = c.Email.Position
			empEmail = c.Email.Email
		}
		row := []string{
			c.Name, c.Website, empName, empPosition, empEmail,
			c.ContactEmail, c.Facebook, c.Twitter, c.Youtube,
			c.Linkedin, c.Instagram, c.Phone,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
