package export

import (
	"context"
	"fmt"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/leadforge/b2b-api/internal/logs"
)

// GoogleSheets implements SheetService against the Google Sheets and Drive
// APIs using a service-account credential file.  The spreadsheet is created
// under the service account and shared outward, mirroring how the export
// has always worked.
type GoogleSheets struct {
	sheets *sheets.Service
	drive  *drive.Service
}

// NewGoogleSheets builds the API clients from the service-account JSON at
// credsFile.
func NewGoogleSheets(ctx context.Context, credsFile string) (*GoogleSheets, error) {
	ss, err := sheets.NewService(ctx, option.WithCredentialsFile(credsFile),
		option.WithScopes(sheets.SpreadsheetsScope, drive.DriveScope))
	if err != nil {
		return nil, err
	}
	ds, err := drive.NewService(ctx, option.WithCredentialsFile(credsFile),
		option.WithScopes(drive.DriveScope))
	if err != nil {
		return nil, err
	}
	return &GoogleSheets{sheets: ss, drive: ds}, nil
}

// worksheet order inside the created spreadsheet.
var worksheetTitles = []string{"Summary", "Companies", "Employees", "Stats"}

// Export creates the spreadsheet with the four worksheets, writes all rows
// in one batch, applies sharing and returns the document URL and title.
func (g *GoogleSheets) Export(ctx context.Context, exp SheetExport, shareEmail string) (SheetResult, error) {
	doc := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{Title: exp.Title},
	}
	for _, title := range worksheetTitles {
		doc.Sheets = append(doc.Sheets, &sheets.Sheet{
			Properties: &sheets.SheetProperties{Title: title},
		})
	}
	created, err := g.sheets.Spreadsheets.Create(doc).Context(ctx).Do()
	if err != nil {
		logs.Logger.WithError(err).Error("sheets: create spreadsheet failed")
		return SheetResult{}, err
	}

	data := []*sheets.ValueRange{
		{Range: "Summary!A1", Values: toValues(exp.Summary)},
		{Range: "Companies!A1", Values: toValues(exp.Companies)},
		{Range: "Employees!A1", Values: toValues(exp.Employees)},
		{Range: "Stats!A1", Values: toValues(exp.Stats)},
	}
	batch := &sheets.BatchUpdateValuesRequest{
		ValueInputOption: "RAW",
		Data:             data,
	}
	if _, err := g.sheets.Spreadsheets.Values.
		BatchUpdate(created.SpreadsheetId, batch).Context(ctx).Do(); err != nil {
		logs.Logger.WithError(err).Error("sheets: batch update failed")
		return SheetResult{}, err
	}

	// Share with the recipient as an editor when given, otherwise open the
	// document to anyone with the link as a reader.
	perm := &drive.Permission{Type: "anyone", Role: "reader"}
	if shareEmail != "" {
		perm = &drive.Permission{Type: "user", Role: "writer", EmailAddress: shareEmail}
	}
	if _, err := g.drive.Permissions.Create(created.SpreadsheetId, perm).
		Context(ctx).Do(); err != nil {
		logs.Logger.WithError(err).Error("sheets: share failed")
		return SheetResult{}, err
	}

	return SheetResult{
		URL:   fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s", created.SpreadsheetId),
		Title: exp.Title,
	}, nil
}

func toValues(rows [][]any) [][]interface{} {
	out := make([][]interface{}, len(rows))
	for i, r := range rows {
		out[i] = append([]interface{}{}, r...)
	}
	return out
}
