package export_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadforge/b2b-api/internal/export"
	"github.com/leadforge/b2b-api/internal/model"
)

func TestSheetTitle(t *testing.T) {
	assert.Equal(t, "[B2B] plumbers in london",
		export.SheetTitle(&model.Query{Type: "standard", Sector: "plumbers", Location: "london"}))
	assert.Equal(t, "[B2B] CSV import #7",
		export.SheetTitle(&model.Query{ID: 7, Type: "from_csv"}))
	assert.Equal(t, "[B2B] Unknown query type #9",
		export.SheetTitle(&model.Query{ID: 9, Type: "weird"}))
}

func TestBuildSheetExport(t *testing.T) {
	started := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	finished := started.Add(125 * time.Second)
	q := &model.Query{
		ID: 3, Type: "standard", Sector: "plumbers", Location: "leeds",
		StartedAt: started, FinishedAt: &finished,
	}

	companies := []*model.Company{
		{
			ID: 1, Name: "Acme", Website: "acme.test", QueryID: 3,
			Employees: []model.Employee{
				{FullName: "Jane Roe", FirstName: "Jane", LastName: "Roe",
					Position: "CEO", Email: "jane@acme.test", RankScore: 5, CompanyID: 1},
				// A 2-char "email" counts for the aggregation but not for
				// the summary worksheet or the emails-found stat.
				{FullName: "Bob Short", Position: "Dev", Email: "ab", RankScore: 9, CompanyID: 1},
			},
		},
		{ID: 2, Name: "NoMail Ltd", QueryID: 3},
	}
	maps := map[uint64]*model.CompanyMapsData{
		1: {Rating: 4, Reviews: 12, Lat: 53.8, Lng: -1.5, CompanyID: 1},
	}

	exp := export.BuildSheetExport(q, companies, maps)
	assert.Equal(t, "[B2B] plumbers in leeds", exp.Title)

	// Companies: header plus one row per company; the maps row grows by the
	// three maps columns.
	require.Len(t, exp.Companies, 3)
	acmeRow := exp.Companies[1]
	assert.Equal(t, "Acme", acmeRow[0])
	assert.Equal(t, 2, acmeRow[4]) // employees found
	require.Len(t, acmeRow, 15)
	assert.Equal(t, "53.8,-1.5", acmeRow[14])
	require.Len(t, exp.Companies[2], 12) // no maps columns for NoMail Ltd

	// Employees: header plus both employees.
	require.Len(t, exp.Employees, 3)
	assert.Equal(t, "Acme", exp.Employees[1][0])

	// Summary: only emails longer than two characters qualify.
	require.Len(t, exp.Summary, 2)
	assert.Equal(t, "jane@acme.test", exp.Summary[1][0])
	assert.Equal(t, "Jane", exp.Summary[1][1])

	// Stats: launched/finished/time taken, then counts and rate.
	require.Len(t, exp.Stats, 7)
	assert.Equal(t, "01/03/2024, 12:00:00", exp.Stats[2][0])
	assert.Equal(t, "01/03/2024, 12:02:05", exp.Stats[2][1])
	assert.Equal(t, "2 minutes", exp.Stats[2][2])
	assert.Equal(t, "1", exp.Stats[4][0])     // emails found
	assert.Equal(t, "50.0%", exp.Stats[4][1]) // 1 email / 2 companies
	assert.Equal(t, "2", exp.Stats[4][2])     // employees
	assert.Equal(t, "2", exp.Stats[6][1])     // companies
}

func TestBuildSheetExportRunningQuery(t *testing.T) {
	q := &model.Query{ID: 4, Type: "standard", Sector: "bakers", Location: "york",
		StartedAt: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}

	exp := export.BuildSheetExport(q, nil, nil)
	// Finished cell is empty and the duration reads 0 while running.
	assert.Equal(t, "", exp.Stats[2][1])
	assert.Equal(t, "0 minutes", exp.Stats[2][2])
	assert.Equal(t, "0.0%", exp.Stats[4][1])
}
