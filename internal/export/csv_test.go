package export_test

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadforge/b2b-api/internal/export"
	"github.com/leadforge/b2b-api/internal/leads"
	"github.com/leadforge/b2b-api/internal/model"
)

func TestWriteCSVHeaderAndRows(t *testing.T) {
	views := []leads.CompanyView{
		{
			Company: model.Company{
				Name: "Acme", Website: "acme.test", ContactEmail: "info@acme.test",
				Facebook: "fb", Twitter: "tw", Youtube: "yt", Linkedin: "li",
				Instagram: "ig", Phone: "123",
			},
			Email: &leads.ContactEmail{FullName: "Jane Roe", Position: "CEO", Email: "jane@acme.test"},
		},
		{
			Company: model.Company{Name: "NoMail Ltd"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, views))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{
		"Company", "Website", "Employee name", "Employee position",
		"Employee email", "Contact Email", "Facebook", "Twitter",
		"Youtube", "LinkedIn", "Instagram", "Phone",
	}, records[0])

	assert.Equal(t, []string{
		"Acme", "acme.test", "Jane Roe", "CEO", "jane@acme.test",
		"info@acme.test", "fb", "tw", "yt", "li", "ig", "123",
	}, records[1])

	// No aggregated email: the three employee columns are empty strings.
	assert.Equal(t, "NoMail Ltd", records[2][0])
	assert.Equal(t, "", records[2][2])
	assert.Equal(t, "", records[2][3])
	assert.Equal(t, "", records[2][4])
}

func TestWriteCSVNoCompanies(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1) // header only
}
