package leads_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/leadforge/b2b-api/internal/leads"
)

func TestSizeHistogramDenseBuckets(t *testing.T) {
	h := leads.SizeHistogram([]leads.SizeSample{
		{Employees: 1, HasEmail: true},
		{Employees: 1, HasEmail: false},
		{Employees: 3, HasEmail: true},
	})

	// Bucket 2 has no companies but still appears so chart axes stay dense.
	assert.Equal(t, []string{"1", "2", "3"}, h.Labels)
	assert.Equal(t, []int{2, 0, 1}, h.Companies)
	assert.Equal(t, []int{1, 0, 1}, h.Emails)
}

func TestSizeHistogramEmptyInput(t *testing.T) {
	h := leads.SizeHistogram(nil)
	assert.Empty(t, h.Labels)
	assert.Empty(t, h.Companies)
	assert.Empty(t, h.Emails)
	assert.NotNil(t, h.Labels)
}

func TestRunMinutes(t *testing.T) {
	started := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	finished := started.Add(7*time.Minute + 59*time.Second)
	assert.Equal(t, 7, leads.RunMinutes(started, &finished))

	short := started.Add(59 * time.Second)
	assert.Equal(t, 0, leads.RunMinutes(started, &short))

	// Still running.
	assert.Equal(t, 0, leads.RunMinutes(started, nil))

	// Inconsistent timestamps degrade to 0 instead of going negative.
	before := started.Add(-time.Hour)
	assert.Equal(t, 0, leads.RunMinutes(started, &before))
}

func TestEmailRate(t *testing.T) {
	assert.InDelta(t, 50.0, leads.EmailRate(5, 10), 0.001)
	assert.InDelta(t, 0.0, leads.EmailRate(0, 10), 0.001)
	assert.InDelta(t, 0.0, leads.EmailRate(3, 0), 0.001)
	assert.InDelta(t, 150.0, leads.EmailRate(3, 2), 0.001)
}
