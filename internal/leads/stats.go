package leads

import (
	"strconv"
	"time"
)

// SizeSample is one company's contribution to the size histogram: its
// employee count and whether at least one employee has a non-empty email.
type SizeSample struct {
	Employees int
	HasEmail  bool
}

// Histogram is the company-size-bucketed result: for every employee count
// from 1 to the maximum observed, how many companies have exactly that many
// employees and how many of those have at least one email.  Buckets with no
// companies still appear so chart axes stay dense.
type Histogram struct {
	Labels    []string
	Companies []int
	Emails    []int
}

// SizeHistogram buckets the samples into a dense 1..max range.  Companies
// with zero employees never reach this function (they have no sample); an
// empty input yields empty slices, not nil counts against a phantom range.
func SizeHistogram(samples []SizeSample) Histogram {
	h := Histogram{Labels: []string{}, Companies: []int{}, Emails: []int{}}
	max := 0
	for _, s := range samples {
		if s.Employees > max {
			max = s.Employees
		}
	}
	for size := 1; size <= max; size++ {
		companies := 0
		emails := 0
		for _, s := range samples {
			if s.Employees == size {
				companies++
				if s.HasEmail {
					emails++
				}
			}
		}
		h.Labels = append(h.Labels, strconv.Itoa(size))
		h.Companies = append(h.Companies, companies)
		h.Emails = append(h.Emails, emails)
	}
	return h
}

// RunMinutes returns the whole minutes a query ran for: floor of elapsed
// seconds over 60.  While the query is still running (finished is nil) or
// the timestamps are inconsistent it returns 0 instead of failing.
func RunMinutes(started time.Time, finished *time.Time) int {
	if finished == nil {
		return 0
	}
	secs := int(finished.Sub(started).Seconds())
	if secs <= 0 {
		return 0
	}
	return secs / 60
}

// EmailRate returns emails found per company as a percentage.  Zero
// companies (or zero emails) yields 0 rather than a division error.
func EmailRate(emails, companies int) float64 {
	if companies == 0 || emails == 0 {
		return 0
	}
	return float64(emails) / float64(companies) * 100
}
