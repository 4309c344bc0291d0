package model

// Company is a business discovered by a query's scraping worker.  Companies
// are only ever written by workers; the API reads and aggregates them.
// Ownership is transitive: a company belongs to its query's user.  This
// struct corresponds to a row in the `companies` table.
//
// Fields:
//  ID           – primary key identifier.
//  Name         – company name.
//  Website      – company website URL.
//  Phone        – phone number.
//  FullAddress  – full formatted address plus its parts (Borough..CountryCode).
//  ContactEmail – generic contact address scraped from the site.
//  OtherEmails  – comma-separated additional addresses.
//  Linkedin..Youtube – social profile URLs.
//  QueryID      – query that discovered this company.
type Company struct {
	ID           uint64 `json:"company_id"`    // companies.company_id
	Name         string `json:"name"`          // companies.name
	Website      string `json:"website"`       // companies.website
	Phone        string `json:"phone"`         // companies.phone
	FullAddress  string `json:"full_address"`  // companies.full_address
	Borough      string `json:"borough"`       // companies.borough
	Line1        string `json:"line1"`         // companies.line1
	City         string `json:"city"`          // companies.city
	Zip          string `json:"zip"`           // companies.zip
	Region       string `json:"region"`        // companies.region
	CountryCode  string `json:"country_code"`  // companies.country_code
	ContactEmail string `json:"contact_email"` // companies.contact_email
	OtherEmails  string `json:"other_emails"`  // companies.other_emails
	Linkedin     string `json:"linkedin"`      // companies.linkedin
	Twitter      string `json:"twitter"`       // companies.twitter
	Facebook     string `json:"facebook"`      // companies.facebook
	Instagram    string `json:"instagram"`     // companies.instagram
	Youtube      string `json:"youtube"`       // companies.youtube
	QueryID      uint64 `json:"query_id"`      // companies.query_id

	// Employees is loaded on demand by the repository; it is not a column.
	Employees []Employee `json:"-"`
}
