package model

// CompanyMapsData is the optional maps-style enrichment for a company: at
// most one row per company, absent when the worker found no maps listing.
// This struct corresponds to a row in the `companies_maps_data` table.
type CompanyMapsData struct {
	ID             uint64  `json:"maps_data_id"`    // companies_maps_data.maps_data_id
	SearchPosition int     `json:"search_position"` // companies_maps_data.search_position
	Lat            float64 `json:"lat"`             // companies_maps_data.lat
	Lng            float64 `json:"long"`            // companies_maps_data.lng
	Rating         int     `json:"rating"`          // companies_maps_data.rating
	Reviews        int     `json:"reviews"`         // companies_maps_data.reviews
	Type           string  `json:"type"`            // companies_maps_data.type
	Thumbnail      string  `json:"thumbnail"`       // companies_maps_data.thumbnail
	CompanyID      uint64  `json:"company_id"`      // companies_maps_data.company_id
}
