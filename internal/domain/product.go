package domain

// ProductRecord represents a single shopping result in the shape the display
// layer consumes. Fields are vendor-formatted text; price is never parsed to a
// number. Records are constructed once by the lookup service and passed by value.
type ProductRecord struct {
	Name     string `json:"name"`
	Price    string `json:"price"`
	Vendor   string `json:"vendor"`
	Link     string `json:"link"`
	Image    string `json:"image,omitempty"`
	Shipping string `json:"shipping,omitempty"`
	Rating   string `json:"rating"` // "N/A" when the search engine reports none
}

// LookupResult is the outcome of a product lookup, including where the
// records came from.
type LookupResult struct {
	Records []ProductRecord `json:"records"`
	Source  string          `json:"source"` // "search" or "cache"
}
