package models

// RawListing is one job posting as read from a page's structured data block.
// It is never modified after extraction.
type RawListing struct {
	URL             string `json:"url"`
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	Reference       string `json:"reference"`
	Company         string `json:"company,omitempty"`
	DatePosted      string `json:"date_posted,omitempty"`
	ValidThrough    string `json:"valid_through,omitempty"`
	Country         string `json:"country,omitempty"`
	Region          string `json:"region,omitempty"`
	Locality        string `json:"locality,omitempty"`
	EmploymentType  string `json:"employment_type,omitempty"`
	Industry        string `json:"industry,omitempty"`
	JobLocationType string `json:"job_location_type,omitempty"`
	Salary          string `json:"salary,omitempty"`
}
