package models

// Offer is the payload accepted by the SAPO Emprego offers.add endpoint.
//
// CountryID holds the partner's numeric id when the country resolved, or the
// raw ISO code otherwise. ScheduleTypeID and AnnualSalaryRangeID stay nil
// when they could not be resolved; such offers never reach the network.
type Offer struct {
	Title               string   `json:"title" validate:"required"`
	OfferDescription    string   `json:"offer_description"`
	Description         string   `json:"description"`
	Reference           string   `json:"reference" validate:"required"`
	CountryID           any      `json:"country_id" validate:"required"`
	DistrictIDs         []int    `json:"district_ids"`
	Location            string   `json:"location,omitempty"`
	EmploymentType      string   `json:"employment_type,omitempty"`
	WorkModel           string   `json:"work_model"`
	CategoryIDs         []int    `json:"category_ids"`
	AnonymousCompany    bool     `json:"anonymous_company"`
	ScheduleTypeID      *int     `json:"schedule_type_id" validate:"required"`
	AnnualSalaryRangeID *int     `json:"annual_salary_range_id" validate:"required"`
	EmailsToNotify      []string `json:"emails_to_notify,omitempty"`
	StartDate           string   `json:"start_date"`
	EndDate             string   `json:"end_date"`
}

// FeedJob is the payload of the secondary partner feed.
type FeedJob struct {
	Reference      string `json:"reference" validate:"required"`
	Title          string `json:"title" validate:"required"`
	Description    string `json:"description" validate:"required"`
	ApplyURL       string `json:"apply_url" validate:"required,url"`
	Company        string `json:"company,omitempty"`
	Country        string `json:"country,omitempty"`
	Region         string `json:"region,omitempty"`
	City           string `json:"city,omitempty"`
	WorkModel      string `json:"work_model"`
	EmploymentType string `json:"employment_type,omitempty"`
	Category       string `json:"category,omitempty"`
	SalaryBand     string `json:"salary_band"`
	DatePosted     string `json:"date_posted"`
	ValidThrough   string `json:"valid_through"`
}
