// Package mapper turns extracted listings into partner payloads: fixed
// vocabularies first, then the partner's lookup tables.
package mapper

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/srdobolo/API-Request-Sapo-Emprego/internal/htmltext"
	"github.com/srdobolo/API-Request-Sapo-Emprego/internal/lookup"
	"github.com/srdobolo/API-Request-Sapo-Emprego/internal/models"
)

const (
	// DefaultID is sent for district and category when they do not resolve.
	DefaultID = 0

	defaultTitle = "Undisclosed Job Title"
	dateLayout   = "2006-01-02"
)

// Options carries the run-level values written into every payload.
type Options struct {
	ApplyEmail string
	UTMSource  string
	Now        func() time.Time
}

type Mapper struct {
	tables lookup.Tables
	opts   Options
}

func New(tables lookup.Tables, opts Options) *Mapper {
	if tables == nil {
		tables = lookup.Tables{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Mapper{tables: tables, opts: opts}
}

// Offer maps listing to a SAPO Emprego offer. Required fields that cannot be
// resolved are left empty for Validate to report.
func (m *Mapper) Offer(listing models.RawListing) models.Offer {
	now := m.opts.Now()
	offer := models.Offer{
		Title:               firstNonEmpty(listing.Title, defaultTitle),
		OfferDescription:    htmltext.Flatten(listing.Description),
		Description:         m.applyText(listing),
		Reference:           strings.TrimSpace(listing.Reference),
		CountryID:           m.countryID(listing.Country),
		DistrictIDs:         []int{m.districtID(listing)},
		Location:            listing.Locality,
		EmploymentType:      listing.EmploymentType,
		WorkModel:           WorkModel(listing.JobLocationType),
		CategoryIDs:         []int{m.categoryID(listing.Industry)},
		AnonymousCompany:    false,
		ScheduleTypeID:      m.resolve(lookup.ScheduleType, NormalizeSchedule(listing.EmploymentType)),
		AnnualSalaryRangeID: m.resolve(lookup.SalaryRange, SalaryBand(listing.Salary)),
		StartDate:           formatDate(listing.DatePosted, now),
		EndDate:             formatDate(listing.ValidThrough, now.AddDate(1, 0, 0)),
	}
	if email := strings.TrimSpace(m.opts.ApplyEmail); email != "" {
		offer.EmailsToNotify = []string{email}
	}
	return offer
}

// FeedJob maps listing to the secondary partner feed payload. The feed takes
// vocabulary labels rather than lookup ids.
func (m *Mapper) FeedJob(listing models.RawListing) models.FeedJob {
	now := m.opts.Now()
	return models.FeedJob{
		Reference:      strings.TrimSpace(listing.Reference),
		Title:          firstNonEmpty(listing.Title, defaultTitle),
		Description:    htmltext.PlainText(listing.Description),
		ApplyURL:       m.applyURL(listing),
		Company:        listing.Company,
		Country:        CountryName(listing.Country),
		Region:         NormalizeRegion(listing.Region),
		City:           listing.Locality,
		WorkModel:      WorkModel(listing.JobLocationType),
		EmploymentType: NormalizeSchedule(listing.EmploymentType),
		Category:       NormalizeIndustry(listing.Industry),
		SalaryBand:     SalaryBand(listing.Salary),
		DatePosted:     formatDate(listing.DatePosted, now),
		ValidThrough:   formatDate(listing.ValidThrough, now.AddDate(1, 0, 0)),
	}
}

func (m *Mapper) countryID(code string) any {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil
	}
	if id, ok := m.tables.Resolve(lookup.Country, CountryName(code)); ok {
		return id
	}
	if id, ok := m.tables.Resolve(lookup.Country, code); ok {
		return id
	}
	return code
}

func (m *Mapper) districtID(listing models.RawListing) int {
	for _, candidate := range []string{listing.Region, listing.Locality} {
		region := NormalizeRegion(candidate)
		if region == "" {
			continue
		}
		if id, ok := m.tables.Resolve(lookup.District, region); ok {
			return id
		}
	}
	return DefaultID
}

func (m *Mapper) categoryID(industry string) int {
	if id, ok := m.tables.Resolve(lookup.Category, NormalizeIndustry(industry)); ok {
		return id
	}
	return DefaultID
}

func (m *Mapper) resolve(domain, key string) *int {
	if key == "" {
		return nil
	}
	id, ok := m.tables.Resolve(domain, key)
	if !ok {
		return nil
	}
	return &id
}

func (m *Mapper) applyURL(listing models.RawListing) string {
	target, err := url.Parse(listing.URL)
	if err != nil || listing.URL == "" {
		return listing.URL
	}
	query := target.Query()
	if ref := strings.TrimSpace(listing.Reference); ref != "" {
		query.Set("id", ref)
	}
	if m.opts.UTMSource != "" {
		query.Set("utm_source", m.opts.UTMSource)
	}
	target.RawQuery = query.Encode()
	return target.String()
}

func (m *Mapper) applyText(listing models.RawListing) string {
	text := fmt.Sprintf(`<a href="%s" target="_blank">Clique aqui para se candidatar!</a>`, m.applyURL(listing))
	if email := strings.TrimSpace(m.opts.ApplyEmail); email != "" {
		text += htmltext.LineBreak + "ou por email para " + email
	}
	return text
}

var dateLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	dateLayout,
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05",
}

func formatDate(value string, fallback time.Time) string {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts.Format(dateLayout)
		}
	}
	return fallback.Format(dateLayout)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}
