package lookup

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// Reference domains, named after the payload field each one resolves.
const (
	AvailableSlots         = "available_slots_id"
	Category               = "category_ids"
	Country                = "country_id"
	District               = "district_ids"
	Municipality           = "municipality_id"
	ContractType           = "contract_type_id"
	ScheduleType           = "schedule_type_id"
	MinQualifications      = "min_qualifications_id"
	ProfessionalExperience = "professional_experience_id"
	SalaryRange            = "annual_salary_range_id"
)

// Domain pairs a reference domain with the endpoint that lists it.
type Domain struct {
	Name string
	Path string
}

var Domains = []Domain{
	{AvailableSlots, "/availablePositions.list"},
	{Category, "/jobCategories.list"},
	{Country, "/countries.list"},
	{District, "/districts.list"},
	{Municipality, "/municipalities.list"},
	{ContractType, "/contractTypes.list"},
	{ScheduleType, "/workHours.list"},
	{MinQualifications, "/qualifications.list"},
	{ProfessionalExperience, "/jobExperience.list"},
	{SalaryRange, "/jobSalaryRange.list"},
}

var criticalDomains = []string{Country, District, Category, ScheduleType, SalaryRange}

// Table maps a lower-cased key to a partner id.
type Table map[string]int

// Tables holds one Table per reference domain. It is read-only once built.
type Tables map[string]Table

// Resolve looks key up in the domain's table.
func (t Tables) Resolve(domain, key string) (int, bool) {
	table, ok := t[domain]
	if !ok {
		return 0, false
	}
	id, ok := table[NormalizeKey(key)]
	return id, ok
}

// Source lists the items of one reference endpoint.
type Source interface {
	Reference(ctx context.Context, path string) ([]Item, error)
}

// Build queries every reference domain. A domain whose endpoint fails ends
// up with an empty table; only context cancellation aborts the build.
func Build(ctx context.Context, src Source, logger zerolog.Logger) (Tables, error) {
	tables := make(Tables, len(Domains))
	for _, domain := range Domains {
		items, err := src.Reference(ctx, domain.Path)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logger.Warn().Err(err).Str("domain", domain.Name).Msg("reference data unavailable, using empty table")
			tables[domain.Name] = Table{}
			continue
		}
		tables[domain.Name] = buildTable(domain.Name, items, logger)
	}

	empty := lo.Filter(criticalDomains, func(name string, _ int) bool {
		return len(tables[name]) == 0
	})
	if len(empty) > 0 {
		logger.Warn().Strs("domains", empty).Msg("critical lookup tables are empty, dependent fields fall back")
	}
	return tables, nil
}

func buildTable(domain string, items []Item, logger zerolog.Logger) Table {
	table := make(Table, len(items))
	for _, item := range items {
		id, ok := itemID(item)
		if !ok {
			logger.Warn().Str("domain", domain).Interface("item", item).Msg("reference item without integer id skipped")
			continue
		}
		key := DeriveKey(item)
		table[key] = id
		logger.Debug().Str("domain", domain).Str("key", key).Int("id", id).Msg("mapped")
	}
	if len(table) == 0 {
		logger.Warn().Str("domain", domain).Msg("no usable reference items")
	}
	return table
}
