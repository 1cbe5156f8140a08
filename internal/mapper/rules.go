package mapper

import "strings"

const (
	WorkModelRemote     = "remote"
	WorkModelPresential = "presential"
)

// The partner taxonomy uses Portuguese place names.
var regionAliases = map[string]string{
	"lisbon":   "lisboa",
	"oporto":   "porto",
	"azores":   "açores",
	"setubal":  "setúbal",
	"evora":    "évora",
	"santarem": "santarém",
	"braganca": "bragança",
}

var industrySynonyms = map[string]string{
	"customer service":       "call-center, helpdesk e telemarketing",
	"customer support":       "call-center, helpdesk e telemarketing",
	"call center":            "call-center, helpdesk e telemarketing",
	"healthcare":             "saúde",
	"information technology": "informática",
	"hospitality":            "hotelaria",
	"tourism":                "turismo",
	"sales":                  "comercial / vendas",
	"marketing":              "marketing e publicidade",
}

// NormalizeRegion lower-cases region and applies the alias rewrite.
// Applying it to its own output is a no-op.
func NormalizeRegion(region string) string {
	key := strings.ToLower(strings.TrimSpace(region))
	if alias, ok := regionAliases[key]; ok {
		return alias
	}
	return key
}

// NormalizeIndustry lower-cases industry and applies the synonym rewrite.
func NormalizeIndustry(industry string) string {
	key := strings.Join(strings.Fields(strings.ToLower(industry)), " ")
	if synonym, ok := industrySynonyms[key]; ok {
		return synonym
	}
	return key
}

// NormalizeSchedule rewrites employment types such as FULL_TIME or
// "part time" to the partner's full-time/part-time keys.
func NormalizeSchedule(employmentType string) string {
	key := strings.ToLower(strings.TrimSpace(employmentType))
	key = strings.NewReplacer("_", "-", " ", "-").Replace(key)
	switch key {
	case "full-time", "fulltime":
		return "full-time"
	case "part-time", "parttime":
		return "part-time"
	default:
		return key
	}
}

// WorkModel classifies a schema.org jobLocationType.
func WorkModel(jobLocationType string) string {
	if strings.EqualFold(strings.TrimSpace(jobLocationType), "TELECOMMUTE") {
		return WorkModelRemote
	}
	return WorkModelPresential
}
