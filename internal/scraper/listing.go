package scraper

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/srdobolo/API-Request-Sapo-Emprego/internal/models"
)

var (
	ErrNoStructuredData = errors.New("no structured data")
	ErrDecode           = errors.New("decode error")
)

// ExtractListing reads the first JSON-LD block of a listing page. When the
// block holds a list or an @graph, the first JobPosting in it is used.
func ExtractListing(page []byte, pageURL string) (models.RawListing, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return models.RawListing{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	script := doc.Find(`script[type="application/ld+json"]`).First()
	raw := strings.TrimSpace(script.Text())
	if script.Length() == 0 || raw == "" {
		return models.RawListing{}, ErrNoStructuredData
	}

	data, err := decodeJSONLD(html.UnescapeString(raw))
	if err != nil {
		// Unescaping can break string literals that carried &quot;.
		var rawErr error
		if data, rawErr = decodeJSONLD(raw); rawErr != nil {
			return models.RawListing{}, fmt.Errorf("%w: %v", ErrDecode, err)
		}
	}

	posting := findJobPosting(data)
	if posting == nil {
		return models.RawListing{}, ErrNoStructuredData
	}
	return listingFromJobPosting(posting, pageURL), nil
}

func findJobPosting(data any) map[string]any {
	switch value := data.(type) {
	case []any:
		for _, item := range value {
			if posting := findJobPosting(item); posting != nil && isJobPosting(posting) {
				return posting
			}
		}
		if len(value) > 0 {
			if first, ok := value[0].(map[string]any); ok {
				return first
			}
		}
	case map[string]any:
		if isJobPosting(value) {
			return value
		}
		if graph, ok := value["@graph"]; ok {
			if posting := findJobPosting(graph); posting != nil {
				return posting
			}
		}
		return value
	}
	return nil
}

func isJobPosting(value map[string]any) bool {
	switch typ := value["@type"].(type) {
	case string:
		return strings.EqualFold(typ, "JobPosting")
	case []any:
		for _, item := range typ {
			if s, ok := item.(string); ok && strings.EqualFold(s, "JobPosting") {
				return true
			}
		}
	}
	return false
}

func listingFromJobPosting(value map[string]any, pageURL string) models.RawListing {
	address := mapValue(firstOf(value["jobLocation"]), "address")

	listing := models.RawListing{
		URL:             pageURL,
		Title:           cleanText(stringValue(value["title"], value["name"])),
		Description:     stringValue(value["description"]),
		Reference:       referenceOf(value["identifier"], pageURL),
		Company:         cleanText(stringValue(value["hiringOrganization"])),
		DatePosted:      stringValue(value["datePosted"]),
		ValidThrough:    stringValue(value["validThrough"]),
		Country:         stringValue(mapValue(address, "addressCountry")),
		Region:          stringValue(mapValue(address, "addressRegion")),
		Locality:        stringValue(mapValue(address, "addressLocality")),
		EmploymentType:  stringValue(value["employmentType"]),
		Industry:        cleanText(stringValue(value["industry"])),
		JobLocationType: stringValue(value["jobLocationType"]),
		Salary:          salaryOf(value),
	}
	return listing
}

func firstOf(value any) any {
	if list, ok := value.([]any); ok {
		if len(list) == 0 {
			return nil
		}
		return list[0]
	}
	return value
}

// referenceOf prefers identifier.value, then a plain identifier, then the
// last path segment of the page URL.
func referenceOf(identifier any, pageURL string) string {
	identifier = firstOf(identifier)
	if ref := stringValue(mapValue(identifier, "value")); ref != "" {
		return ref
	}
	if ref, ok := identifier.(string); ok && strings.TrimSpace(ref) != "" {
		return strings.TrimSpace(ref)
	}
	target, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	slug := path.Base(strings.TrimSuffix(target.Path, "/"))
	if slug == "." || slug == "/" {
		return ""
	}
	return slug
}

// salaryOf renders baseSalary as "MIN - MAX"; a free-text salary field wins.
func salaryOf(value map[string]any) string {
	if text, ok := value["salary"].(string); ok && strings.TrimSpace(text) != "" {
		return strings.TrimSpace(text)
	}

	base := value["baseSalary"]
	if text, ok := base.(string); ok {
		return strings.TrimSpace(text)
	}
	amount := mapValue(base, "value")
	if text, ok := amount.(string); ok {
		return strings.TrimSpace(text)
	}
	minValue := stringValue(mapValue(amount, "minValue"))
	maxValue := stringValue(mapValue(amount, "maxValue"))
	switch {
	case minValue != "" && maxValue != "":
		return minValue + " - " + maxValue
	case maxValue != "":
		return maxValue
	case minValue != "":
		return minValue
	default:
		return stringValue(mapValue(amount, "value"))
	}
}
