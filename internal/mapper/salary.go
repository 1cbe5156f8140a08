package mapper

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// SalaryUndefined is the band used when no salary range can be read.
const SalaryUndefined = "a definir"

type salaryBand struct {
	upper float64
	label string
}

// Upper bounds are exclusive.
var salaryBands = []salaryBand{
	{15000, "até 15.000€"},
	{25000, "de 15.000€ a 25.000€"},
	{35000, "de 25.000€ a 35.000€"},
	{50000, "de 35.000€ a 50.000€"},
	{math.Inf(1), "mais de 50.000€"},
}

var salaryRangePattern = regexp.MustCompile(`^\D*?(\d[\d.]*)\s*[-–—]\s*\D*?(\d[\d.]*)\D*$`)

// SalaryBand maps a monthly "MIN - MAX" salary text to its annual band label.
func SalaryBand(raw string) string {
	monthlyMax, ok := ParseMonthlyMax(raw)
	if !ok {
		return SalaryUndefined
	}
	return AnnualBand(monthlyMax * 12)
}

// AnnualBand returns the band containing an annual amount.
func AnnualBand(annual float64) string {
	if math.IsNaN(annual) || annual < 0 {
		return SalaryUndefined
	}
	for _, band := range salaryBands {
		if annual < band.upper {
			return band.label
		}
	}
	return SalaryUndefined
}

// SalaryBandLabels lists every label SalaryBand can return.
func SalaryBandLabels() []string {
	labels := make([]string, 0, len(salaryBands)+1)
	for _, band := range salaryBands {
		labels = append(labels, band.label)
	}
	return append(labels, SalaryUndefined)
}

// ParseMonthlyMax reads the upper bound of a "MIN - MAX" salary range.
func ParseMonthlyMax(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "undisclosed") {
		return 0, false
	}
	match := salaryRangePattern.FindStringSubmatch(raw)
	if match == nil {
		return 0, false
	}
	if _, ok := parseAmount(match[1]); !ok {
		return 0, false
	}
	return parseAmount(match[2])
}

// parseAmount accepts a dot as either thousands or decimal separator: a
// single dot followed by exactly three digits, or several dots, group
// thousands; any other single dot is decimal.
func parseAmount(value string) (float64, bool) {
	value = strings.Trim(value, ".")
	if value == "" {
		return 0, false
	}
	dots := strings.Count(value, ".")
	switch {
	case dots > 1:
		value = strings.ReplaceAll(value, ".", "")
	case dots == 1 && len(value)-strings.Index(value, ".")-1 == 3:
		value = strings.ReplaceAll(value, ".", "")
	}
	amount, err := strconv.ParseFloat(value, 64)
	if err != nil || amount < 0 {
		return 0, false
	}
	return amount, true
}
