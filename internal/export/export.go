// Package export renders run results in the formats the CLI can write.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/muesli/termenv"

	"github.com/srdobolo/API-Request-Sapo-Emprego/internal/models"
)

type Format string

const (
	FormatTable    Format = "table"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
	FormatTSV      Format = "tsv"
)

type WriteOptions struct {
	ColorEnabled bool
	Hyperlinks   bool
}

// ParseFormat maps a flag value to a Format; the empty string is the table.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case "", FormatTable:
		return FormatTable, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatMarkdown, "markdown":
		return FormatMarkdown, nil
	case FormatTSV:
		return FormatTSV, nil
	default:
		return "", fmt.Errorf("unknown format %q", value)
	}
}

func WriteResults(w io.Writer, results []models.SubmissionResult, format Format, opts WriteOptions) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, results)
	case FormatCSV:
		return writeCSV(w, results, ',')
	case FormatTSV:
		return writeCSV(w, results, '\t')
	case FormatMarkdown:
		return writeMarkdown(w, results)
	default:
		return writeTable(w, results, opts)
	}
}

func writeJSON(w io.Writer, results []models.SubmissionResult) error {
	if results == nil {
		results = []models.SubmissionResult{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(results)
}

func writeCSV(w io.Writer, results []models.SubmissionResult, delim rune) error {
	writer := csv.NewWriter(w)
	writer.Comma = delim
	if err := writer.Write(csvHeader()); err != nil {
		return err
	}
	for _, result := range results {
		if err := writer.Write(csvRow(result)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeTable(w io.Writer, results []models.SubmissionResult, opts WriteOptions) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "status\treference\tattempts\turl\treason")
	output := termenv.NewOutput(w)
	for _, result := range results {
		fmt.Fprintln(tw, strings.Join(tableRow(result, output, opts), "\t"))
	}
	return tw.Flush()
}

func writeMarkdown(w io.Writer, results []models.SubmissionResult) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "No results.")
		return err
	}
	for _, result := range results {
		urlLine := "  URL: -"
		if link := safe(result.URL); link != "" {
			urlLine = fmt.Sprintf("  URL: [Open listing](<%s>)", link)
		}
		lines := []string{
			fmt.Sprintf("- **%s** (%s)", dash(result.Title), dash(result.Reference)),
			fmt.Sprintf("  Status: %s", result.Status),
			fmt.Sprintf("  Attempts: %d", result.Attempts),
			urlLine,
		}
		if result.Reason != "" {
			lines = append(lines, fmt.Sprintf("  Reason: %s", safe(result.Reason)))
		}
		for _, line := range lines {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

func csvHeader() []string {
	return []string{"url", "reference", "title", "status", "attempts", "reason"}
}

func csvRow(result models.SubmissionResult) []string {
	return []string{
		result.URL,
		result.Reference,
		result.Title,
		string(result.Status),
		strconv.Itoa(result.Attempts),
		oneLine(result.Reason),
	}
}

func safe(value string) string {
	return strings.TrimSpace(value)
}

func dash(value string) string {
	if value = safe(value); value == "" {
		return "-"
	}
	return value
}

func oneLine(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

var statusColors = map[models.Status]string{
	models.StatusSucceeded: "#5FD75F",
	models.StatusFailed:    "#FF5F5F",
	models.StatusQueued:    "#FFD75F",
	models.StatusValidated: "#87CEEB",
}

func tableRow(result models.SubmissionResult, output *termenv.Output, opts WriteOptions) []string {
	const linkColor = "#87CEEB"

	status := string(result.Status)
	if opts.ColorEnabled {
		if color, ok := statusColors[result.Status]; ok {
			status = output.String(status).Foreground(output.Color(color)).String()
		}
	}

	link := safe(result.URL)
	displayURL := "-"
	if link != "" {
		displayURL = shortURLLabel(link)
		if opts.ColorEnabled {
			displayURL = output.String(displayURL).Foreground(output.Color(linkColor)).String()
		}
		if opts.Hyperlinks {
			displayURL = hyperlink(link, displayURL)
		}
	}

	reason := oneLine(result.Reason)
	if len(reason) > 80 {
		reason = reason[:77] + "..."
	}
	return []string{
		status,
		dash(result.Reference),
		strconv.Itoa(result.Attempts),
		displayURL,
		reason,
	}
}

func hyperlink(url string, text string) string {
	const esc = "\x1b"
	return esc + "]8;;" + url + esc + "\\" + text + esc + "]8;;" + esc + "\\"
}

func shortURLLabel(raw string) string {
	const maxLen = 60
	label := strings.TrimSpace(raw)
	if parsed, err := url.Parse(raw); err == nil {
		host := strings.TrimPrefix(parsed.Host, "www.")
		if host != "" {
			label = host + parsed.Path
		}
	}
	label = strings.TrimSpace(label)
	if label == "" {
		label = raw
	}
	if len(label) > maxLen {
		label = label[:maxLen-3] + "..."
	}
	return label
}
