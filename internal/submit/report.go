package submit

import (
	"fmt"
	"strings"

	"github.com/srdobolo/API-Request-Sapo-Emprego/internal/models"
)

// Report is the outcome of one run. The counters always match Results.
type Report struct {
	Succeeded int                       `json:"succeeded"`
	Failed    int                       `json:"failed"`
	Queued    int                       `json:"queued"`
	Validated int                       `json:"validated"`
	Results   []models.SubmissionResult `json:"results"`
}

func (r *Report) add(result models.SubmissionResult) {
	r.Results = append(r.Results, result)
}

func (r Report) tally() Report {
	r.Succeeded, r.Failed, r.Queued, r.Validated = 0, 0, 0, 0
	for _, result := range r.Results {
		switch result.Status {
		case models.StatusSucceeded:
			r.Succeeded++
		case models.StatusFailed:
			r.Failed++
		case models.StatusQueued:
			r.Queued++
		case models.StatusValidated:
			r.Validated++
		}
	}
	return r
}

// Summary renders the end-of-run line followed by one line per listing
// that did not succeed.
func (r Report) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "summary: succeeded=%d failed=%d queued=%d", r.Succeeded, r.Failed, r.Queued)
	if r.Validated > 0 {
		fmt.Fprintf(&b, " validated=%d", r.Validated)
	}
	for _, result := range r.Results {
		if result.Status != models.StatusFailed && result.Status != models.StatusQueued {
			continue
		}
		fmt.Fprintf(&b, "\n  %s %s: %s", result.Status, label(result), result.Reason)
	}
	return b.String()
}

func label(result models.SubmissionResult) string {
	if result.Reference != "" {
		return result.Reference
	}
	return result.URL
}

// Merge folds other into r and recounts.
func (r Report) Merge(other Report) Report {
	r.Results = append(append([]models.SubmissionResult{}, r.Results...), other.Results...)
	return r.tally()
}
