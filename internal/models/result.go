package models

// Status is the terminal state of one listing in a run.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusQueued    Status = "queued"
	StatusValidated Status = "validated"
)

// SubmissionResult is the outcome of processing one listing.
type SubmissionResult struct {
	URL       string `json:"url"`
	Reference string `json:"reference,omitempty"`
	Title     string `json:"title,omitempty"`
	Status    Status `json:"status"`
	Attempts  int    `json:"attempts"`
	Reason    string `json:"reason,omitempty"`
}
