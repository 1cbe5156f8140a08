package submit

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srdobolo/API-Request-Sapo-Emprego/internal/mapper"
	"github.com/srdobolo/API-Request-Sapo-Emprego/internal/models"
	"github.com/srdobolo/API-Request-Sapo-Emprego/internal/partner"
)

type fakeFetcher map[string]string

func (f fakeFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	page, ok := f[url]
	if !ok {
		return nil, errors.New("http 404")
	}
	return []byte(page), nil
}

type outcome struct {
	status int
	err    error
}

// fakeAdapter answers submissions from a script per reference and rejects
// listings without a salary the way a missing lookup would.
type fakeAdapter struct {
	script map[string][]outcome
	calls  map[string]int
	total  int
}

func newFakeAdapter() *fakeAdapter {
	return &fakeAdapter{script: map[string][]outcome{}, calls: map[string]int{}}
}

func (a *fakeAdapter) Name() string { return "fake" }

func (a *fakeAdapter) BuildPayload(listing models.RawListing) (partner.Payload, error) {
	payload := partner.Payload{Reference: listing.Reference, Title: listing.Title, Body: listing}
	if listing.Salary == "" {
		return payload, &mapper.MissingFieldsError{Fields: []string{"annual_salary_range_id"}}
	}
	return payload, nil
}

func (a *fakeAdapter) Submit(_ context.Context, payload partner.Payload) (partner.Response, error) {
	a.total++
	n := a.calls[payload.Reference]
	a.calls[payload.Reference] = n + 1

	script := a.script[payload.Reference]
	if len(script) == 0 {
		return partner.Response{StatusCode: http.StatusCreated}, nil
	}
	if n >= len(script) {
		n = len(script) - 1
	}
	if script[n].err != nil {
		return partner.Response{}, script[n].err
	}
	return partner.Response{StatusCode: script[n].status, Body: fmt.Sprintf("status %d", script[n].status)}, nil
}

func (a *fakeAdapter) Remove(context.Context, string) (partner.Response, error) {
	return partner.Response{StatusCode: http.StatusOK}, nil
}

type sleepRecorder struct {
	delays []time.Duration
	// callsAtSleep records how many submissions had been made when each
	// sleep started.
	callsAtSleep []int
	adapter      *fakeAdapter
}

func (s *sleepRecorder) sleep(ctx context.Context, delay time.Duration) error {
	s.delays = append(s.delays, delay)
	s.callsAtSleep = append(s.callsAtSleep, s.adapter.total)
	return ctx.Err()
}

func newTestDriver(fetcher fakeFetcher, adapter *fakeAdapter, cfg Config) (*Driver, *sleepRecorder) {
	d := New(fetcher, adapter, cfg, zerolog.Nop())
	rec := &sleepRecorder{adapter: adapter}
	d.sleep = rec.sleep
	return d, rec
}

func testConfig() Config {
	return Config{MaxAttempts: 3, BaseDelay: time.Second, MaxDelay: 3 * time.Second, Cooldown: time.Minute}
}

func listing(ref string) models.RawListing {
	return models.RawListing{
		URL:       "https://www.recruityard.com/find-jobs-all/" + ref + "-pt",
		Title:     "Job " + ref,
		Reference: ref,
		Salary:    "1050 - 1300",
	}
}

func page(ref string, withSalary bool) string {
	salary := ""
	if withSalary {
		salary = `, "baseSalary": {"value": {"minValue": 1050, "maxValue": 1300}}`
	}
	return `<script type="application/ld+json">{"@type": "JobPosting", "title": "Job ` + ref +
		`", "identifier": {"value": "` + ref + `"}` + salary + `}</script>`
}

func TestThreeThrottledAttemptsQueueTheListing(t *testing.T) {
	adapter := newFakeAdapter()
	adapter.script["A"] = []outcome{{status: 429}}

	d, rec := newTestDriver(nil, adapter, testConfig())
	report, err := d.Submit(context.Background(), listing("A"))
	require.NoError(t, err)

	require.Len(t, report.Results, 1)
	result := report.Results[0]
	assert.Equal(t, models.StatusQueued, result.Status)
	assert.Equal(t, 0, report.Succeeded)
	assert.Equal(t, 1, report.Queued)

	// Pass one: 3 attempts with 1s and 2s backoff, then the cooldown.
	require.GreaterOrEqual(t, len(rec.delays), 3)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, time.Minute}, rec.delays[:3])
	assert.Equal(t, 3, rec.callsAtSleep[2], "exactly 3 attempts before queuing")

	// Pass two repeats the bounded retry once and leaves the listing queued.
	assert.Equal(t, 6, adapter.total)
	assert.Equal(t, 6, result.Attempts)
	assert.Contains(t, result.Reason, "429")
}

func TestRetryPassRecoversThrottledListing(t *testing.T) {
	adapter := newFakeAdapter()
	adapter.script["A"] = []outcome{{status: 429}, {status: 429}, {status: 429}, {status: 201}}

	d, rec := newTestDriver(nil, adapter, testConfig())
	report, err := d.Submit(context.Background(), listing("A"), listing("B"))
	require.NoError(t, err)

	assert.Equal(t, 2, report.Succeeded)
	assert.Equal(t, 0, report.Queued)
	assert.Equal(t, models.StatusSucceeded, report.Results[0].Status)
	assert.Equal(t, 4, report.Results[0].Attempts)
	assert.Empty(t, report.Results[0].Reason)
	assert.Contains(t, rec.delays, time.Minute)
}

func TestServerErrorThenCreatedSucceeds(t *testing.T) {
	adapter := newFakeAdapter()
	adapter.script["A"] = []outcome{{status: 500}, {status: 201}}

	d, rec := newTestDriver(nil, adapter, testConfig())
	report, err := d.Submit(context.Background(), listing("A"))
	require.NoError(t, err)

	assert.Equal(t, 1, report.Succeeded)
	assert.Equal(t, 2, report.Results[0].Attempts)
	assert.Equal(t, []time.Duration{time.Second}, rec.delays)
}

func TestExhaustedFailuresCarryResponseBody(t *testing.T) {
	adapter := newFakeAdapter()
	adapter.script["A"] = []outcome{{status: 400}}
	adapter.script["B"] = []outcome{{err: errors.New("connection refused")}}

	d, _ := newTestDriver(nil, adapter, testConfig())
	report, err := d.Submit(context.Background(), listing("A"), listing("B"))
	require.NoError(t, err)

	assert.Equal(t, 2, report.Failed)
	assert.Equal(t, "http 400: status 400", report.Results[0].Reason)
	assert.Equal(t, 3, report.Results[0].Attempts)
	assert.Equal(t, "connection refused", report.Results[1].Reason)
}

func TestBackoffIsCapped(t *testing.T) {
	adapter := newFakeAdapter()
	adapter.script["A"] = []outcome{{status: 503}}

	cfg := testConfig()
	cfg.MaxAttempts = 5
	d, rec := newTestDriver(nil, adapter, cfg)
	_, err := d.Submit(context.Background(), listing("A"))
	require.NoError(t, err)

	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 3 * time.Second, 3 * time.Second}, rec.delays)
}

func TestValidationFailureMakesNoSubmission(t *testing.T) {
	adapter := newFakeAdapter()
	raw := listing("A")
	raw.Salary = ""

	d, _ := newTestDriver(nil, adapter, testConfig())
	report, err := d.Submit(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, 0, adapter.total)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, "missing fields: [annual_salary_range_id]", report.Results[0].Reason)
	assert.Equal(t, 0, report.Results[0].Attempts)
}

func TestDryRunValidatesWithoutSubmitting(t *testing.T) {
	adapter := newFakeAdapter()
	cfg := testConfig()
	cfg.DryRun = true

	d, _ := newTestDriver(nil, adapter, cfg)
	report, err := d.Submit(context.Background(), listing("A"))
	require.NoError(t, err)

	assert.Equal(t, 0, adapter.total)
	assert.Equal(t, 1, report.Validated)
	assert.Equal(t, models.StatusValidated, report.Results[0].Status)
}

func TestRunRecordsPerListingFailuresAndContinues(t *testing.T) {
	base := "https://www.recruityard.com/find-jobs-all/"
	fetcher := fakeFetcher{
		base + "a-pt":        page("A", true),
		base + "plain-pt":    `<html><body>No data</body></html>`,
		base + "broken-pt":   `<script type="application/ld+json">{"title": </script>`,
		base + "nosalary-pt": page("C", false),
	}
	urls := []string{base + "a-pt", base + "missing-pt", base + "plain-pt", base + "broken-pt", base + "nosalary-pt"}

	adapter := newFakeAdapter()
	d, _ := newTestDriver(fetcher, adapter, testConfig())
	report, err := d.Run(context.Background(), urls)
	require.NoError(t, err)

	require.Len(t, report.Results, 5)
	assert.Equal(t, 1, report.Succeeded)
	assert.Equal(t, 4, report.Failed)
	assert.Equal(t, 1, adapter.total)

	assert.Equal(t, "A", report.Results[0].Reference)
	assert.True(t, strings.HasPrefix(report.Results[1].Reason, "fetch error: "))
	assert.Equal(t, "no structured data", report.Results[2].Reason)
	assert.True(t, strings.HasPrefix(report.Results[3].Reason, "decode error: "))
	assert.Equal(t, "missing fields: [annual_salary_range_id]", report.Results[4].Reason)

	summary := report.Summary()
	assert.True(t, strings.HasPrefix(summary, "summary: succeeded=1 failed=4 queued=0"))
	assert.Contains(t, summary, "failed C: missing fields: [annual_salary_range_id]")
}

func TestRunStopsWhenContextIsCancelled(t *testing.T) {
	adapter := newFakeAdapter()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d, _ := newTestDriver(fakeFetcher{}, adapter, testConfig())
	report, err := d.Run(ctx, []string{"https://example.com/a-pt"})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, report.Results)
	assert.Equal(t, 0, adapter.total)
}

func TestReportMerge(t *testing.T) {
	first := Report{Results: []models.SubmissionResult{{Status: models.StatusSucceeded}}}.tally()
	second := Report{Results: []models.SubmissionResult{{Status: models.StatusQueued}, {Status: models.StatusFailed}}}.tally()

	merged := first.Merge(second)
	assert.Equal(t, 1, merged.Succeeded)
	assert.Equal(t, 1, merged.Queued)
	assert.Equal(t, 1, merged.Failed)
	assert.Len(t, first.Results, 1)
}
