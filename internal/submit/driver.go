// Package submit drives a batch of listing pages through extraction, mapping
// and submission to a partner, with bounded retries and a deferred pass for
// throttled listings.
package submit

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/srdobolo/API-Request-Sapo-Emprego/internal/models"
	"github.com/srdobolo/API-Request-Sapo-Emprego/internal/partner"
	"github.com/srdobolo/API-Request-Sapo-Emprego/internal/scraper"
)

type Config struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	// Cooldown is the pause between the first pass and the retry of
	// throttled listings.
	Cooldown time.Duration
	// Interval is the minimum gap between two submission attempts.
	Interval time.Duration
	DryRun   bool
}

func DefaultConfig() Config {
	return Config{
		MaxAttempts: 3,
		BaseDelay:   2 * time.Second,
		MaxDelay:    30 * time.Second,
		Cooldown:    60 * time.Second,
		Interval:    time.Second,
	}
}

type Driver struct {
	fetcher scraper.Fetcher
	adapter partner.Adapter
	cfg     Config
	limiter *rate.Limiter
	logger  zerolog.Logger
	sleep   func(ctx context.Context, delay time.Duration) error
}

func New(fetcher scraper.Fetcher, adapter partner.Adapter, cfg Config, logger zerolog.Logger) *Driver {
	defaults := DefaultConfig()
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaults.MaxAttempts
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = defaults.MaxDelay
	}

	limit := rate.Inf
	if cfg.Interval > 0 {
		limit = rate.Every(cfg.Interval)
	}
	return &Driver{
		fetcher: fetcher,
		adapter: adapter,
		cfg:     cfg,
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger.With().Str("partner", adapter.Name()).Logger(),
		sleep:   sleepWithContext,
	}
}

// pending is a validated payload waiting for the retry pass.
type pending struct {
	index   int
	payload partner.Payload
}

// Run processes urls in order. Per-listing failures are recorded in the
// report; the returned error is only set when ctx ends the run early, in
// which case the report holds the listings finished so far.
func (d *Driver) Run(ctx context.Context, urls []string) (Report, error) {
	report := Report{Results: make([]models.SubmissionResult, 0, len(urls))}
	var queue []pending

	for _, url := range urls {
		if err := ctx.Err(); err != nil {
			return report.tally(), err
		}
		result := models.SubmissionResult{URL: url}

		page, err := d.fetcher.Fetch(ctx, url)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return report.tally(), ctxErr
			}
			result.Status = models.StatusFailed
			result.Reason = fmt.Sprintf("fetch error: %v", err)
			report.add(d.log(result))
			continue
		}

		listing, err := scraper.ExtractListing(page, url)
		if err != nil {
			result.Status = models.StatusFailed
			result.Reason = err.Error()
			report.add(d.log(result))
			continue
		}

		p, queued, err := d.process(ctx, &report, listing)
		if err != nil {
			return report.tally(), err
		}
		if queued {
			queue = append(queue, p)
		}
	}

	if err := d.retryQueued(ctx, &report, queue); err != nil {
		return report.tally(), err
	}
	return report.tally(), nil
}

// Submit runs already extracted listings through the same path as Run.
func (d *Driver) Submit(ctx context.Context, listings ...models.RawListing) (Report, error) {
	report := Report{Results: make([]models.SubmissionResult, 0, len(listings))}
	var queue []pending

	for _, listing := range listings {
		p, queued, err := d.process(ctx, &report, listing)
		if err != nil {
			return report.tally(), err
		}
		if queued {
			queue = append(queue, p)
		}
	}

	if err := d.retryQueued(ctx, &report, queue); err != nil {
		return report.tally(), err
	}
	return report.tally(), nil
}

// process maps, validates and submits one listing and records its result.
// It reports true when the listing was throttled and belongs in the retry
// pass.
func (d *Driver) process(ctx context.Context, report *Report, listing models.RawListing) (pending, bool, error) {
	result := models.SubmissionResult{URL: listing.URL, Reference: listing.Reference, Title: listing.Title}

	payload, err := d.adapter.BuildPayload(listing)
	if payload.Reference != "" {
		result.Reference = payload.Reference
	}
	if payload.Title != "" {
		result.Title = payload.Title
	}
	if err != nil {
		result.Status = models.StatusFailed
		result.Reason = err.Error()
		report.add(d.log(result))
		return pending{}, false, nil
	}

	if d.cfg.DryRun {
		result.Status = models.StatusValidated
		report.add(d.log(result))
		return pending{}, false, nil
	}

	result, err = d.deliver(ctx, result, payload)
	if err != nil {
		return pending{}, false, err
	}
	report.add(d.log(result))
	if result.Status == models.StatusQueued {
		return pending{index: len(report.Results) - 1, payload: payload}, true, nil
	}
	return pending{}, false, nil
}

func (d *Driver) retryQueued(ctx context.Context, report *Report, queue []pending) error {
	if len(queue) == 0 {
		return nil
	}

	d.logger.Info().Int("queued", len(queue)).Dur("cooldown", d.cfg.Cooldown).Msg("retrying throttled listings after cooldown")
	if err := d.sleep(ctx, d.cfg.Cooldown); err != nil {
		return err
	}

	for _, item := range queue {
		previous := report.Results[item.index]
		result, err := d.deliver(ctx, previous, item.payload)
		if err != nil {
			return err
		}
		result.Attempts += previous.Attempts
		report.Results[item.index] = d.log(result)
	}
	return nil
}

// deliver submits payload with up to MaxAttempts attempts. The outcome of
// the last attempt decides the status: accepted is Succeeded, throttled is
// Queued, anything else Failed. Only a context error is returned.
func (d *Driver) deliver(ctx context.Context, result models.SubmissionResult, payload partner.Payload) (models.SubmissionResult, error) {
	result.Attempts = 0

	for attempt := 1; attempt <= d.cfg.MaxAttempts; attempt++ {
		if err := d.limiter.Wait(ctx); err != nil {
			return result, contextError(ctx, err)
		}
		result.Attempts = attempt

		resp, err := d.adapter.Submit(ctx, payload)
		switch {
		case err != nil:
			if ctxErr := ctx.Err(); ctxErr != nil {
				return result, ctxErr
			}
			result.Status = models.StatusFailed
			result.Reason = err.Error()
		case resp.Accepted():
			result.Status = models.StatusSucceeded
			result.Reason = ""
			return result, nil
		case resp.Throttled():
			result.Status = models.StatusQueued
			result.Reason = "rate limited (http 429)"
		default:
			result.Status = models.StatusFailed
			result.Reason = fmt.Sprintf("http %d: %s", resp.StatusCode, resp.Body)
		}

		if attempt == d.cfg.MaxAttempts {
			break
		}
		delay := d.backoff(attempt)
		d.logger.Debug().Str("reference", result.Reference).Int("attempt", attempt).Dur("delay", delay).Str("reason", result.Reason).Msg("retrying submission")
		if err := d.sleep(ctx, delay); err != nil {
			return result, err
		}
	}
	return result, nil
}

func (d *Driver) backoff(attempt int) time.Duration {
	delay := d.cfg.BaseDelay << (attempt - 1)
	if delay > d.cfg.MaxDelay || delay < 0 {
		delay = d.cfg.MaxDelay
	}
	return delay
}

func (d *Driver) log(result models.SubmissionResult) models.SubmissionResult {
	event := d.logger.Info()
	if result.Status == models.StatusFailed {
		event = d.logger.Warn()
	}
	event.Str("url", result.URL).
		Str("reference", result.Reference).
		Str("status", string(result.Status)).
		Int("attempts", result.Attempts).
		Str("reason", result.Reason).
		Msg("listing processed")
	return result
}

// contextError prefers the context's own error over the limiter's wrapper.
func contextError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}

func sleepWithContext(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
