package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/srdobolo/API-Request-Sapo-Emprego/internal/export"
	"github.com/srdobolo/API-Request-Sapo-Emprego/internal/scraper"
	"github.com/srdobolo/API-Request-Sapo-Emprego/internal/submit"
)

type RunCmd struct {
	URLs           []string `arg:"" optional:"" name:"url" help:"Listing page URLs. When omitted they are discovered from the listing index."`
	Partner        string   `help:"Target partner: sapo or feed." enum:",sapo,feed" default:""`
	RefreshLookups bool     `help:"Rebuild the lookup cache from the partner before submitting."`
	DryRun         bool     `help:"Map and validate listings without submitting them."`
	Limit          int      `help:"Process at most N listings (0 = all)."`
	Format         string   `help:"Result format: table, csv, tsv, json, md." enum:",table,csv,tsv,json,md" default:""`
	Output         string   `name:"output" short:"o" help:"Write results to a file."`
	Cron           string   `help:"Repeat the run on a cron schedule, e.g. \"@every 6h\" or \"0 8 * * *\"."`
	Proxies        string   `help:"Comma-separated proxy URLs for page fetching." env:"SAPOJOBS_PROXIES"`
}

func (r *RunCmd) Run(ctx *Context) error {
	adapter, err := newAdapter(ctx, adapterOptions{
		name:           r.Partner,
		refreshLookups: r.RefreshLookups,
		withMapper:     true,
	})
	if err != nil {
		return err
	}
	fetcher, err := newFetcher(ctx, r.Proxies)
	if err != nil {
		return err
	}

	cfg := ctx.Config
	driver := submit.New(fetcher, adapter, submit.Config{
		MaxAttempts: cfg.MaxAttempts,
		BaseDelay:   cfg.RetryBaseDelay(),
		MaxDelay:    cfg.RetryMaxDelay(),
		Cooldown:    cfg.Cooldown(),
		Interval:    cfg.SubmitInterval(),
		DryRun:      r.DryRun,
	}, ctx.Logger)

	var total submit.Report
	once := func(runCtx context.Context) error {
		urls, err := r.resolveURLs(runCtx, ctx, fetcher)
		if err != nil {
			return err
		}
		report, err := driver.Run(runCtx, urls)
		total = total.Merge(report)
		if writeErr := r.writeReport(ctx, report); writeErr != nil {
			return writeErr
		}
		return err
	}

	if strings.TrimSpace(r.Cron) == "" {
		return once(ctx.runContext())
	}
	err = runScheduled(ctx.runContext(), r.Cron, ctx.Logger, once)
	ctx.Logger.Info().
		Int("succeeded", total.Succeeded).
		Int("failed", total.Failed).
		Int("queued", total.Queued).
		Msg("scheduled runs finished")
	return err
}

func (r *RunCmd) resolveURLs(runCtx context.Context, ctx *Context, fetcher scraper.Fetcher) ([]string, error) {
	urls := lo.Uniq(lo.Filter(r.URLs, func(url string, _ int) bool {
		return strings.TrimSpace(url) != ""
	}))
	if len(urls) == 0 {
		cfg := ctx.Config
		discovered, err := scraper.DiscoverLinks(runCtx, fetcher, cfg.ListingIndexURL, cfg.ListingPathPrefix, cfg.ListingSuffix)
		if err != nil {
			return nil, err
		}
		ctx.Logger.Info().Int("listings", len(discovered)).Str("index", cfg.ListingIndexURL).Msg("listing links discovered")
		urls = discovered
	}

	limit := r.Limit
	if limit == 0 {
		limit = ctx.Config.Limit
	}
	if limit > 0 && len(urls) > limit {
		urls = urls[:limit]
	}
	return urls, nil
}

func (r *RunCmd) writeReport(ctx *Context, report submit.Report) error {
	machine := ctx.JSONOutput || ctx.PlainText || r.Format != ""
	if r.Output != "" || machine || isTTY(ctx.Out) {
		format, err := resolveFormat(ctx, r.Format, r.Output)
		if err != nil {
			return err
		}

		writer := ctx.Out
		if r.Output != "" {
			file, err := os.Create(r.Output)
			if err != nil {
				return err
			}
			defer file.Close()
			writer = file
		}

		colorEnabled := ctx.UI != nil && ctx.UI.ColorEnabled && r.Output == ""
		if err := export.WriteResults(writer, report.Results, format, export.WriteOptions{
			ColorEnabled: colorEnabled,
			Hyperlinks:   colorEnabled && isTTY(writer),
		}); err != nil {
			return err
		}
	}

	// Keep stdout parseable when results went there in a machine format.
	if machine && r.Output == "" {
		_, err := fmt.Fprintln(ctx.Err, report.Summary())
		return err
	}
	if ctx.UI == nil {
		_, err := fmt.Fprintln(ctx.Out, report.Summary())
		return err
	}
	ctx.UI.Summary(report.Summary(), report.Failed, report.Queued)
	return nil
}

func resolveFormat(ctx *Context, format string, outputPath string) (export.Format, error) {
	if format != "" {
		return export.ParseFormat(format)
	}
	if ctx.JSONOutput {
		return export.FormatJSON, nil
	}
	if ctx.PlainText {
		return export.FormatTSV, nil
	}
	if outputPath != "" {
		return export.FormatCSV, nil
	}
	if isTTY(ctx.Out) {
		return export.FormatTable, nil
	}
	return export.FormatCSV, nil
}

// runScheduled calls run on every tick of schedule until ctx ends. A tick that
// fires while the previous run is still going is skipped. Failed runs are
// logged and the schedule keeps going.
func runScheduled(ctx context.Context, schedule string, logger zerolog.Logger, run func(context.Context) error) error {
	c := cron.New(
		cron.WithLogger(cronLogger{logger: logger}),
		cron.WithChain(cron.SkipIfStillRunning(cronLogger{logger: logger})),
	)

	_, err := c.AddFunc(schedule, func() {
		if err := run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("scheduled run failed")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid --cron %q: %w", schedule, err)
	}

	logger.Info().Str("schedule", schedule).Msg("scheduler started")
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	logger.Info().Msg("scheduler stopped")
	return nil
}

// cronLogger routes robfig/cron logs through zerolog.
type cronLogger struct {
	logger zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}

var _ cron.Logger = cronLogger{}
