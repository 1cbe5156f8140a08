package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"

	"github.com/srdobolo/API-Request-Sapo-Emprego/internal/config"
	"github.com/srdobolo/API-Request-Sapo-Emprego/internal/lookup"
	"github.com/srdobolo/API-Request-Sapo-Emprego/internal/mapper"
	"github.com/srdobolo/API-Request-Sapo-Emprego/internal/network"
	"github.com/srdobolo/API-Request-Sapo-Emprego/internal/partner"
	"github.com/srdobolo/API-Request-Sapo-Emprego/internal/ui"
)

type Context struct {
	// Ctx is cancelled on SIGINT/SIGTERM.
	Ctx        context.Context
	Out        io.Writer
	Err        io.Writer
	UI         *ui.UI
	Config     config.Config
	ConfigDir  string
	Logger     zerolog.Logger
	Verbose    bool
	JSONOutput bool
	PlainText  bool
	Version    string
	ColorMode  ui.ColorMode
}

func (c *Context) runContext() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}

// adapterOptions selects how much of a partner adapter is prepared.
type adapterOptions struct {
	name           string
	refreshLookups bool
	// withMapper loads the lookup tables and installs the mapper; removal
	// does not need it.
	withMapper bool
}

// newAdapter builds the partner adapter named in opts. A missing token and
// an unwritable lookup cache are returned as errors and end the run.
func newAdapter(ctx *Context, opts adapterOptions) (partner.Adapter, error) {
	cfg := ctx.Config
	name := strings.ToLower(strings.TrimSpace(firstNonEmpty(opts.name, cfg.Partner)))

	token, err := config.LoadToken(cfg, name)
	if err != nil {
		return nil, err
	}

	mapperOpts := mapper.Options{ApplyEmail: cfg.ApplyEmail, UTMSource: cfg.UTMSource}

	switch name {
	case partner.NameSapo:
		sapo := partner.NewSapo(cfg.APIBaseURL, token)
		if opts.withMapper {
			tables, err := lookup.LoadOrBuild(ctx.runContext(), cfg.LookupCache, sapo, opts.refreshLookups, ctx.Logger)
			if err != nil {
				return nil, err
			}
			sapo.SetMapper(mapper.New(tables, mapperOpts))
		}
		return sapo, nil
	case partner.NameFeed:
		if strings.TrimSpace(cfg.FeedURL) == "" {
			return nil, fmt.Errorf("feed partner needs feed_url in %s or %sFEED_URL", config.ConfigFileName, config.EnvPrefix)
		}
		feed := partner.NewFeed(cfg.FeedURL, token)
		feed.SetMapper(mapper.New(nil, mapperOpts))
		return feed, nil
	default:
		return nil, fmt.Errorf("unknown partner %q (expected one of %s)", name, strings.Join(partner.Names(), ", "))
	}
}

// newFetcher builds the page fetcher, rotating through configured proxies.
func newFetcher(ctx *Context, proxiesFlag string) (*network.Client, error) {
	proxies, err := config.LoadProxies(proxiesFlag)
	if err != nil {
		return nil, err
	}

	var rotator *network.Rotator
	if len(proxies) > 0 {
		rotator, err = network.NewRotator(proxies, 10*time.Minute)
		if err != nil {
			return nil, err
		}
		ctx.Logger.Debug().Int("proxies", len(proxies)).Msg("proxy rotation enabled")
	}
	return network.NewClient(rotator, ctx.Config.FetchTimeout())
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func isTTY(out io.Writer) bool {
	output := termenv.NewOutput(out)
	return output.ColorProfile() != termenv.Ascii
}
