package cmd

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/samber/lo"

	"github.com/srdobolo/API-Request-Sapo-Emprego/internal/lookup"
	"github.com/srdobolo/API-Request-Sapo-Emprego/internal/partner"
)

type LookupsCmd struct {
	Refresh LookupsRefreshCmd `cmd:"" help:"Rebuild the lookup cache from the SAPO Emprego reference endpoints."`
	Show    LookupsShowCmd    `cmd:"" help:"Print cached lookup tables."`
}

type LookupsRefreshCmd struct{}

type LookupsShowCmd struct {
	Domain string `arg:"" optional:"" help:"Only print this domain, e.g. country_id."`
}

func (c *LookupsRefreshCmd) Run(ctx *Context) error {
	if _, err := newAdapter(ctx, adapterOptions{name: partner.NameSapo, refreshLookups: true, withMapper: true}); err != nil {
		return err
	}
	tables, _, err := lookup.Load(ctx.Config.LookupCache)
	if err != nil {
		return err
	}
	for _, domain := range lookup.Domains {
		size := len(tables[domain.Name])
		if size == 0 {
			ctx.UI.Warnf("%s: empty", domain.Name)
			continue
		}
		ctx.UI.Infof("%s: %d entries", domain.Name, size)
	}
	ctx.UI.Successf("Wrote %s", ctx.Config.LookupCache)
	return nil
}

type lookupRow struct {
	Domain string `json:"domain"`
	Key    string `json:"key"`
	ID     int    `json:"id"`
}

func (c *LookupsShowCmd) Run(ctx *Context) error {
	tables, ok, err := lookup.Load(ctx.Config.LookupCache)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no lookup cache at %s; run `lookups refresh` first", ctx.Config.LookupCache)
	}

	domains := lo.Keys(tables)
	if c.Domain != "" {
		if _, ok := tables[c.Domain]; !ok {
			return fmt.Errorf("unknown domain %q", c.Domain)
		}
		domains = []string{c.Domain}
	}
	sort.Strings(domains)

	return writeLookupRows(ctx, lookupRows(tables, domains))
}

func lookupRows(tables lookup.Tables, domains []string) []lookupRow {
	var rows []lookupRow
	for _, domain := range domains {
		keys := lo.Keys(tables[domain])
		sort.Strings(keys)
		for _, key := range keys {
			rows = append(rows, lookupRow{Domain: domain, Key: key, ID: tables[domain][key]})
		}
	}
	return rows
}

func writeLookupRows(ctx *Context, rows []lookupRow) error {
	if ctx.JSONOutput {
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(rows)
	}

	if ctx.PlainText {
		for _, row := range rows {
			fmt.Fprintln(ctx.Out, strings.Join([]string{row.Domain, row.Key, fmt.Sprint(row.ID)}, "\t"))
		}
		return nil
	}

	tw := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "domain\tkey\tid")
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", row.Domain, row.Key, row.ID)
	}
	return tw.Flush()
}
