package cmd

import (
	"fmt"
	"strings"
)

type RemoveCmd struct {
	References []string `arg:"" name:"reference" help:"References of published offers to withdraw."`
	Partner    string   `help:"Target partner: sapo or feed." enum:",sapo,feed" default:""`
}

func (r *RemoveCmd) Run(ctx *Context) error {
	adapter, err := newAdapter(ctx, adapterOptions{name: r.Partner})
	if err != nil {
		return err
	}

	var failed []string
	for _, ref := range r.References {
		ref = strings.TrimSpace(ref)
		if ref == "" {
			continue
		}
		resp, err := adapter.Remove(ctx.runContext(), ref)
		switch {
		case err != nil:
			ctx.UI.Errorf("%s: %v", ref, err)
			failed = append(failed, ref)
		case resp.Accepted() || resp.StatusCode == 204:
			ctx.UI.Successf("%s: removed", ref)
		default:
			ctx.UI.Errorf("%s: http %d: %s", ref, resp.StatusCode, resp.Body)
			failed = append(failed, ref)
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("could not remove %d of %d offers", len(failed), len(r.References))
	}
	return nil
}
