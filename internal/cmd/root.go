package cmd

import (
	"github.com/alecthomas/kong"
)

type CLI struct {
	Color   string `help:"Color output: auto, always, never." enum:"auto,always,never" default:"auto"`
	JSON    bool   `help:"JSON output to stdout; disables colors."`
	Plain   bool   `help:"TSV output to stdout; disables colors."`
	Verbose bool   `help:"Enable debug logging."`

	VersionFlag kong.VersionFlag `help:"Print version."`

	Run     RunCmd     `cmd:"" help:"Extract listings and submit them to a partner."`
	Lookups LookupsCmd `cmd:"" help:"Manage the partner lookup cache."`
	Remove  RemoveCmd  `cmd:"" help:"Withdraw published offers by reference."`
	Config  ConfigCmd  `cmd:"" help:"Manage configuration."`
	Version VersionCmd `cmd:"" help:"Print version."`
	Proxies ProxiesCmd `cmd:"" help:"Proxy utilities."`
}

func NewCLI() *CLI {
	return &CLI{}
}
