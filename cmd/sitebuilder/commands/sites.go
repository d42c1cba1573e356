package commands

import (
	"fmt"

	"git.home.luguber.info/inful/sitebuilder/internal/inventory"
)

// SitesCmd implements the 'sites' command.
type SitesCmd struct{}

func (s *SitesCmd) Run(global *Global, root *CLI) error {
	cfg, err := LoadConfig(root)
	if err != nil {
		return err
	}
	return RunSites(global, inventory.New(cfg.Paths.Output, cfg.Paths.Build))
}

// RunSites prints one generated site name per line.
func RunSites(global *Global, inv *inventory.Inventory) error {
	sites, err := inv.ListAvailableSites()
	if err != nil {
		return err
	}
	for _, name := range sites {
		_, _ = fmt.Fprintln(global.out(), name)
	}
	return nil
}
