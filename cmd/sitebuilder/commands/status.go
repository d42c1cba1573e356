package commands

import (
	"fmt"
	"text/tabwriter"

	"git.home.luguber.info/inful/sitebuilder/internal/inventory"
)

// StatusCmd implements the 'status' command.
type StatusCmd struct {
	Site string `arg:"" help:"Site name"`
	JSON bool   `name:"json" help:"Print the status as JSON"`
}

func (s *StatusCmd) Run(global *Global, root *CLI) error {
	cfg, err := LoadConfig(root)
	if err != nil {
		return err
	}
	return RunStatus(global, inventory.New(cfg.Paths.Output, cfg.Paths.Build), s.Site, s.JSON)
}

// RunStatus prints the build status of one site.
func RunStatus(global *Global, inv *inventory.Inventory, site string, asJSON bool) error {
	st, err := inv.BuildStatus(site)
	if err != nil {
		return err
	}
	if asJSON {
		return printJSON(global.out(), st)
	}
	tw := tabwriter.NewWriter(global.out(), 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "Site:\t%s\n", st.SiteName)
	_, _ = fmt.Fprintf(tw, "Status:\t%s\n", st.Status)
	if st.BuildPath != nil {
		_, _ = fmt.Fprintf(tw, "Path:\t%s\n", *st.BuildPath)
	}
	_, _ = fmt.Fprintf(tw, "Files:\t%d\n", st.FileCount)
	_, _ = fmt.Fprintf(tw, "Message:\t%s\n", st.Message)
	return tw.Flush()
}
