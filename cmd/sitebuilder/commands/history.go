package commands

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"git.home.luguber.info/inful/sitebuilder/internal/history"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	Site  string `short:"s" help:"Only show operations for this site"`
	Limit int    `short:"n" help:"Maximum number of operations to show" default:"20"`
	JSON  bool   `name:"json" help:"Print the operations as JSON"`
}

func (h *HistoryCmd) Run(global *Global, root *CLI) error {
	cfg, err := LoadConfig(root)
	if err != nil {
		return err
	}
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()
	return RunHistory(context.Background(), global, store, h.Site, h.Limit, h.JSON)
}

// RunHistory prints the most recent recorded operations, newest first.
func RunHistory(ctx context.Context, global *Global, store *history.Store, site string, limit int, asJSON bool) error {
	ops, err := store.Recent(ctx, site, limit)
	if err != nil {
		return err
	}
	if asJSON {
		return printJSON(global.out(), ops)
	}
	tw := tabwriter.NewWriter(global.out(), 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "TIME\tTYPE\tSITE\tFILES\tDURATION\tMESSAGE")
	for _, e := range ops {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%dms\t%s\n",
			e.Timestamp.Format(time.RFC3339), e.Type, e.Site, e.Files, e.DurationMs, e.Message)
	}
	return tw.Flush()
}
