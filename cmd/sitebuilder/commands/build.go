package commands

import (
	"context"
	"fmt"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Site string `arg:"" help:"Name of the generated site to build"`
	JSON bool   `name:"json" help:"Print the result as JSON"`
}

func (b *BuildCmd) Run(global *Global, root *CLI) error {
	cfg, err := LoadConfig(root)
	if err != nil {
		return err
	}
	rt, err := NewRuntime(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()
	return RunBuild(context.Background(), global, rt, b.Site, b.JSON)
}

// RunBuild builds one site and prints the result.
func RunBuild(ctx context.Context, global *Global, rt *Runtime, site string, asJSON bool) error {
	res, err := rt.Builder.Build(ctx, site)
	if err != nil {
		return err
	}
	if asJSON {
		return printJSON(global.out(), res)
	}
	_, _ = fmt.Fprintf(global.out(), "%s: %s (%d files in %dms) -> %s\n",
		res.SiteName, res.Message, res.FileCount, res.BuildTimeMs, res.BuildPath)
	return nil
}
