package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/sitebuilder/internal/content"
)

// GenerateCmd implements the 'generate' command.
type GenerateCmd struct {
	Descriptor string `arg:"" type:"existingfile" help:"Site descriptor (.json, .yaml or .yml)"`
	Build      bool   `short:"b" help:"Build the site after generating it"`
	JSON       bool   `name:"json" help:"Print the result as JSON"`
}

func (g *GenerateCmd) Run(global *Global, root *CLI) error {
	cfg, err := LoadConfig(root)
	if err != nil {
		return err
	}
	rt, err := NewRuntime(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()
	return RunGenerate(context.Background(), global, rt, g.Descriptor, g.Build, g.JSON)
}

// RunGenerate generates the site described by the descriptor file and optionally builds it.
func RunGenerate(ctx context.Context, global *Global, rt *Runtime, descriptor string, andBuild, asJSON bool) error {
	desc, err := content.Load(descriptor)
	if err != nil {
		return err
	}
	res, err := rt.Generator.Generate(ctx, desc)
	if err != nil {
		return err
	}
	out := global.out()
	if asJSON {
		if err := printJSON(out, res); err != nil {
			return err
		}
	} else {
		_, _ = fmt.Fprintf(out, "%s: %s (%d pages) -> %s\n", res.SiteName, res.Message, res.PagesGenerated, res.OutputPath)
	}
	if !andBuild {
		return nil
	}
	return RunBuild(ctx, global, rt, res.SiteName, asJSON)
}
