package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/aretw0/arbor/internal/compiler"
	"github.com/aretw0/arbor/internal/presentation/graph"
	"github.com/aretw0/arbor/internal/presentation/tui"
	"github.com/aretw0/arbor/pkg/domain"
)

// Inspect prints a markdown summary of the grammar and of its expansion, rendered with
// glamour when Out is a terminal. With mermaid set, the rule graph is printed instead.
func (a *App) Inspect(ctx context.Context, opts GenerateOptions, mermaid bool) error {
	if mermaid {
		eng, err := a.load(ctx, opts.Source, opts.Seed)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(a.Out, graph.GenerateMermaid(eng.Program()))
		return err
	}

	res, err := a.Build(ctx, opts)
	if err != nil {
		return err
	}
	box := domain.Bounds(res.Branches)
	stats := &tui.Stats{
		Iterations: res.Iterations,
		Symbols:    len(res.Symbols),
		Branches:   len(res.Branches),
		Bounds: [2][3]float64{
			{box.Min.X, box.Min.Y, box.Min.Z},
			{box.Max.X, box.Max.Y, box.Max.Z},
		},
	}
	markdown := tui.Summary(res.Name, res.Engine.Program(), stats)

	if isTerminal(a.Out) {
		rendered, err := tui.NewRenderer()(markdown)
		if err == nil {
			markdown = rendered
		}
	}
	_, err = fmt.Fprint(a.Out, markdown)
	return err
}

// Validate parses the grammar and interprets its expansion, which also catches brackets
// that pop an empty stack.
func (a *App) Validate(ctx context.Context, opts GenerateOptions) error {
	if _, err := a.Build(ctx, opts); err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "Grammar %s is valid! ✅\n", opts.Name())
	return nil
}

// FmtOptions selects how Fmt prints a grammar.
type FmtOptions struct {
	Source
	YAML  bool
	Write bool
}

// Fmt rewrites a grammar in canonical form, to Out or in place.
func (a *App) Fmt(ctx context.Context, opts FmtOptions) error {
	eng, err := a.load(ctx, opts.Source, nil)
	if err != nil {
		return err
	}

	// In-place rewrites keep the file's syntax.
	var out []byte
	if opts.YAML || (opts.Write && opts.isYAML()) {
		out, err = compiler.FormatYAML(eng.Program())
		if err != nil {
			return err
		}
	} else {
		out = []byte(compiler.Format(eng.Program()))
	}

	if !opts.Write {
		_, err = a.Out.Write(out)
		return err
	}
	if opts.Path == "" {
		return fmt.Errorf("%w: --write needs a grammar file", domain.ErrInvalidRequest)
	}
	info, err := os.Stat(opts.Path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(opts.Path, out, info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write %s: %w", opts.Path, err)
	}
	a.Logger.Info("formatted", "path", opts.Path)
	return nil
}

// Presets lists the catalog as a table.
func (a *App) Presets() error {
	tw := tabwriter.NewWriter(a.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tITERATIONS\tDESCRIPTION")
	for _, p := range a.Registry.List() {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", p.Name, p.Iterations, p.Description)
	}
	return tw.Flush()
}
