package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/presentation/export"
	"github.com/aretw0/arbor/pkg/domain"
)

// GenerateOptions contains the inputs shared by generate, expand, inspect and plot.
// Nil pointers fall back to the configuration, then to the grammar (or preset) itself.
type GenerateOptions struct {
	Source
	Iterations *uint
	Angle      *float64
	Step       *float64
	Seed       *int64

	// Format and Output only apply to generate. Output "" or "-" means stdout.
	Format string
	Output string
	Radius float64
}

// Result is one expansion and interpretation of a grammar.
type Result struct {
	Name       string
	Engine     *arbor.Engine
	Iterations uint
	Symbols    []domain.Symbol
	Branches   []domain.Branch
}

// iterations resolves the rewriting depth: flag, then a preset's recommendation, then the
// configuration. The configured maximum applies to all of them.
func (a *App) iterations(opts GenerateOptions) (uint, error) {
	n := a.Config.Iterations
	switch {
	case opts.Iterations != nil:
		n = *opts.Iterations
	case opts.Preset != "":
		if p, err := a.Registry.Get(opts.Preset); err == nil && p.Iterations > 0 {
			n = p.Iterations
		}
	}
	if limit := a.Config.MaxIterations; limit > 0 && n > limit {
		return 0, &domain.IterationLimitError{Requested: n, Max: limit}
	}
	return n, nil
}

// expand loads the grammar and rewrites it without interpreting.
func (a *App) expand(ctx context.Context, opts GenerateOptions) (*Result, error) {
	n, err := a.iterations(opts)
	if err != nil {
		return nil, err
	}
	eng, err := a.load(ctx, opts.Source, opts.Seed)
	if err != nil {
		return nil, err
	}
	a.applyOverrides(eng, opts.Angle, opts.Step)

	symbols, err := eng.Expand(n)
	if err != nil {
		return nil, err
	}
	return &Result{Name: opts.Name(), Engine: eng, Iterations: n, Symbols: symbols}, nil
}

// Build expands and interprets the grammar described by opts.
func (a *App) Build(ctx context.Context, opts GenerateOptions) (*Result, error) {
	res, err := a.expand(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res.Branches, err = res.Engine.Interpret(res.Symbols)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", res.Name, err)
	}
	a.Logger.Info("generated",
		"grammar", res.Name,
		"iterations", res.Iterations,
		"symbols", len(res.Symbols),
		"branches", len(res.Branches),
	)
	return res, nil
}

// Generate writes the branch geometry of a grammar in the requested format.
func (a *App) Generate(ctx context.Context, opts GenerateOptions) error {
	formatName := opts.Format
	if formatName == "" {
		formatName = a.Config.Format
	}
	format, err := export.ParseFormat(formatName)
	if err != nil {
		return err
	}

	res, err := a.Build(ctx, opts)
	if err != nil {
		return err
	}

	return writeOutput(opts.Output, a.Out, func(w io.Writer) error {
		if format == export.FormatMEL && opts.Radius > 0 {
			return export.WriteMEL(w, res.Branches, opts.Radius)
		}
		return export.Write(w, format, res.Branches)
	})
}

// Expand prints the rewritten symbol sequence.
func (a *App) Expand(ctx context.Context, opts GenerateOptions) error {
	res, err := a.expand(ctx, opts)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.Out, domain.SequenceString(res.Symbols))
	return err
}

// writeOutput runs write against stdout or against a file replaced atomically, so a
// failing write never leaves a truncated file behind.
func writeOutput(path string, stdout io.Writer, write func(io.Writer) error) error {
	if path == "" || path == "-" {
		return write(stdout)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
