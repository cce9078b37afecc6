package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/arbor/internal/presentation/export"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/node"
)

// WatchOptions configures development mode: a grammar file bound to node attributes,
// regenerated into Output every time the file changes.
type WatchOptions struct {
	Path       string
	Output     string
	Format     string
	Radius     float64
	Attributes node.Attributes
	Seed       *int64

	// OnRender, if set, is called after every regeneration attempt.
	OnRender func(branches int, err error)
}

// Watch regenerates the output whenever the grammar changes, until ctx is cancelled.
// A grammar that fails to load or interpret is reported and the previous output is kept.
func (a *App) Watch(ctx context.Context, opts WatchOptions) error {
	if opts.Path == "" {
		return fmt.Errorf("%w: watch needs a grammar file", domain.ErrInvalidRequest)
	}
	formatName := opts.Format
	if formatName == "" {
		formatName = a.Config.Format
	}
	format, err := export.ParseFormat(formatName)
	if err != nil {
		return err
	}

	nodeOpts := []node.Option{node.WithLogger(a.Logger)}
	if seed := firstSeed(opts.Seed, a.Config.Seed); seed != nil {
		nodeOpts = append(nodeOpts, node.WithSeed(*seed))
	}
	n := node.New(a.Reader, nodeOpts...)

	attrs := opts.Attributes
	attrs.Grammar = opts.Path

	changes, err := a.Watcher.Watch(ctx, opts.Path)
	if err != nil {
		return err
	}

	render := func() {
		branches, err := n.Compute(ctx, attrs)
		if err == nil {
			err = writeOutput(opts.Output, a.Out, func(w io.Writer) error {
				if format == export.FormatMEL && opts.Radius > 0 {
					return export.WriteMEL(w, branches, opts.Radius)
				}
				return export.Write(w, format, branches)
			})
		}
		if err != nil {
			a.Logger.Error("regeneration failed, keeping previous output", "path", opts.Path, "err", err)
			printSystemMessage(a.Err, "Error in '%s': %v", opts.Path, err)
		} else {
			a.Logger.Info("regenerated", "path", opts.Path, "branches", len(branches), "computations", n.Computations())
			printSystemMessage(a.Err, "Wrote %d branches (iterations %d).", len(branches), attrs.Iterations())
		}
		if opts.OnRender != nil {
			opts.OnRender(len(branches), err)
		}
	}

	render()
	printSystemMessage(a.Err, "Watching '%s' for changes...", opts.Path)

	for {
		select {
		case <-ctx.Done():
			a.Logger.Info("Stopping watcher")
			return nil
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			a.Logger.Info("Change detected, regenerating", "path", opts.Path)
			render()
		}
	}
}

func firstSeed(seeds ...*int64) *int64 {
	for _, s := range seeds {
		if s != nil {
			return s
		}
	}
	return nil
}
