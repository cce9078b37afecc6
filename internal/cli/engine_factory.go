package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/pkg/domain"
)

// Source names the grammar a command works on: a file path or a registered preset.
type Source struct {
	Path   string
	Preset string
}

// Name labels the source in logs and summaries.
func (s Source) Name() string {
	if s.Preset != "" {
		return s.Preset
	}
	return filepath.Base(s.Path)
}

func (s Source) isYAML() bool {
	switch strings.ToLower(filepath.Ext(s.Path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// createEngine initializes an engine with standard CLI conventions.
func (a *App) createEngine(name string, seed *int64) *arbor.Engine {
	opts := []arbor.Option{
		arbor.WithLogger(a.Logger),
		arbor.WithName(name),
	}
	if a.Debug {
		opts = append(opts, arbor.WithLifecycleHooks(a.Hooks()))
	}
	if seed != nil {
		opts = append(opts, arbor.WithSeed(*seed))
	} else if a.Config.Seed != nil {
		opts = append(opts, arbor.WithSeed(*a.Config.Seed))
	}
	return arbor.New(opts...)
}

// load creates an engine and loads the source into it. YAML is chosen by file extension.
func (a *App) load(ctx context.Context, src Source, seed *int64) (*arbor.Engine, error) {
	eng := a.createEngine(src.Name(), seed)

	switch {
	case src.Path != "" && src.Preset != "":
		return nil, fmt.Errorf("%w: a grammar file and --preset cannot be used together", domain.ErrInvalidRequest)
	case src.Preset != "":
		p, err := a.Registry.Get(src.Preset)
		if err != nil {
			return nil, err
		}
		if err := eng.LoadProgram(p.Grammar); err != nil {
			return nil, fmt.Errorf("preset %s: %w", p.Name, err)
		}
	case src.Path != "":
		text, err := a.Reader.ReadGrammar(ctx, src.Path)
		if err != nil {
			return nil, err
		}
		if src.isYAML() {
			err = eng.LoadProgramYAML([]byte(text))
		} else {
			err = eng.LoadProgram(text)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", src.Path, err)
		}
	default:
		return nil, fmt.Errorf("%w: a grammar file or --preset is required", domain.ErrInvalidRequest)
	}
	return eng, nil
}

// applyOverrides sets angle and step: explicit values win over the configuration, which
// wins over the grammar's own defaults.
func (a *App) applyOverrides(eng *arbor.Engine, angle, step *float64) {
	if angle == nil {
		angle = a.Config.Angle
	}
	if step == nil {
		step = a.Config.Step
	}
	if angle != nil {
		eng.SetDefaultAngle(*angle)
	}
	if step != nil {
		eng.SetDefaultStep(*step)
	}
}

// Hooks returns the lifecycle traces enabled by --debug, or no hooks.
func (a *App) Hooks() domain.LifecycleHooks {
	if !a.Debug {
		return domain.LifecycleHooks{}
	}
	return createDebugHooks(a.Logger)
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnLoad: func(e *domain.LoadEvent) {
			logger.Debug("Grammar Loaded", "generation", e.Generation, "rules", e.Rules, "stochastic", e.IsStochastic)
		},
		OnExpand: func(e *domain.ExpandEvent) {
			logger.Debug("Expanded", "iterations", e.Iterations, "symbols", e.Symbols, "duration", e.Duration)
		},
		OnInterpret: func(e *domain.InterpretEvent) {
			if e.IsError {
				logger.Debug("Interpret (Error)", "angle", e.Angle, "step", e.Step)
				return
			}
			logger.Debug("Interpreted", "branches", e.Branches, "duration", e.Duration)
		},
	}
}
