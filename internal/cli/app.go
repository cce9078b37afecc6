package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/arbor/internal/adapters/file"
	"github.com/aretw0/arbor/internal/config"
	"github.com/aretw0/arbor/pkg/ports"
	"github.com/aretw0/arbor/pkg/registry"
)

// App carries what every command needs: settings, logging, grammar access and the
// preset catalog. Commands write their results to Out and status lines to Err.
type App struct {
	Config   config.Config
	Logger   *slog.Logger
	Reader   ports.GrammarReader
	Watcher  ports.Watchable
	Registry *registry.Registry
	Out      io.Writer
	Err      io.Writer
	Debug    bool
}

// NewApp builds an App reading grammars from the local filesystem. Presets listed in
// cfg.PresetsFile are added to the built-in catalog.
func NewApp(cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	reader := file.NewReader()
	reader.Logger = logger

	app := &App{
		Config:   cfg,
		Logger:   logger,
		Reader:   reader,
		Watcher:  reader,
		Registry: registry.NewDefault(),
		Out:      os.Stdout,
		Err:      os.Stderr,
	}

	if cfg.PresetsFile != "" {
		data, err := os.ReadFile(cfg.PresetsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read presets: %w", err)
		}
		n, err := app.Registry.LoadCatalog(data)
		if err != nil {
			return nil, fmt.Errorf("failed to load presets from %s: %w", cfg.PresetsFile, err)
		}
		logger.Debug("presets loaded", "file", cfg.PresetsFile, "count", n)
	}
	return app, nil
}
