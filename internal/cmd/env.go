package cmd

import (
	"context"
	"fmt"

	"github.com/ddbaker/papyru2/internal/apppath"
	"github.com/ddbaker/papyru2/internal/config"
	"github.com/ddbaker/papyru2/internal/engine"
	"github.com/ddbaker/papyru2/internal/logging"
	"github.com/ddbaker/papyru2/internal/prefs"
)

// cmdEnv bundles everything a subcommand needs to touch the document
// tree: resolved application paths, effective config, a logger writing
// to the app's log directory, and a started engine.
type cmdEnv struct {
	paths  *apppath.Paths
	cfg    *config.Config
	logger *logging.Logger
	engine *engine.Engine

	prefsFile string
	prefs     prefs.Prefs
}

// resolvePaths maps the layout flags onto the path resolver.
func resolvePaths() (*apppath.Paths, error) {
	override := apppath.OverrideNone
	switch {
	case flagPortable:
		override = apppath.OverridePortable
	case flagInstalled:
		override = apppath.OverrideInstalled
	}
	return apppath.Resolve(override)
}

// newEnv assembles and starts an engine for a one-shot command. The
// caller must invoke close when done.
func newEnv() (*cmdEnv, func(), error) {
	paths, err := resolvePaths()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve application paths: %w", err)
	}

	cfg := config.Get()

	var logger *logging.Logger
	if cfg.Logging.Enabled {
		logDir := cfg.Paths.ResolveLogDir(paths.AppHome)
		logger, err = logging.NewLogger(logDir, cfg.Logging.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
	} else {
		logger = logging.NopLogger()
	}

	documentRoot := cfg.Paths.ResolveDocumentRoot(paths.AppHome)
	eng, err := engine.New(cfg, documentRoot, nil, logger)
	if err != nil {
		logger.Close()
		return nil, nil, fmt.Errorf("failed to assemble engine: %w", err)
	}
	if err := eng.Start(context.Background()); err != nil {
		logger.Close()
		return nil, nil, fmt.Errorf("failed to start engine: %w", err)
	}

	env := &cmdEnv{
		paths:     paths,
		cfg:       cfg,
		logger:    logger,
		engine:    eng,
		prefsFile: cfg.Paths.ResolvePrefsFile(paths.AppHome),
	}
	env.prefs, _ = prefs.Load(env.prefsFile)

	closeFn := func() {
		eng.Shutdown()
		logger.Close()
	}
	return env, closeFn, nil
}

// savePrefs persists the last-opened path; failures are logged, not fatal.
func (e *cmdEnv) savePrefs() {
	if err := prefs.Save(e.prefsFile, e.prefs); err != nil {
		e.logger.Warn("failed to save preferences", "path", e.prefsFile, "error", err)
	}
}
