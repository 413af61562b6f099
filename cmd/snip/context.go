package main

import (
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"snip/internal/config"
	"snip/internal/engine"
	"snip/internal/exporting"
	"snip/internal/history"
	"snip/internal/logging"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error

	handleOnce sync.Once
	handle     *engine.Handle
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	c.loggerOnce.Do(func() {
		c.logger, c.loggerErr = logging.New(logging.Options{
			Level:       cfg.Logging.Level,
			Format:      cfg.Logging.Format,
			OutputPaths: []string{filepath.Join(cfg.Paths.LogDir, "snip.log")},
		})
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) engineHandle() (*engine.Handle, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	c.handleOnce.Do(func() {
		c.handle = engine.NewHandle(func() *engine.Session {
			runtime := engine.NewFFmpegRuntime(cfg.Engine.Binary, cfg.Engine.ProbeBinary, cfg.Paths.ScratchDir)
			return engine.NewSession(runtime, logger)
		})
	})
	return c.handle, nil
}

func (c *commandContext) openStore() (*history.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return history.Open(cfg)
}

func (c *commandContext) newOrchestrator(store *history.Store) (*exporting.Orchestrator, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	handle, err := c.engineHandle()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	return exporting.New(handle, store, logger, exporting.Options{
		StallTimeout:  time.Duration(cfg.Export.StallTimeoutSeconds) * time.Second,
		ResolveDelay:  time.Duration(cfg.Export.ResolveDelayMS) * time.Millisecond,
		LoadTimeout:   time.Duration(cfg.Engine.LoadTimeout) * time.Second,
		MaxInputBytes: cfg.MaxInputBytes(),
	}), nil
}
