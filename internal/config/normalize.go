package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeEngine()
	c.normalizeExport()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.ScratchDir) == "" {
		c.Paths.ScratchDir = defaultScratchDir
	}
	if c.Paths.ScratchDir, err = expandPath(c.Paths.ScratchDir); err != nil {
		return fmt.Errorf("paths.scratch_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeEngine() {
	if strings.TrimSpace(c.Engine.Binary) == "" {
		if value, ok := os.LookupEnv("SNIP_ENGINE_BINARY"); ok {
			c.Engine.Binary = value
		} else {
			c.Engine.Binary = defaultEngineBinary
		}
	}
	c.Engine.Binary = strings.TrimSpace(c.Engine.Binary)
	if strings.TrimSpace(c.Engine.ProbeBinary) == "" {
		c.Engine.ProbeBinary = defaultProbeBinary
	}
	c.Engine.ProbeBinary = strings.TrimSpace(c.Engine.ProbeBinary)
	if c.Engine.LoadTimeout <= 0 {
		c.Engine.LoadTimeout = defaultEngineLoadTimeout
	}
}

func (c *Config) normalizeExport() {
	if c.Export.MaxInputMiB <= 0 {
		c.Export.MaxInputMiB = defaultMaxInputMiB
	}
	if c.Export.StallTimeoutSeconds <= 0 {
		c.Export.StallTimeoutSeconds = defaultStallTimeoutSeconds
	}
	if c.Export.ResolveDelayMS < 0 {
		c.Export.ResolveDelayMS = defaultResolveDelayMS
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
