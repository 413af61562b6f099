package config

import _ "embed"

//go:embed sample_config.toml
var sampleConfig string

const (
	defaultScratchDir          = "~/.local/share/snip/scratch"
	defaultLogDir              = "~/.local/share/snip/logs"
	defaultOutputDir           = "~/snip"
	defaultEngineBinary        = "ffmpeg"
	defaultProbeBinary         = "ffprobe"
	defaultEngineLoadTimeout   = 30
	defaultMaxInputMiB         = 1024
	defaultStallTimeoutSeconds = 5
	defaultResolveDelayMS      = 1000
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			ScratchDir: defaultScratchDir,
			LogDir:     defaultLogDir,
			OutputDir:  defaultOutputDir,
		},
		Engine: Engine{
			Binary:      defaultEngineBinary,
			ProbeBinary: defaultProbeBinary,
			LoadTimeout: defaultEngineLoadTimeout,
		},
		Export: Export{
			MaxInputMiB:         defaultMaxInputMiB,
			StallTimeoutSeconds: defaultStallTimeoutSeconds,
			ResolveDelayMS:      defaultResolveDelayMS,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

// SampleConfig returns the annotated sample configuration file contents.
func SampleConfig() string {
	return sampleConfig
}
