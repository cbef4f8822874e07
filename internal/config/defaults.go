package config

const (
	defaultDataDir                   = "~/.local/share/molmine"
	defaultLogDir                    = "~/.local/share/molmine/logs"
	defaultRecognitionBaseURL        = "http://localhost:5000"
	defaultRecognitionTimeoutSeconds = 30
	defaultLogFormat                 = "console"
	defaultLogLevel                  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Recognition: Recognition{
			BaseURL:        defaultRecognitionBaseURL,
			TimeoutSeconds: defaultRecognitionTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
