package config

import "github.com/preston-bernstein/iss-spotter/internal/domain/spots"

// Config holds runtime configuration for the server.
type Config struct {
	Port         string
	PollInterval Duration
	Provider     string
	Observatory  spots.Observatory
	OpenNotify   OpenNotifyConfig
	Metrics      MetricsConfig
	MQTT         MQTTConfig
	Log          LogConfig
}

// OpenNotifyConfig controls how we talk to the open-notify API.
type OpenNotifyConfig struct {
	BaseURL string
	// Timeout bounds each request; zero or negative disables it.
	Timeout Duration
	Passes  int
}

// LogConfig selects the log handler.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:         envOrDefault(envPort, defaultPort),
		PollInterval: durationEnvOrDefault(envPollInterval, defaultPollInterval),
		Provider:     envOrDefault(envProvider, defaultProvider),
		Observatory:  loadObservatory(),
		OpenNotify:   loadOpenNotify(),
		Metrics:      loadMetrics(),
		MQTT:         loadMQTT(),
		Log: LogConfig{
			Level:  envOrDefault(envLogLevel, defaultLogLevel),
			Format: envOrDefault(envLogFormat, defaultLogFormat),
		},
	}
}

func loadObservatory() spots.Observatory {
	return spots.Observatory{
		Latitude:     floatEnvOrDefault(envLatitude, defaultLatitude),
		Longitude:    floatEnvOrDefault(envLongitude, defaultLongitude),
		Altitude:     floatEnvOrDefault(envAltitude, defaultAltitude),
		MinElevation: nonNegativeIntEnvOrDefault(envMinElevation, defaultMinElevation),
	}
}

func loadOpenNotify() OpenNotifyConfig {
	timeout := signedDurationEnvOrDefault(envOpenNotifyTimeout, defaultOpenNotifyTimeout)
	if timeout == 0 {
		timeout = -1
	}
	return OpenNotifyConfig{
		BaseURL: envOrDefault(envOpenNotifyBaseURL, defaultOpenNotifyBaseURL),
		Timeout: timeout,
		Passes:  intEnvOrDefault(envOpenNotifyPasses, defaultOpenNotifyPasses),
	}
}
