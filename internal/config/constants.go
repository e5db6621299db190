package config

import "time"

const (
	envPort         = "PORT"
	envPollInterval = "POLL_INTERVAL"
	envProvider     = "PROVIDER"

	envLatitude     = "OBSERVATORY_LATITUDE"
	envLongitude    = "OBSERVATORY_LONGITUDE"
	envAltitude     = "OBSERVATORY_ALTITUDE"
	envMinElevation = "OBSERVATORY_MIN_ELEVATION"

	envOpenNotifyBaseURL = "OPEN_NOTIFY_BASE_URL"
	envOpenNotifyTimeout = "OPEN_NOTIFY_TIMEOUT"
	envOpenNotifyPasses  = "OPEN_NOTIFY_PASSES"

	envMetricsPort  = "METRICS_PORT"
	envMetricsOn    = "METRICS_ENABLED"
	envOtelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService  = "OTEL_SERVICE_NAME"
	envOtelInsecure = "OTEL_EXPORTER_OTLP_INSECURE"

	envMQTTEnabled     = "MQTT_ENABLED"
	envMQTTBroker      = "MQTT_BROKER"
	envMQTTPort        = "MQTT_PORT"
	envMQTTClientID    = "MQTT_CLIENT_ID"
	envMQTTTopicPrefix = "MQTT_TOPIC_PREFIX"

	envLogLevel  = "LOG_LEVEL"
	envLogFormat = "LOG_FORMAT"

	defaultPort = "4000"
	// open-notify refreshes predictions rarely; polling faster only burns requests.
	defaultPollInterval = 10 * Duration(time.Minute)
	defaultProvider     = "fixture"

	// Royal Observatory, Greenwich.
	defaultLatitude     = 51.4769
	defaultLongitude    = -0.0005
	defaultAltitude     = 46.0
	defaultMinElevation = 10

	defaultOpenNotifyBaseURL = "http://api.open-notify.org"
	defaultOpenNotifyTimeout = 10 * Duration(time.Second)
	defaultOpenNotifyPasses  = 5

	defaultMetricsPort = "9090"
	defaultServiceName = "iss-spotter"

	defaultMQTTBroker      = "localhost"
	defaultMQTTPort        = 1883
	defaultMQTTClientID    = "iss-spotter"
	defaultMQTTTopicPrefix = "iss-spotter"

	defaultLogLevel  = "info"
	defaultLogFormat = "text"
)
