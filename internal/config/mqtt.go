package config

// MQTTConfig controls publishing delivered spots to a broker.
type MQTTConfig struct {
	Enabled     bool
	Broker      string
	Port        int
	ClientID    string
	TopicPrefix string
}

func loadMQTT() MQTTConfig {
	return MQTTConfig{
		Enabled:     boolEnvOrDefault(envMQTTEnabled, false),
		Broker:      envOrDefault(envMQTTBroker, defaultMQTTBroker),
		Port:        intEnvOrDefault(envMQTTPort, defaultMQTTPort),
		ClientID:    envOrDefault(envMQTTClientID, defaultMQTTClientID),
		TopicPrefix: envOrDefault(envMQTTTopicPrefix, defaultMQTTTopicPrefix),
	}
}
