package opennotify

import "time"

const (
	providerName       = "opennotify"
	defaultBaseURL     = "http://api.open-notify.org"
	passesPath         = "/iss/v1/"
	defaultPasses      = 5
	defaultHTTPTimeout = 10 * time.Second
	maxErrorBody       = 512
	successMessage     = "success"

	// an orbit takes about 92 minutes; anything past a day is garbage
	maxPassSeconds = int64(24 * time.Hour / time.Second)
)
