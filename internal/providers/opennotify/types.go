package opennotify

type passesResponse struct {
	Message  string       `json:"message"`
	Request  requestEcho  `json:"request"`
	Response []passRecord `json:"response"`
}

type requestEcho struct {
	Altitude  float64 `json:"altitude"`
	Datetime  int64   `json:"datetime"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Passes    int     `json:"passes"`
}

type passRecord struct {
	Duration     int64 `json:"duration"`
	RiseTime     int64 `json:"risetime"`
	MaxElevation int   `json:"max_elevation,omitempty"`
}
