package metrics

// Common metric attribute keys to keep telemetry consistent/searchable.
const (
	AttrMethod    = "method"
	AttrPath      = "path"
	AttrStatus    = "status"
	AttrProvider  = "provider"
	AttrKind      = "kind"
	AttrOutcome   = "outcome"
	AttrSink      = "sink"
	AttrSucceeded = "succeeded"
)

// Poller tick outcomes.
const (
	OutcomeOK        = "ok"
	OutcomeDelivered = "delivered"
	OutcomeFailed    = "failed"
	OutcomeLoading   = "loading"
)
