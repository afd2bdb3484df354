package tracing

// Span names.
const (
	SpanSubmit   = "registration.submit"
	SpanRegister = "registration.http.post"
)

// Span attribute keys.
const (
	AttrAttemptID  = "attempt.id"
	AttrEndpoint   = "http.url"
	AttrHTTPStatus = "http.status_code"
	AttrUsername   = "registration.username"
	AttrOutcome    = "registration.outcome"
	AttrErrorType  = "error.type"
)

// Outcome values for AttrOutcome.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)
