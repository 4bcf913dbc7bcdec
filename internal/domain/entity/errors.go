package entity

// The error types below classify every failure the gateway can report.
// They are translated to HTTP responses exactly once, at the API boundary;
// anything not covered by a type is treated as internal.

// ValidationError marks caller-fixable bad input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ConfigurationError marks a missing or unusable server-side setting. The
// message must never contain the setting's value.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// UpstreamError marks a non-success response from the indexer or the
// screening vendor. StatusCode is the upstream status, surfaced to the
// caller; the upstream body is logged server-side only.
type UpstreamError struct {
	StatusCode int
	Message    string
	Details    string
}

func (e *UpstreamError) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}

// InternalError marks an unexpected failure. Callers see the sanitized
// Message; the wrapped cause stays server-side.
type InternalError struct {
	Message string
	Err     error
}

func (e *InternalError) Error() string {
	return e.Message
}

func (e *InternalError) Unwrap() error {
	return e.Err
}
