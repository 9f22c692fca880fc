package schema

// FormatError reports generative-model output that does not parse or does
// not match the expected plan shape. The raw model text is kept for
// server-side diagnostics and is never part of the error string shown to
// callers.
type FormatError struct {
	Reason string
	Raw    string `json:"-"`
}

func (e *FormatError) Error() string {
	return "invalid plan format: " + e.Reason
}

// ValidationError reports caller-supplied input that fails validation,
// e.g. a swap-request list containing non-string items.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}
