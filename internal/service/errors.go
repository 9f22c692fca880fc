package service

import "errors"

// --- Error Definitions ---
var (
	ErrPlanNotFound = errors.New("plan not found")
	ErrUserNotFound = errors.New("user not found")
	ErrNoActivePlan = errors.New("no active plan found")

	// ErrGenerationFailed is the single generic error the API returns for
	// any failure during plan generation. Detail stays server-side.
	ErrGenerationFailed = errors.New("plan generation failed")
)

// UpstreamError wraps a failed call to an external collaborator (the AI
// provider or the data store).
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return "upstream failure during " + e.Op + ": " + e.Err.Error()
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
