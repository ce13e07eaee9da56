package egov

import "fmt"

// FailureReason tags the navigation step a fetch died at. Tokens are
// single-use and page-specific, so callers must restart a failed navigation
// from the beginning rather than retrying the failed step.
type FailureReason string

const (
	ReasonLoginPageUnreachable     FailureReason = "login page unreachable"
	ReasonLoginRequestFailed       FailureReason = "login request failed"
	ReasonNoApplicationLink        FailureReason = "no application link after login"
	ReasonDashboardPostbackFailed  FailureReason = "dashboard postback failed"
	ReasonAttendancePostbackFailed FailureReason = "attendance postback failed"
	ReasonUnparseableResponse      FailureReason = "unparseable response html"
)

// Authentication reports whether the failure most likely means invalid
// credentials. A successful login always yields either the dashboard marker
// or the application-list link, so their absence is treated as an
// authentication failure rather than a network fault.
func (r FailureReason) Authentication() bool {
	return r == ReasonNoApplicationLink
}

// Parse reports whether the failure came from malformed portal markup
// rather than the network.
func (r FailureReason) Parse() bool {
	return r == ReasonUnparseableResponse
}

type NavError struct {
	Reason FailureReason
	// http status of the failing step, 0 when the request never completed
	Status int
	Err    error
}

func (e *NavError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Reason, e.Err)
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s: status %d", e.Reason, e.Status)
	}
	return string(e.Reason)
}

func (e *NavError) Unwrap() error {
	return e.Err
}
