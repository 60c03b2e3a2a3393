package ports

import "time"

// Decision is the outcome of a rate-governor check.
type Decision struct {
	Allowed bool
	// Remaining is how many requests are left in the window when allowed.
	Remaining int
	// ResetSeconds is how long until the window frees a slot. On a denial it
	// is the time until the oldest surviving request leaves the window and is
	// always at least 1.
	ResetSeconds int
}

// RateGovernor gates requests with a sliding window per identifier. Allow
// never fails; an unknown identifier behaves as zero prior requests.
type RateGovernor interface {
	Allow(identifier string, maxRequests int, window time.Duration) Decision
}

// RatePolicy is a named (max, window) pair applied by middleware.
type RatePolicy struct {
	MaxRequests int
	Window      time.Duration
}

// Pre-configured policies: strict for credential-adjacent endpoints, general
// for the rest of the API.
var (
	StrictPolicy  = RatePolicy{MaxRequests: 5, Window: time.Minute}
	GeneralPolicy = RatePolicy{MaxRequests: 30, Window: time.Minute}
)
