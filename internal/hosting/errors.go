package hosting

import "errors"

// Typed fetch errors. The pipeline branches on these explicitly instead of
// letting failures cross component boundaries as opaque faults.
var (
	// ErrNotFound means the handle does not exist on the hosting service.
	ErrNotFound = errors.New("hosting: profile not found")

	// ErrRateLimited means the hosting API refused the request due to
	// rate limiting.
	ErrRateLimited = errors.New("hosting: rate limited")

	// ErrUnavailable covers network failures and unexpected statuses.
	ErrUnavailable = errors.New("hosting: service unavailable")
)
