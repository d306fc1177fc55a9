package plantmap

import "errors"

// Error taxonomy surfaced to callers. The HTTP layer maps these to status
// codes with errors.Is; everything else wraps them with detail via fmt.Errorf.
var (
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("association not found")
	ErrInvalidInterval = errors.New("end_time must be greater than start_time")
	ErrStorage         = errors.New("storage failure")
)
