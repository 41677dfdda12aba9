package sentinel

import "errors"

// Sentinel errors for the failure classes of the time core. Typed errors
// elsewhere carry line numbers and instants, and unwrap to one of these so
// callers can match with errors.Is.
//
//   - ErrStaleInstant: instant is beyond the staleness horizon while strict mode is on
//   - ErrCsvFormat: malformed column count or unparsable field in a loaded table
//   - ErrCsvStructural: out-of-order or duplicate rows in a loaded table
//   - ErrInvalidConfiguration: rejected setting or absent provider
var (
	ErrStaleInstant         = errors.New("stale instant")
	ErrCsvFormat            = errors.New("csv format")
	ErrCsvStructural        = errors.New("csv structure")
	ErrInvalidConfiguration = errors.New("invalid configuration")
)
