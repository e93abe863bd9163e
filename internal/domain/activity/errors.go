package activity

import "errors"

// Navigator domain errors. Empty result sets are valid states, not
// errors.
var (
	ErrCannotDrill        = errors.New("only aggregated rows above day level can be drilled into")
	ErrInvalidGranularity = errors.New("granularity must be one of: day, week, month, year")
)
