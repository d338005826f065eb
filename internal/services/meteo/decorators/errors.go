package decorators

import "errors"

// ErrNoModels is returned when every model in a comparison failed.
var ErrNoModels = errors.New("no forecast model returned data")
