package output

import "errors"

// Header is the canonical column order for summary outputs.
// Keep this as the single source of truth; all writers use it.
var Header = []string{"source", "rank", "count", "percent"}

// ErrUnsupportedOutputFormat marks an unrecognized --output value.
var ErrUnsupportedOutputFormat = errors.New("unsupported output format")
