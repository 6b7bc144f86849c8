package witness

import (
	"errors"
	"os"

	"github.com/rs/zerolog"
)

// Error taxonomy. MalformedInput and OutOfRange are recoverable by
// resubmission; a ConstraintViolation on well-formed input means a lying
// witness or a circuit bug, and is logged distinctly for that reason.
var (
	ErrMalformedInput      = errors.New("malformed input")
	ErrOutOfRange          = errors.New("value out of range")
	ErrConstraintViolation = errors.New("constraint violation")
)

var log = zerolog.New(os.Stderr).With().Timestamp().Str("component", "witness").Logger()
