package sixel

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a CodeError the way the libsixel C core reports
// status codes: every failure boils down to one of these five kinds.
type Kind int

const (
	// BadArgument marks null pointers, unsupported depths under a
	// dense/certlut policy, unknown pixel formats, reqcolors < 1.
	BadArgument Kind = iota
	// BadAllocation marks an allocator that returned nil.
	BadAllocation
	// BadIntegerOverflow marks width/height/chunk sizes that exceed
	// representable bounds.
	BadIntegerOverflow
	// BadInput marks an impossible palette or malformed float range.
	BadInput
	// RuntimeError marks pool-creation or LUT-construction failures
	// that are not simple argument mistakes.
	RuntimeError
)

func (k Kind) String() string {
	switch k {
	case BadArgument:
		return "BadArgument"
	case BadAllocation:
		return "BadAllocation"
	case BadIntegerOverflow:
		return "BadIntegerOverflow"
	case BadInput:
		return "BadInput"
	case RuntimeError:
		return "RuntimeError"
	default:
		return "UnknownKind"
	}
}

// Sentinel errors, one per Kind, so callers can use errors.Is against
// the kind without reaching into CodeError fields.
var (
	ErrBadArgument       = errors.New("sixel: bad argument")
	ErrBadAllocation     = errors.New("sixel: bad allocation")
	ErrBadIntegerOverflow = errors.New("sixel: integer overflow")
	ErrBadInput          = errors.New("sixel: bad input")
	ErrRuntimeError      = errors.New("sixel: runtime error")
)

func sentinelFor(k Kind) error {
	switch k {
	case BadArgument:
		return ErrBadArgument
	case BadAllocation:
		return ErrBadAllocation
	case BadIntegerOverflow:
		return ErrBadIntegerOverflow
	case BadInput:
		return ErrBadInput
	default:
		return ErrRuntimeError
	}
}

// CodeError is the error type surfaced by every exported operation.
// It carries the classifying Kind alongside a diagnostic Message,
// replacing the original C core's single process-wide
// get_additional_message slot with a value attached to the error
// itself.
type CodeError struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *CodeError) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *CodeError) Unwrap() error {
	if e.cause != nil {
		return e.cause
	}
	return sentinelFor(e.Kind)
}

// newError builds a CodeError wrapping the sentinel for kind with call
// context, in the errors.Wrap style used throughout this package.
func newError(kind Kind, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return &CodeError{
		Kind:    kind,
		Message: msg,
		cause:   errors.Wrap(sentinelFor(kind), msg),
	}
}
