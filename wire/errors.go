package wire

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrorKind classifies why a buffer could not be decoded.
type ErrorKind int

const (
	KindTruncatedInput ErrorKind = iota + 1
	KindMalformedVarint
	KindUnsupportedWireType
	KindInvalidFieldNumber
	KindRecursionLimitExceeded
)

// Decoding errors. A *DecodeError matches the sentinel of its kind with errors.Is.
var (
	ErrTruncatedInput         = errors.New("truncated input")
	ErrMalformedVarint        = errors.New("malformed varint")
	ErrUnsupportedWireType    = errors.New("unsupported wire type")
	ErrInvalidFieldNumber     = errors.New("invalid field number")
	ErrRecursionLimitExceeded = errors.New("recursion limit exceeded")
)

// Sentinel returns the package level error matching the kind.
func (k ErrorKind) Sentinel() error {
	switch k {
	case KindTruncatedInput:
		return ErrTruncatedInput
	case KindMalformedVarint:
		return ErrMalformedVarint
	case KindUnsupportedWireType:
		return ErrUnsupportedWireType
	case KindInvalidFieldNumber:
		return ErrInvalidFieldNumber
	case KindRecursionLimitExceeded:
		return ErrRecursionLimitExceeded
	default:
		return nil
	}
}

func (k ErrorKind) String() string {
	if s := k.Sentinel(); s != nil {
		return s.Error()
	}
	return "error kind " + strconv.Itoa(int(k))
}

// DecodeError represents a decoding failure at an absolute byte offset of the
// top-level buffer, with the path of enclosing field numbers when the failure
// happened inside a nested message.
type DecodeError struct {
	Kind      ErrorKind
	Offset    int
	FieldPath []FieldNumber // outermost first
	Err       error         // detail
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	b.WriteString(" at offset ")
	b.WriteString(strconv.Itoa(e.Offset))
	if len(e.FieldPath) > 0 {
		parts := make([]string, len(e.FieldPath))
		for i, n := range e.FieldPath {
			parts[i] = strconv.Itoa(int(n))
		}
		fmt.Fprintf(&b, " (field %s)", strings.Join(parts, "."))
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for compatibility.
func (e *DecodeError) Is(target error) bool {
	if _, ok := target.(*DecodeError); ok {
		return true
	}
	return target != nil && target == e.Kind.Sentinel()
}

func newDecodeError(kind ErrorKind, offset int, format string, args ...interface{}) *DecodeError {
	return &DecodeError{
		Kind:   kind,
		Offset: offset,
		Err:    fmt.Errorf(format, args...),
	}
}

// NewRecursionError reports that a nested message at offset would exceed maxDepth.
func NewRecursionError(offset, maxDepth int) error {
	return newDecodeError(KindRecursionLimitExceeded, offset, "nesting deeper than %d levels", maxDepth)
}

// WrapWithField prefixes the field path of a *DecodeError with fieldNumber.
// Other errors are returned unchanged.
func WrapWithField(err error, fieldNumber FieldNumber) error {
	if err == nil {
		return nil
	}

	var de *DecodeError
	if !errors.As(err, &de) {
		return err
	}

	return &DecodeError{
		Kind:      de.Kind,
		Offset:    de.Offset,
		FieldPath: append([]FieldNumber{fieldNumber}, de.FieldPath...),
		Err:       de.Err,
	}
}

// KindOf returns the kind of a decoding error, or 0 when err is not one.
func KindOf(err error) ErrorKind {
	var de *DecodeError
	if errors.As(err, &de) {
		return de.Kind
	}
	return 0
}
