package ftprime

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error message formats for the taxonomy of failures a Recorder can
// raise. Kept as exported format constants in the teacher's style
// (see errors.go in the teacher repository) so that tests can assert
// against them with t.Errorf(SomeFormat, ...).
const (
	DuplicateIDFormat            = "input id %d already registered"
	UnknownIDFormat              = "input id %d not registered"
	InvalidEdgeFormat            = "invalid edge [%g, %g) parent=%d child=%d: %s"
	InvalidRowFormat             = "invalid row: %s"
	ParentMismatchFormat         = "segment merge parent mismatch: list parent %d, record parent %d"
	SequenceLengthMismatchFormat = "sequence_length %g does not match prior history sequence_length %g"
	MissingSequenceLengthFormat  = "sequence_length must be given when no prior history is supplied"
)

// Kind classifies a recorder error so callers can branch on cause
// without string-matching messages.
type Kind uint8

// The error kinds named in the specification's error taxonomy.
const (
	KindDuplicateID Kind = iota
	KindUnknownID
	KindInvalidEdge
	KindInvalidRow
	KindParentMismatch
	KindSequenceLengthMismatch
	KindMissingSequenceLength
)

func (k Kind) String() string {
	switch k {
	case KindDuplicateID:
		return "DuplicateId"
	case KindUnknownID:
		return "UnknownId"
	case KindInvalidEdge:
		return "InvalidEdge"
	case KindInvalidRow:
		return "InvalidRow"
	case KindParentMismatch:
		return "ParentMismatch"
	case KindSequenceLengthMismatch:
		return "SequenceLengthMismatch"
	case KindMissingSequenceLength:
		return "MissingSequenceLength"
	}
	return "UnknownKind"
}

// RecorderError is the concrete error type raised by every failure
// mode named in the specification. Use errors.Cause (or IsKind) to
// recover it from an error that has since been wrapped.
type RecorderError struct {
	Kind Kind
	msg  string
}

func (e *RecorderError) Error() string {
	return e.msg
}

// IsKind reports whether err, or any error it wraps, is a
// *RecorderError of the given kind.
func IsKind(err error, k Kind) bool {
	re, ok := errors.Cause(err).(*RecorderError)
	return ok && re.Kind == k
}

func errDuplicateID(inputID int) error {
	return &RecorderError{KindDuplicateID, fmt.Sprintf(DuplicateIDFormat, inputID)}
}

func errUnknownID(inputID int) error {
	return &RecorderError{KindUnknownID, fmt.Sprintf(UnknownIDFormat, inputID)}
}

func errInvalidEdge(left, right float64, parent, child int, reason string) error {
	return &RecorderError{KindInvalidEdge, fmt.Sprintf(InvalidEdgeFormat, left, right, parent, child, reason)}
}

func errInvalidRow(reason string) error {
	return &RecorderError{KindInvalidRow, fmt.Sprintf(InvalidRowFormat, reason)}
}

func errParentMismatch(listParent, recordParent int) error {
	return &RecorderError{KindParentMismatch, fmt.Sprintf(ParentMismatchFormat, listParent, recordParent)}
}

func errSequenceLengthMismatch(got, want float64) error {
	return &RecorderError{KindSequenceLengthMismatch, fmt.Sprintf(SequenceLengthMismatchFormat, got, want)}
}

func errMissingSequenceLength() error {
	return &RecorderError{KindMissingSequenceLength, MissingSequenceLengthFormat}
}
