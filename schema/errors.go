package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds shared by the codec, the registry and the calculators.
// Callers match them with errors.Is.
var (
	ErrVersionMismatch = errors.New("vector version mismatch")
	ErrUnknownMetric   = errors.New("unknown metric")
	ErrUnknownValue    = errors.New("unknown metric value")
	ErrDuplicateMetric = errors.New("duplicate metric")
	ErrMissingMetric   = errors.New("missing required metric")
	ErrMalformed       = errors.New("malformed vector")
	ErrSchema          = errors.New("invalid schema")
	ErrUnknownSystem   = errors.New("unknown scoring system")
	ErrBinding         = errors.New("calculator binding")
)

// VectorError describes a failure to decode a vector string.
// Position is the 0-based segment index and Offset the byte offset of that
// segment in Vector; both are -1 when the failure is not tied to a segment.
type VectorError struct {
	Kind     error
	Code     string
	Token    string
	Position int
	Offset   int
	Vector   string
}

// Error implements the error interface.
func (e *VectorError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	switch {
	case e.Code != "" && e.Token != "":
		fmt.Fprintf(&b, " %s:%s", e.Code, e.Token)
	case e.Code != "":
		fmt.Fprintf(&b, " %s", e.Code)
	case e.Token != "":
		fmt.Fprintf(&b, " %q", e.Token)
	}
	if e.Position >= 0 {
		fmt.Fprintf(&b, " at segment %d (offset %d)", e.Position, e.Offset)
	}
	if e.Vector != "" {
		fmt.Fprintf(&b, " in %q", e.Vector)
	}
	return b.String()
}

// Unwrap exposes the error kind.
func (e *VectorError) Unwrap() error {
	return e.Kind
}

// NewVectorError builds a VectorError that is not tied to a segment.
func NewVectorError(kind error, code, vector string) *VectorError {
	return &VectorError{Kind: kind, Code: code, Position: -1, Offset: -1, Vector: vector}
}
