package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// Scalar kinds determine what values a Scalar carries across the store
// boundary.
const (
	KindText    = "text"
	KindInteger = "integer"
	KindReal    = "real"
	KindBoolean = "boolean"
)

// validKinds is the set of recognized scalar kinds.
var validKinds = map[string]bool{
	KindText:    true,
	KindInteger: true,
	KindReal:    true,
	KindBoolean: true,
}

// Scalar bridge errors.
var (
	ErrTypeMismatch = errors.New("scalar type mismatch")
	ErrInvalidKind  = errors.New("invalid scalar kind")
)

// Scalar is a typed value crossing the project store boundary. The proxy
// layer only ever sends text scalars; other kinds can exist in a store that
// has been written by other tools, and the bridge rejects them before they
// reach a caller expecting a string. The zero value is an empty text scalar.
type Scalar struct {
	Kind  string
	Value any
}

// TextScalar returns the text scalar carrying s. This is the to-external
// half of the bridge: native strings always cross as text scalars.
func TextScalar(s string) Scalar {
	return Scalar{Kind: KindText, Value: s}
}

// IntegerScalar returns the integer scalar carrying i.
func IntegerScalar(i int64) Scalar {
	return Scalar{Kind: KindInteger, Value: i}
}

// RealScalar returns the real scalar carrying f.
func RealScalar(f float64) Scalar {
	return Scalar{Kind: KindReal, Value: f}
}

// BooleanScalar returns the boolean scalar carrying b.
func BooleanScalar(b bool) Scalar {
	return Scalar{Kind: KindBoolean, Value: b}
}

// AsText returns the native string for a text scalar. This is the
// from-external half of the bridge; it fails with ErrTypeMismatch when the
// scalar carries any other kind.
func (s Scalar) AsText() (string, error) {
	if s.Kind != "" && s.Kind != KindText {
		return "", fmt.Errorf("%w: expected text, got %s", ErrTypeMismatch, s.Kind)
	}
	v, ok := s.Value.(string)
	if !ok {
		if s.Value == nil {
			return "", nil
		}
		return "", fmt.Errorf("%w: expected text, got %T", ErrTypeMismatch, s.Value)
	}
	return v, nil
}

// String returns the coerced display representation of the scalar,
// regardless of kind. Membership checks use this representation.
func (s Scalar) String() string {
	switch v := s.Value.(type) {
	case nil:
		return ""
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// Encode serializes the scalar value as JSON for storage alongside its kind.
func (s Scalar) Encode() (string, error) {
	if s.Kind != "" && !validKinds[s.Kind] {
		return "", fmt.Errorf("%w: %s", ErrInvalidKind, s.Kind)
	}
	data, err := json.Marshal(s.Value)
	if err != nil {
		return "", fmt.Errorf("encoding %s scalar: %w", s.Kind, err)
	}
	return string(data), nil
}

// DecodeScalar reconstructs a Scalar from a stored kind and JSON-encoded
// value. Returns ErrInvalidKind for unrecognized kinds.
func DecodeScalar(kind, encoded string) (Scalar, error) {
	if !validKinds[kind] {
		return Scalar{}, fmt.Errorf("%w: %s", ErrInvalidKind, kind)
	}
	switch kind {
	case KindText:
		var v string
		if err := json.Unmarshal([]byte(encoded), &v); err != nil {
			return Scalar{}, fmt.Errorf("decoding text scalar: %w", err)
		}
		return TextScalar(v), nil
	case KindInteger:
		var v int64
		if err := json.Unmarshal([]byte(encoded), &v); err != nil {
			return Scalar{}, fmt.Errorf("decoding integer scalar: %w", err)
		}
		return IntegerScalar(v), nil
	case KindReal:
		var v float64
		if err := json.Unmarshal([]byte(encoded), &v); err != nil {
			return Scalar{}, fmt.Errorf("decoding real scalar: %w", err)
		}
		return RealScalar(v), nil
	default:
		var v bool
		if err := json.Unmarshal([]byte(encoded), &v); err != nil {
			return Scalar{}, fmt.Errorf("decoding boolean scalar: %w", err)
		}
		return BooleanScalar(v), nil
	}
}

// IsValidKind reports whether the given string is a recognized scalar kind.
func IsValidKind(kind string) bool {
	return validKinds[kind]
}
