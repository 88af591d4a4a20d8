package types

import (
	"errors"
	"testing"
)

func TestTextScalarRoundTrip(t *testing.T) {
	s := TextScalar("hello")
	got, err := s.AsText()
	if err != nil {
		t.Fatalf("AsText failed: %v", err)
	}
	if got != "hello" {
		t.Errorf("AsText = %q, want %q", got, "hello")
	}
}

func TestZeroScalarIsEmptyText(t *testing.T) {
	var s Scalar
	got, err := s.AsText()
	if err != nil {
		t.Fatalf("AsText failed: %v", err)
	}
	if got != "" {
		t.Errorf("AsText = %q, want empty", got)
	}
}

func TestAsTextRejectsNonText(t *testing.T) {
	cases := []struct {
		name   string
		scalar Scalar
	}{
		{"integer", IntegerScalar(42)},
		{"real", RealScalar(3.5)},
		{"boolean", BooleanScalar(true)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := tc.scalar.AsText(); !errors.Is(err, ErrTypeMismatch) {
				t.Errorf("AsText error = %v, want ErrTypeMismatch", err)
			}
		})
	}
}

func TestScalarString(t *testing.T) {
	cases := []struct {
		scalar Scalar
		want   string
	}{
		{TextScalar("abc"), "abc"},
		{IntegerScalar(42), "42"},
		{RealScalar(3.5), "3.5"},
		{BooleanScalar(true), "true"},
		{Scalar{}, ""},
	}
	for _, tc := range cases {
		if got := tc.scalar.String(); got != tc.want {
			t.Errorf("String() of %v = %q, want %q", tc.scalar, got, tc.want)
		}
	}
}

func TestEncodeDecode(t *testing.T) {
	cases := []struct {
		name   string
		scalar Scalar
	}{
		{"text", TextScalar("value")},
		{"empty text", TextScalar("")},
		{"integer", IntegerScalar(-7)},
		{"real", RealScalar(0.25)},
		{"boolean", BooleanScalar(false)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			encoded, err := tc.scalar.Encode()
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			decoded, err := DecodeScalar(tc.scalar.Kind, encoded)
			if err != nil {
				t.Fatalf("DecodeScalar failed: %v", err)
			}
			if decoded != tc.scalar {
				t.Errorf("round trip = %v, want %v", decoded, tc.scalar)
			}
		})
	}
}

func TestDecodeScalarInvalidKind(t *testing.T) {
	if _, err := DecodeScalar("blob", `"x"`); !errors.Is(err, ErrInvalidKind) {
		t.Errorf("DecodeScalar error = %v, want ErrInvalidKind", err)
	}
}

func TestEncodeInvalidKind(t *testing.T) {
	s := Scalar{Kind: "blob", Value: "x"}
	if _, err := s.Encode(); !errors.Is(err, ErrInvalidKind) {
		t.Errorf("Encode error = %v, want ErrInvalidKind", err)
	}
}

func TestIsValidKind(t *testing.T) {
	for _, kind := range []string{KindText, KindInteger, KindReal, KindBoolean} {
		if !IsValidKind(kind) {
			t.Errorf("IsValidKind(%q) = false, want true", kind)
		}
	}
	if IsValidKind("blob") {
		t.Error("IsValidKind(blob) = true, want false")
	}
	if IsValidKind("") {
		t.Error("IsValidKind(empty) = true, want false")
	}
}
