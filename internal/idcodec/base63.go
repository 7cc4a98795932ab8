// Package idcodec provides type-safe base-63 encode/decode wrappers over
// internal/encoding, used by debugging tools to print compact node and
// file identifiers instead of raw integers.
package idcodec

import (
	"github.com/standardbeagle/jparse/internal/encoding"
)

const (
	Base     = encoding.Base63
	Alphabet = encoding.Alphabet63
)

var (
	ErrEmptyString = encoding.ErrEmptyString
	ErrInvalidChar = encoding.ErrInvalidChar
	ErrOverflow    = encoding.ErrOverflow
)

// Encode encodes a uint64 value to a base-63 string.
func Encode(value uint64) string {
	return encoding.Base63Encode(value)
}

// EncodeNoZero encodes a uint64 value, returning "" for zero.
func EncodeNoZero(value uint64) string {
	return encoding.Base63EncodeNoZero(value)
}

// Decode decodes a base-63 string to a uint64 value.
func Decode(encoded string) (uint64, error) {
	return encoding.Base63Decode(encoded)
}

// IsValid reports whether encoded is a valid base-63 string.
func IsValid(encoded string) bool {
	return encoding.Base63IsValid(encoded)
}
