// Package urlerr defines the four sentinel error kinds a URL can fail
// ingest with, each wrapping the underlying cause via fmt.Errorf's %w so
// callers can classify with errors.Is/errors.As while still seeing the
// original detail in Error().
package urlerr

import (
	"errors"
	"fmt"
)

// Sentinel kinds. Wrap one of these with fmt.Errorf("...: %w", ErrX) or
// compare against it with errors.Is.
var (
	// ErrInvalidChar means a piece contained a byte outside the printable
	// ASCII alphabet the parser recognizes.
	ErrInvalidChar = errors.New("invalid character")
	// ErrInvalidPattern means a pattern-path file line did not parse into
	// a well-formed canonical pattern sequence.
	ErrInvalidPattern = errors.New("invalid pattern")
	// ErrIrregularURL means the raw URL itself is malformed: empty path,
	// unparsable query string, or any other structural defect net/url
	// and urlparse agree is not a URL at all.
	ErrIrregularURL = errors.New("irregular url")
	// ErrEncoding means percent-decoding or UTF-8 validation failed.
	ErrEncoding = errors.New("encoding error")
)

// Wrap attaches detail to one of the sentinel kinds above, preserving
// errors.Is compatibility.
func Wrap(kind error, detail string) error {
	return fmt.Errorf("%s: %w", detail, kind)
}

// Kind classifies err against the four sentinels, for callers (Stats,
// logging) that need to bucket errors by taxonomy rather than match a
// specific one. The zero value means none of the four sentinels matched.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidChar):
		return "invalid_char"
	case errors.Is(err, ErrInvalidPattern):
		return "invalid_pattern"
	case errors.Is(err, ErrIrregularURL):
		return "irregular_url"
	case errors.Is(err, ErrEncoding):
		return "encoding_error"
	default:
		return ""
	}
}
