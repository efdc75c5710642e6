// Package pattern implements the canonical, interned representation of a
// generalized URL-piece pattern (identity, numeric-bound, wildcard or
// composite).
package pattern

import (
	"strings"
	"unique"

	"github.com/patterncluster/urlpattern/piece"
)

// Pattern is an immutable, interned generalization of one or more parsed
// pieces. Equality is by canonical string form; two Patterns built from the
// same canonical string share the same underlying handle, so comparing them
// with == is always correct and cheap.
type Pattern struct {
	handle unique.Handle[string]
}

// String returns the canonical form of the pattern.
func (p Pattern) String() string {
	return p.handle.Value()
}

// IsZero reports whether p is the zero Pattern (never produced by the
// constructors below, useful as a "not yet assigned" sentinel).
func (p Pattern) IsZero() bool {
	return p == Pattern{}
}

// intern returns the Pattern for a canonical string, reusing the existing
// handle when one already exists. unique.Make is itself the process-wide
// cache: interning is idempotent, and handle equality implies value
// equality, which is exactly the intern-table contract spec.md asks for.
func intern(canonical string) Pattern {
	return Pattern{handle: unique.Make(canonical)}
}

// Identity builds the pattern that matches exactly one parsed piece's
// literal value: alphanumeric sub-pieces are kept as bare text, every other
// sub-piece is rendered as its bracketed rule tag repeated once per
// character. This is the initial (unclustered) pattern assigned to every
// tree node, and the building block base/mixed clustering composes over
// when only some of a piece's sub-pieces generalize.
func Identity(pp piece.ParsedPiece) Pattern {
	var b strings.Builder
	for i, sub := range pp.Pieces {
		if piece.IsAlnumRule(pp.Rules[i]) {
			b.WriteString(sub)
			continue
		}
		rule := string(pp.Rules[i])
		for range sub {
			b.WriteString(rule)
		}
	}
	return intern(b.String())
}

// NumberRule builds an exact-length pattern "rule{length}" from a fuzzy
// rule, e.g. NumberRule("[0-9]", 5) -> "[0-9]{5}".
func NumberRule(fuzzyRule string, length int) Pattern {
	var b strings.Builder
	b.WriteString(fuzzyRule)
	b.WriteByte('{')
	writeInt(&b, length)
	b.WriteByte('}')
	return intern(b.String())
}

// Wildcard builds an unbounded pattern "rule+" from a fuzzy rule, e.g.
// Wildcard("[0-9]") -> "[0-9]+".
func Wildcard(fuzzyRule string) Pattern {
	return intern(fuzzyRule + "+")
}

// Composite concatenates an ordered sequence of patterns into one, used when
// a multi-sub-piece parsed piece is generalized piece-by-piece (base/mixed
// clustering) and the results are lifted back into a single pattern.
func Composite(parts []Pattern) Pattern {
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(p.String())
	}
	return intern(b.String())
}

// FromCanonical interns an already-canonical pattern string directly, used
// when loading a pattern-path file (the match-time façade) where the
// canonical text is read verbatim rather than built from a fuzzy rule.
func FromCanonical(canonical string) Pattern {
	return intern(canonical)
}

func writeInt(b *strings.Builder, n int) {
	if n == 0 {
		b.WriteByte('0')
		return
	}
	if n < 0 {
		b.WriteByte('-')
		n = -n
	}
	var digits [20]byte
	i := len(digits)
	for n > 0 {
		i--
		digits[i] = byte('0' + n%10)
		n /= 10
	}
	b.Write(digits[i:])
}
