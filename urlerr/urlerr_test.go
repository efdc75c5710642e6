package urlerr

import (
	"errors"
	"testing"
)

func TestWrapPreservesIs(t *testing.T) {
	err := Wrap(ErrIrregularURL, "empty path")
	if !errors.Is(err, ErrIrregularURL) {
		t.Fatal("wrapped error should satisfy errors.Is against its sentinel")
	}
	if errors.Is(err, ErrEncoding) {
		t.Fatal("wrapped error should not match an unrelated sentinel")
	}
}

func TestKind(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{Wrap(ErrInvalidChar, "x"), "invalid_char"},
		{Wrap(ErrInvalidPattern, "x"), "invalid_pattern"},
		{Wrap(ErrIrregularURL, "x"), "irregular_url"},
		{Wrap(ErrEncoding, "x"), "encoding_error"},
		{errors.New("plain"), ""},
	}
	for _, c := range cases {
		if got := Kind(c.err); got != c.want {
			t.Errorf("Kind(%v) = %q, want %q", c.err, got, c.want)
		}
	}
}
