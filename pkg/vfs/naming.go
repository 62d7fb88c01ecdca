package vfs

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidName is returned for names rejected by the naming rules.
var ErrInvalidName = errors.New("invalid file name")

// Naming holds the rules the surrounding tree applies to file names.
type Naming struct {
	// Separator is the path separator; it may not appear in a name.
	Separator string

	// CaseSensitive controls whether names differing only in case are
	// distinct.
	CaseSensitive bool

	// ShowDotFiles controls whether names starting with "." are visible
	// in listings.
	ShowDotFiles bool

	// Blacklist lists characters (or sequences) forbidden in names.
	Blacklist []string
}

// DefaultNaming returns POSIX-like rules.
func DefaultNaming() Naming {
	return Naming{
		Separator:     "/",
		CaseSensitive: true,
		ShowDotFiles:  true,
		Blacklist:     []string{"\x00"},
	}
}

// ValidateName checks a single path component.
func (n Naming) ValidateName(name string) error {
	switch name {
	case "", ".", "..":
		return fmt.Errorf("%q: %w", name, ErrInvalidName)
	}

	if n.Separator != "" && strings.Contains(name, n.Separator) {
		return fmt.Errorf("%q contains separator %q: %w", name, n.Separator, ErrInvalidName)
	}

	for _, forbidden := range n.Blacklist {
		if forbidden != "" && strings.Contains(name, forbidden) {
			return fmt.Errorf("%q contains forbidden %q: %w", name, forbidden, ErrInvalidName)
		}
	}
	return nil
}

// Normalize returns the key under which name is compared.
func (n Naming) Normalize(name string) string {
	if n.CaseSensitive {
		return name
	}
	return strings.ToLower(name)
}

// Equal reports whether two names refer to the same entry.
func (n Naming) Equal(a, b string) bool {
	return n.Normalize(a) == n.Normalize(b)
}

// IsHidden reports whether name is hidden from listings.
func (n Naming) IsHidden(name string) bool {
	return !n.ShowDotFiles && strings.HasPrefix(name, ".")
}
