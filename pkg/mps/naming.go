package mps

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// NameWidth is the width of a name field in the fixed-column layout
const NameWidth = 8

var ErrNamingViolation = errors.New("naming violation")

// Profile decides which row and column names the model accepts
type Profile int

const (
	// Strict requires names of exactly NameWidth printable, non-blank characters
	Strict Profile = iota
	// Free accepts any non-empty printable name without blanks (free-format readers split on whitespace)
	Free
)

func ParseProfile(s string) (Profile, error) {
	switch strings.ToLower(s) {
	case "", "strict":
		return Strict, nil
	case "free":
		return Free, nil
	}
	return Strict, fmt.Errorf("unknown naming profile %q", s)
}

func (profile Profile) String() string {
	if profile == Free {
		return "free"
	}
	return "strict"
}

// Check returns an error wrapping ErrNamingViolation when name breaks the profile.
// kind names what is being registered ("variable" or "constraint") for the message.
func (profile Profile) Check(kind, name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty %v name", ErrNamingViolation, kind)
	}
	for _, r := range name {
		if r > unicode.MaxASCII || !unicode.IsPrint(r) || unicode.IsSpace(r) {
			return fmt.Errorf("%w: %v name %q contains %q", ErrNamingViolation, kind, name, r)
		}
	}
	if profile == Strict && len(name) != NameWidth {
		return fmt.Errorf("%w: %v name %q has %d characters, the %v profile requires %d", ErrNamingViolation, kind, name, len(name), profile, NameWidth)
	}
	return nil
}
