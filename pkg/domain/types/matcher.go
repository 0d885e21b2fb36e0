package types

import "github.com/m-mizutani/goerr/v2"

// MatcherKind selects which fields an override rule targets
type MatcherKind string

const (
	MatcherAll          MatcherKind = "all"
	MatcherByName       MatcherKind = "by-name"
	MatcherByRegexp     MatcherKind = "by-regexp"
	MatcherByType       MatcherKind = "by-type"
	MatcherByFrameRefID MatcherKind = "by-frame-ref-id"
)

// AllMatcherKinds returns all valid matcher kinds
func AllMatcherKinds() []MatcherKind {
	return []MatcherKind{
		MatcherAll,
		MatcherByName,
		MatcherByRegexp,
		MatcherByType,
		MatcherByFrameRefID,
	}
}

// IsValid checks if the matcher kind is valid
func (k MatcherKind) IsValid() bool {
	switch k {
	case MatcherAll,
		MatcherByName,
		MatcherByRegexp,
		MatcherByType,
		MatcherByFrameRefID:
		return true
	default:
		return false
	}
}

// String returns the string representation of the matcher kind
func (k MatcherKind) String() string {
	return string(k)
}

// ParseMatcherKind parses a string into a MatcherKind
func ParseMatcherKind(s string) (MatcherKind, error) {
	k := MatcherKind(s)
	if !k.IsValid() {
		return "", goerr.New("invalid matcher kind", goerr.V("matcher", s))
	}
	return k, nil
}
