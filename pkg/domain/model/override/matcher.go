package override

import (
	"regexp"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/vizopts/pkg/domain/model/option"
	"github.com/secmon-lab/vizopts/pkg/domain/types"
)

// Matcher selects the fields an override rule applies to. It is persisted as
// part of the panel's saved configuration.
type Matcher struct {
	ID      types.MatcherKind `json:"id" firestore:"id"`
	Options string            `json:"options,omitempty" firestore:"options"`
}

// Predicate reports whether a field is selected
type Predicate func(f *option.Field) bool

// Compile validates the matcher and returns its predicate
func (m Matcher) Compile() (Predicate, error) {
	switch m.ID {
	case types.MatcherAll:
		return func(*option.Field) bool { return true }, nil

	case types.MatcherByName:
		if m.Options == "" {
			return nil, m.invalid("field name is required")
		}
		name := m.Options
		return func(f *option.Field) bool {
			return f != nil && (f.Name == name || f.Title() == name)
		}, nil

	case types.MatcherByRegexp:
		re, err := regexp.Compile(m.Options)
		if err != nil {
			return nil, goerr.Wrap(ErrInvalidMatcher, "invalid field name pattern",
				goerr.V(MatcherKindKey, m.ID),
				goerr.V(MatcherOptionsKey, m.Options),
				goerr.V("error", err.Error()))
		}
		return func(f *option.Field) bool {
			return f != nil && re.MatchString(f.Title())
		}, nil

	case types.MatcherByType:
		ft, err := types.ParseFieldType(m.Options)
		if err != nil {
			return nil, goerr.Wrap(ErrInvalidMatcher, "invalid field type",
				goerr.V(MatcherKindKey, m.ID),
				goerr.V(MatcherOptionsKey, m.Options))
		}
		return func(f *option.Field) bool {
			return f != nil && f.Type == ft
		}, nil

	case types.MatcherByFrameRefID:
		if m.Options == "" {
			return nil, m.invalid("frame ref ID is required")
		}
		refID := m.Options
		return func(f *option.Field) bool {
			return f != nil && f.FrameRefID == refID
		}, nil

	default:
		return nil, m.invalid("unknown matcher kind")
	}
}

func (m Matcher) invalid(msg string) error {
	return goerr.Wrap(ErrInvalidMatcher, msg,
		goerr.V(MatcherKindKey, m.ID),
		goerr.V(MatcherOptionsKey, m.Options))
}
