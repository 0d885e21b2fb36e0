package override

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrOverrideApply is recorded when a single override could not be applied.
	// The merge continues with the previous value at that path.
	// Failures wrap the processor error, so errors.Is also matches its cause.
	ErrOverrideApply = goerr.New("failed to apply override", goerr.ID("override_apply"))

	// ErrInvalidMatcher is returned when a matcher kind or its options are malformed
	ErrInvalidMatcher = goerr.New("invalid override matcher")

	// ErrInvalidRule is returned by Rule.Validate for malformed rules
	ErrInvalidRule = goerr.New("invalid override rule")
)

// Context keys for error values
const (
	MatcherKindKey    = "matcher_kind"
	MatcherOptionsKey = "matcher_options"
	RuleIdxKey        = "rule_index"
	PropertyIdxKey    = "property_index"
	PathKey           = "path"
	FieldNameKey      = "field_name"
	PanicKey          = "panic"
)
