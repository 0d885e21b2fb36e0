package option

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for option schema construction and value processing.
// Every error returned by Builder.Build is a configuration error (errors.Is(err, ErrConfig)).
var (
	ErrConfig            = goerr.New("invalid option configuration")
	ErrDuplicateOptionID = goerr.Wrap(ErrConfig, "duplicate option ID")
	ErrDuplicatePath     = goerr.Wrap(ErrConfig, "duplicate option path for field type")
	ErrInvalidValue      = goerr.New("invalid option value")
)

// Context keys for error values
const (
	OptionIDKey  = "option_id"
	OtherIDKey   = "other_option_id"
	OptionIdxKey = "option_index"
	OtherIdxKey  = "other_option_index"
	PathKey      = "path"
	NameKey      = "name"
	EditorKey    = "editor"
	FieldTypeKey = "field_type"
	ValueKey     = "value"
	ValueTypeKey = "value_type"
)
