package model

import "github.com/m-mizutani/goerr/v2"

// Validation errors
var (
	ErrInvalidValueType = goerr.New("invalid option value type")
	ErrInvalidChoice    = goerr.New("value is not one of the option choices")
	ErrOutOfRange       = goerr.New("value is out of range")
	ErrMissingRequired  = goerr.New("required field is missing")
)

// Context keys for error values
const (
	PanelIDKey      = "panel_id"
	PathKey         = "path"
	EditorKey       = "editor"
	ExpectedTypeKey = "expected_type"
	ActualTypeKey   = "actual_type"
	ValueKey        = "value"
)
