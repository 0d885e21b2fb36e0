package types

import "github.com/m-mizutani/goerr/v2"

// EditorKind identifies an option editor in the editor registry
type EditorKind string

const (
	EditorText         EditorKind = "text"
	EditorNumber       EditorKind = "number"
	EditorSlider       EditorKind = "slider"
	EditorBoolean      EditorKind = "boolean"
	EditorRadio        EditorKind = "radio"
	EditorSelect       EditorKind = "select"
	EditorMultiSelect  EditorKind = "multi-select"
	EditorUnit         EditorKind = "unit"
	EditorLinks        EditorKind = "links"
	EditorActions      EditorKind = "actions"
	EditorStatsPicker  EditorKind = "stats-picker"
	EditorStrings      EditorKind = "strings"
	EditorTimeZone     EditorKind = "timezone"
	EditorFieldColor   EditorKind = "field-color"
	EditorColor        EditorKind = "color"
	EditorFieldName    EditorKind = "field-name"
	EditorDashboardUID EditorKind = "dashboard-uid"
	EditorMappings     EditorKind = "mappings"
	EditorThresholds   EditorKind = "thresholds"
	EditorCustom       EditorKind = "custom"
)

// AllEditorKinds returns every built-in editor kind. The editor registry must
// hold an entry for each of them before any schema is rendered.
func AllEditorKinds() []EditorKind {
	return []EditorKind{
		EditorText,
		EditorNumber,
		EditorSlider,
		EditorBoolean,
		EditorRadio,
		EditorSelect,
		EditorMultiSelect,
		EditorUnit,
		EditorLinks,
		EditorActions,
		EditorStatsPicker,
		EditorStrings,
		EditorTimeZone,
		EditorFieldColor,
		EditorColor,
		EditorFieldName,
		EditorDashboardUID,
		EditorMappings,
		EditorThresholds,
		EditorCustom,
	}
}

// IsValid checks if the editor kind is one of the built-in kinds
func (k EditorKind) IsValid() bool {
	for _, kind := range AllEditorKinds() {
		if k == kind {
			return true
		}
	}
	return false
}

// String returns the string representation of the editor kind
func (k EditorKind) String() string {
	return string(k)
}

// ParseEditorKind parses a string into an EditorKind
func ParseEditorKind(s string) (EditorKind, error) {
	k := EditorKind(s)
	if !k.IsValid() {
		return "", goerr.New("invalid editor kind", goerr.V("editor", s))
	}
	return k, nil
}
