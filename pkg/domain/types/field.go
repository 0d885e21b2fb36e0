package types

import "github.com/m-mizutani/goerr/v2"

// FieldType represents the data type of a field (one column or series of a data frame)
type FieldType string

const (
	FieldTypeTime    FieldType = "time"
	FieldTypeNumber  FieldType = "number"
	FieldTypeString  FieldType = "string"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeEnum    FieldType = "enum"
	FieldTypeOther   FieldType = "other"
)

// AllFieldTypes returns all valid field types
func AllFieldTypes() []FieldType {
	return []FieldType{
		FieldTypeTime,
		FieldTypeNumber,
		FieldTypeString,
		FieldTypeBoolean,
		FieldTypeEnum,
		FieldTypeOther,
	}
}

// IsValid checks if the field type is valid
func (t FieldType) IsValid() bool {
	switch t {
	case FieldTypeTime,
		FieldTypeNumber,
		FieldTypeString,
		FieldTypeBoolean,
		FieldTypeEnum,
		FieldTypeOther:
		return true
	default:
		return false
	}
}

// String returns the string representation of the field type
func (t FieldType) String() string {
	return string(t)
}

// ParseFieldType parses a string into a FieldType
func ParseFieldType(s string) (FieldType, error) {
	t := FieldType(s)
	if !t.IsValid() {
		return "", goerr.New("invalid field type", goerr.V("field_type", s))
	}
	return t, nil
}
