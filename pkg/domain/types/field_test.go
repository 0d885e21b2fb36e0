package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/vizopts/pkg/domain/types"
)

func TestFieldType_IsValid(t *testing.T) {
	tests := []struct {
		name      string
		fieldType types.FieldType
		want      bool
	}{
		{name: "valid time", fieldType: types.FieldTypeTime, want: true},
		{name: "valid number", fieldType: types.FieldTypeNumber, want: true},
		{name: "valid string", fieldType: types.FieldTypeString, want: true},
		{name: "valid boolean", fieldType: types.FieldTypeBoolean, want: true},
		{name: "valid enum", fieldType: types.FieldTypeEnum, want: true},
		{name: "valid other", fieldType: types.FieldTypeOther, want: true},
		{name: "invalid type", fieldType: types.FieldType("invalid"), want: false},
		{name: "empty type", fieldType: types.FieldType(""), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, tt.fieldType.IsValid()).Equal(tt.want)
		})
	}
}

func TestAllFieldTypes(t *testing.T) {
	all := types.AllFieldTypes()
	gt.Array(t, all).Length(6)
	for _, ft := range all {
		gt.Bool(t, ft.IsValid()).True()
	}
}

func TestParseFieldType(t *testing.T) {
	ft, err := types.ParseFieldType("number")
	gt.NoError(t, err)
	gt.Value(t, ft).Equal(types.FieldTypeNumber)

	_, err = types.ParseFieldType("float")
	gt.Error(t, err)
}
