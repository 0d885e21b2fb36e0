package option

import "github.com/secmon-lab/vizopts/pkg/domain/types"

// Field is the metadata of one column or series of data that field
// configuration options are evaluated against.
type Field struct {
	Name        string            `json:"name"`
	DisplayName string            `json:"display_name,omitempty"`
	Type        types.FieldType   `json:"type"`
	Labels      map[string]string `json:"labels,omitempty"`
	FrameRefID  string            `json:"frame_ref_id,omitempty"`
}

// Title returns the display name when set, otherwise the raw field name
func (f *Field) Title() string {
	if f == nil {
		return ""
	}
	if f.DisplayName != "" {
		return f.DisplayName
	}
	return f.Name
}
