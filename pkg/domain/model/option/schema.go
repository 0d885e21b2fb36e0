package option

// Schema is the frozen, ordered descriptor sequence produced by Builder.Build.
// It is read-only and safe to share between goroutines.
type Schema struct {
	descriptors []Descriptor
	byID        map[string]int
}

func newSchema(descriptors []Descriptor) *Schema {
	s := &Schema{
		descriptors: make([]Descriptor, len(descriptors)),
		byID:        make(map[string]int, len(descriptors)),
	}
	for i := range descriptors {
		s.descriptors[i] = descriptors[i].clone()
		s.byID[descriptors[i].ID] = i
	}
	return s
}

// Len returns the number of descriptors
func (s *Schema) Len() int {
	if s == nil {
		return 0
	}
	return len(s.descriptors)
}

// All returns every descriptor in registration order
func (s *Schema) All() []*Descriptor {
	if s == nil {
		return nil
	}
	result := make([]*Descriptor, len(s.descriptors))
	for i := range s.descriptors {
		result[i] = &s.descriptors[i]
	}
	return result
}

// ByID looks up a descriptor by its ID
func (s *Schema) ByID(id string) (*Descriptor, bool) {
	if s == nil {
		return nil, false
	}
	idx, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	return &s.descriptors[idx], true
}

// ByPath returns the descriptor owning path for the given field. A nil field
// matches the first descriptor registered for path.
func (s *Schema) ByPath(path string, f *Field) (*Descriptor, bool) {
	if s == nil {
		return nil, false
	}
	for i := range s.descriptors {
		d := &s.descriptors[i]
		if d.Path == path && d.AppliesTo(f) {
			return d, true
		}
	}
	return nil, false
}

// Applicable returns, in order, the descriptors whose ShouldApply accepts f.
// A nil field (panel level options) accepts every descriptor.
func (s *Schema) Applicable(f *Field) []*Descriptor {
	if s == nil {
		return nil
	}
	result := make([]*Descriptor, 0, len(s.descriptors))
	for i := range s.descriptors {
		if s.descriptors[i].AppliesTo(f) {
			result = append(result, &s.descriptors[i])
		}
	}
	return result
}

// Visible returns the applicable descriptors whose ShowIf accepts current.
// Hidden descriptors keep their stored values; only the returned view changes.
func (s *Schema) Visible(f *Field, current Config) []*Descriptor {
	applicable := s.Applicable(f)
	result := make([]*Descriptor, 0, len(applicable))
	for _, d := range applicable {
		if d.VisibleIn(current) {
			result = append(result, d)
		}
	}
	return result
}

// Pane evaluates visibility for f and current and groups the result by category
func (s *Schema) Pane(f *Field, current Config) []Group {
	return GroupByCategory(s.Visible(f, current))
}

// Defaults returns a configuration holding the default value of every
// applicable descriptor that declares one.
func (s *Schema) Defaults(f *Field) Config {
	cfg := Config{}
	for _, d := range s.Applicable(f) {
		if d.DefaultValue != nil {
			cfg.Set(d.Path, CloneValue(d.DefaultValue))
		}
	}
	return cfg
}
