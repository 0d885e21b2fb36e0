package option

// Group is one category section of an options pane
type Group struct {
	Category    []string
	Descriptors []*Descriptor
}

// Key returns the joined category breadcrumb
func (g Group) Key() string {
	if len(g.Descriptors) > 0 {
		return g.Descriptors[0].CategoryKey()
	}
	return ""
}

// GroupByCategory groups descriptors by category breadcrumb. Groups appear in
// first-seen order and keep descriptor order inside each group; descriptors
// sharing a category are grouped together even when not contiguous.
func GroupByCategory(descriptors []*Descriptor) []Group {
	var groups []Group
	index := make(map[string]int)

	for _, d := range descriptors {
		key := d.CategoryKey()
		idx, ok := index[key]
		if !ok {
			idx = len(groups)
			index[key] = idx
			groups = append(groups, Group{
				Category: append([]string(nil), d.Category...),
			})
		}
		groups[idx].Descriptors = append(groups[idx].Descriptors, d)
	}

	return groups
}
