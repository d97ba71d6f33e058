package record

// Promoted is one dotted path flattened onto its own detail line.
type Promoted struct {
	Path  string
	Value string
}

// Promote resolves each configured dotted path against obj, stringifies the
// value, and removes it from its nested location. The result order follows
// the configured path order regardless of how the producer ordered its keys.
// Paths that do not fully resolve are skipped and left untouched.
func Promote(obj *Object, paths []string) []Promoted {
	var out []Promoted
	for _, path := range paths {
		v, ok := popPath(obj, path)
		if !ok {
			continue
		}
		out = append(out, Promoted{Path: path, Value: v.Text()})
	}
	return out
}
