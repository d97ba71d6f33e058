package record

import "strings"

// Resolve tries each candidate key in order and returns the first value
// present, removing the matched entry from the object so it cannot render a
// second time. Candidates may be flat keys or dotted paths; a candidate that
// exists verbatim as a top-level key wins over dotted traversal, so producers
// that emit literal dotted key names (e.g. "this.message") stay reachable.
// Absence of every candidate is the normal miss case, not an error.
func Resolve(obj *Object, candidates []string) (Value, bool) {
	for _, candidate := range candidates {
		if v, ok := popPath(obj, candidate); ok {
			return v, true
		}
	}
	return Value{}, false
}

// Lookup resolves a flat key or dotted path without removing anything.
func Lookup(obj *Object, path string) (Value, bool) {
	parent, leaf, ok := walkPath(obj, path)
	if !ok {
		return Value{}, false
	}
	return parent.Get(leaf)
}

func popPath(obj *Object, path string) (Value, bool) {
	parent, leaf, ok := walkPath(obj, path)
	if !ok {
		return Value{}, false
	}
	v, ok := parent.Get(leaf)
	if !ok {
		return Value{}, false
	}
	// Deleting the leaf may leave an empty nested object behind; it stays in
	// place so sibling structure is untouched.
	parent.Delete(leaf)
	return v, true
}

// walkPath locates the object holding the final path segment. It returns
// false when the path is empty, any intermediate segment is missing, or an
// intermediate value is not an object.
func walkPath(obj *Object, path string) (parent *Object, leaf string, ok bool) {
	if obj == nil || path == "" {
		return nil, "", false
	}
	if _, present := obj.Get(path); present {
		return obj, path, true
	}
	segments := strings.Split(path, ".")
	current := obj
	for _, segment := range segments[:len(segments)-1] {
		v, present := current.Get(segment)
		if !present {
			return nil, "", false
		}
		nested, isObject := v.Object()
		if !isObject {
			return nil, "", false
		}
		current = nested
	}
	leaf = segments[len(segments)-1]
	if _, present := current.Get(leaf); !present {
		return nil, "", false
	}
	return current, leaf, true
}
