package record

import "strings"

// Block is a preserved multi-line exception rendering. Line breaks inside the
// payload survive exactly; the renderer adds only a leading indent per line.
type Block struct {
	Lines []string
}

// ExtractException pops the first matching exception key and normalizes its
// payload into a Block. A match with an empty payload still produces a block
// (with one empty line for an empty string) so the marker is not lost; only a
// complete miss returns false.
func ExtractException(obj *Object, keys []string) (Block, bool) {
	v, ok := Resolve(obj, keys)
	if !ok {
		return Block{}, false
	}

	if s, isString := v.Str(); isString {
		return Block{Lines: strings.Split(s, "\n")}, true
	}

	structured, isObject := v.Object()
	if !isObject {
		// Numbers, booleans, null, arrays: show the canonical text form.
		return Block{Lines: strings.Split(v.Text(), "\n")}, true
	}

	var lines []string
	if head, ok := headline(structured); ok {
		lines = append(lines, head)
	} else {
		lines = append(lines, ObjectValue(structured).Text())
	}
	lines = append(lines, tracebackLines(structured)...)
	return Block{Lines: lines}, true
}

// headline combines the exception type and value into the first block line.
func headline(obj *Object) (string, bool) {
	excType := fieldText(obj, "type")
	excValue := fieldText(obj, "value")
	if excValue == "" {
		excValue = fieldText(obj, "message")
	}
	switch {
	case excType != "" && excValue != "":
		return excType + ": " + excValue, true
	case excType != "":
		return excType, true
	case excValue != "":
		return excValue, true
	default:
		return "", false
	}
}

func tracebackLines(obj *Object) []string {
	v, ok := obj.Get("traceback")
	if !ok {
		return nil
	}
	if s, isString := v.Str(); isString {
		return strings.Split(s, "\n")
	}
	items, isList := v.List()
	if !isList {
		return strings.Split(v.Text(), "\n")
	}
	var lines []string
	for _, item := range items {
		lines = append(lines, strings.Split(item.Text(), "\n")...)
	}
	return lines
}

func fieldText(obj *Object, key string) string {
	v, ok := obj.Get(key)
	if !ok || v.Kind() == KindNull {
		return ""
	}
	return v.Text()
}
