package record

import (
	"strconv"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBool
	KindNull
	KindObject
	KindArray
)

// Value is a single JSON value with its kind made explicit, so callers can
// branch exhaustively instead of type-asserting through interface{}.
type Value struct {
	kind Kind
	str  string // KindString
	num  string // KindNumber, original textual form
	b    bool   // KindBool
	obj  *Object
	arr  []Value
}

func String(s string) Value    { return Value{kind: KindString, str: s} }
func Number(text string) Value { return Value{kind: KindNumber, num: text} }
func Bool(b bool) Value        { return Value{kind: KindBool, b: b} }
func Null() Value              { return Value{kind: KindNull} }
func Array(items []Value) Value {
	return Value{kind: KindArray, arr: items}
}

// ObjectValue wraps an Object as a Value. A nil object behaves as empty.
func ObjectValue(obj *Object) Value {
	if obj == nil {
		obj = NewObject()
	}
	return Value{kind: KindObject, obj: obj}
}

func (v Value) Kind() Kind { return v.kind }

// Str returns the string payload when the value is a string.
func (v Value) Str() (string, bool) {
	return v.str, v.kind == KindString
}

// Object returns the object payload when the value is an object.
func (v Value) Object() (*Object, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	return v.obj, true
}

// List returns the element slice when the value is an array.
func (v Value) List() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.arr, true
}

// Text renders the value for display: strings verbatim, scalars in their
// canonical text form, objects and arrays as compact inline JSON.
func (v Value) Text() string {
	if v.kind == KindString {
		return v.str
	}
	var b strings.Builder
	v.writeInline(&b)
	return b.String()
}

func (v Value) writeInline(b *strings.Builder) {
	switch v.kind {
	case KindString:
		b.WriteString(strconv.Quote(v.str))
	case KindNumber:
		b.WriteString(v.num)
	case KindBool:
		b.WriteString(strconv.FormatBool(v.b))
	case KindNull:
		b.WriteString("null")
	case KindObject:
		b.WriteByte('{')
		for i, key := range v.obj.keys {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.Quote(key))
			b.WriteString(": ")
			v.obj.vals[key].writeInline(b)
		}
		b.WriteByte('}')
	case KindArray:
		b.WriteByte('[')
		for i, item := range v.arr {
			if i > 0 {
				b.WriteString(", ")
			}
			item.writeInline(b)
		}
		b.WriteByte(']')
	}
}

// Object is a string-keyed JSON object that remembers insertion order, so
// residual fields render deterministically in the order the producer wrote.
type Object struct {
	keys []string
	vals map[string]Value
}

func NewObject() *Object {
	return &Object{vals: make(map[string]Value)}
}

func (o *Object) Len() int { return len(o.keys) }

// Keys returns the keys in insertion order. The slice is shared; callers
// must not mutate it.
func (o *Object) Keys() []string { return o.keys }

func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.vals[key]
	return v, ok
}

// Set stores a value. Re-setting an existing key keeps its original position.
func (o *Object) Set(key string, v Value) {
	if _, exists := o.vals[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = v
}

func (o *Object) Delete(key string) {
	if _, exists := o.vals[key]; !exists {
		return
	}
	delete(o.vals, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}
