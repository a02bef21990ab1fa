// Package record models the dataset and resource records exchanged with the
// profile pipeline: flat maps from field name to a scalar string or an
// ordered list of strings.
package record

import "strings"

// Value is a field value: either a scalar string or an ordered list.
type Value struct {
	text  string
	items []string
	list  bool
}

// Text returns a scalar value.
func Text(s string) Value { return Value{text: s} }

// List returns a list value. The items are copied.
func List(items ...string) Value {
	return Value{items: append([]string(nil), items...), list: true}
}

// IsList reports whether the value holds a list.
func (v Value) IsList() bool { return v.list }

// String returns the scalar text, or the list items joined by "; ".
func (v Value) String() string {
	if v.list {
		return strings.Join(v.items, "; ")
	}
	return v.text
}

// Items returns the list items. A scalar is returned as a one-element list,
// and an empty scalar as nil.
func (v Value) Items() []string {
	if v.list {
		return append([]string(nil), v.items...)
	}
	if v.text == "" {
		return nil
	}
	return []string{v.text}
}

// IsEmpty reports whether the value is an empty string or an empty list.
func (v Value) IsEmpty() bool {
	if v.list {
		return len(v.items) == 0
	}
	return v.text == ""
}

// Equal reports whether two values have the same shape and content.
func (v Value) Equal(other Value) bool {
	if v.list != other.list {
		return false
	}
	if !v.list {
		return v.text == other.text
	}
	if len(v.items) != len(other.items) {
		return false
	}
	for i := range v.items {
		if v.items[i] != other.items[i] {
			return false
		}
	}
	return true
}

// Fields maps field names to values.
type Fields map[string]Value

// Get returns the value stored under key.
func (f Fields) Get(key string) (Value, bool) {
	v, ok := f[key]
	return v, ok
}

// Text returns the string form of the value under key, or "" when absent.
func (f Fields) Text(key string) string {
	return f[key].String()
}

// SetText stores a scalar value.
func (f Fields) SetText(key, value string) { f[key] = Text(value) }

// SetList stores a list value.
func (f Fields) SetList(key string, items ...string) { f[key] = List(items...) }

// Extra is a free-form key/value pair attached to a dataset.
type Extra struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Dataset is a dataset record with its resource records.
type Dataset struct {
	Fields    Fields
	Extras    []Extra
	Resources []Fields
}

// NewDataset returns an empty dataset record.
func NewDataset() *Dataset {
	return &Dataset{Fields: Fields{}}
}

// Get returns the value for key from the top-level fields, falling back to
// the extras list.
func (d *Dataset) Get(key string) (Value, bool) {
	if v, ok := d.Fields[key]; ok {
		return v, true
	}
	for _, extra := range d.Extras {
		if extra.Key == key {
			return Text(extra.Value), true
		}
	}
	return Value{}, false
}

// Text returns the string form of Get(key), or "" when absent.
func (d *Dataset) Text(key string) string {
	v, _ := d.Get(key)
	return v.String()
}

// Set stores a top-level field, allocating the map if needed.
func (d *Dataset) Set(key string, v Value) {
	if d.Fields == nil {
		d.Fields = Fields{}
	}
	d.Fields[key] = v
}
