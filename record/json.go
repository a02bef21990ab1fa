package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

const (
	resourcesKey = "resources"
	extrasKey    = "extras"
)

// MarshalJSON encodes a scalar as a JSON string and a list as an array.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.list {
		items := v.items
		if items == nil {
			items = []string{}
		}
		return json.Marshal(items)
	}
	return json.Marshal(v.text)
}

// UnmarshalJSON accepts strings, numbers, booleans and arrays of those.
// Numbers keep their literal text.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		items := make([]string, 0, len(raw))
		for _, item := range raw {
			s, err := scalarText(item)
			if err != nil {
				return err
			}
			items = append(items, s)
		}
		*v = List(items...)
		return nil
	}
	s, err := scalarText(data)
	if err != nil {
		return err
	}
	*v = Text(s)
	return nil
}

func scalarText(data []byte) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return "", err
	}
	switch value := raw.(type) {
	case string:
		return value, nil
	case json.Number:
		return value.String(), nil
	case bool:
		if value {
			return "true", nil
		}
		return "false", nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("record: unsupported value %s", string(data))
	}
}

// MarshalJSON encodes the dataset as a flat object with "extras" and
// "resources" arrays next to the fields.
func (d Dataset) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(d.Fields)+2)
	for key, value := range d.Fields {
		out[key] = value
	}
	if len(d.Extras) > 0 {
		out[extrasKey] = d.Extras
	}
	resources := d.Resources
	if resources == nil {
		resources = []Fields{}
	}
	out[resourcesKey] = resources
	return json.Marshal(out)
}

// UnmarshalJSON decodes a flat dataset object. Null fields are treated as
// absent.
func (d *Dataset) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d.Fields = Fields{}
	d.Extras = nil
	d.Resources = nil
	for key, value := range raw {
		if isNull(value) {
			continue
		}
		switch key {
		case extrasKey:
			if err := json.Unmarshal(value, &d.Extras); err != nil {
				return fmt.Errorf("record: extras: %w", err)
			}
		case resourcesKey:
			var resources []map[string]json.RawMessage
			if err := json.Unmarshal(value, &resources); err != nil {
				return fmt.Errorf("record: resources: %w", err)
			}
			for i, resource := range resources {
				fields, err := decodeFields(resource)
				if err != nil {
					return fmt.Errorf("record: resources[%d]: %w", i, err)
				}
				d.Resources = append(d.Resources, fields)
			}
		default:
			var v Value
			if err := json.Unmarshal(value, &v); err != nil {
				return fmt.Errorf("record: field %q: %w", key, err)
			}
			d.Fields[key] = v
		}
	}
	return nil
}

func decodeFields(raw map[string]json.RawMessage) (Fields, error) {
	fields := make(Fields, len(raw))
	for key, value := range raw {
		if isNull(value) {
			continue
		}
		var v Value
		if err := json.Unmarshal(value, &v); err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
		fields[key] = v
	}
	return fields, nil
}

func isNull(data json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}

// Keys returns the field names in sorted order.
func (f Fields) Keys() []string {
	keys := make([]string, 0, len(f))
	for key := range f {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
