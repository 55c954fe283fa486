package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

var unmarshalerType = reflect.TypeFor[json.Unmarshaler]()

// decodeLenient unmarshals the JSON object raw into target, a pointer to a
// struct. Values that cannot be decoded into their field are removed first,
// so the field stays at its zero value (nil for pointers).
func decodeLenient(raw []byte, target any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return err
	}
	obj, ok := doc.(map[string]any)
	if !ok {
		return fmt.Errorf("expected a JSON object, got %s", jsonKind(doc))
	}

	pruneObject(obj, reflect.TypeOf(target).Elem())

	clean, err := json.Marshal(obj)
	if err != nil {
		return err
	}
	return json.Unmarshal(clean, target)
}

// pruneObject drops the keys of obj whose values do not fit the matching
// field of struct type t. Keys without a field are left for json to ignore.
func pruneObject(obj map[string]any, t reflect.Type) {
	fields := make(map[string]reflect.Type, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		fields[strings.ToLower(name)] = f.Type
	}

	for key, value := range obj {
		ft, ok := fields[strings.ToLower(key)]
		if !ok || value == nil {
			continue
		}
		if !fits(value, ft) {
			delete(obj, key)
		}
	}
}

// fits reports whether value decodes into type t, pruning nested objects
// along the way.
func fits(value any, t reflect.Type) bool {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t.Kind() == reflect.Struct && !reflect.PointerTo(t).Implements(unmarshalerType) {
		obj, ok := value.(map[string]any)
		if !ok {
			return false
		}
		pruneObject(obj, t)
		return true
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		return false
	}
	return json.Unmarshal(encoded, reflect.New(t).Interface()) == nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	default:
		return "number"
	}
}
