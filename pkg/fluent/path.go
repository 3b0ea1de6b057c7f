package fluent

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// DataGet resolves a dotted path ("user.email", "tags.0") against target.
// Maps with string keys, slices/arrays (numeric segments), Records and
// structs (exported field name or json tag) are traversed. The boolean is
// false when any segment cannot be resolved.
func DataGet(target any, path string) (any, bool) {
	path = strings.TrimSpace(path)
	if path == "" {
		return target, target != nil
	}

	current := target
	for _, segment := range strings.Split(path, ".") {
		next, ok := segmentValue(current, segment)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

// StringValue resolves path and formats the result, returning "" for missing
// or nil values.
func StringValue(target any, path string) string {
	value, ok := DataGet(target, path)
	if !ok || value == nil {
		return ""
	}
	return ToString(value)
}

// ToString formats scalar values the way they are expected inside HTML
// attribute values.
func ToString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case fmt.Stringer:
		return v.String()
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ""
		}
		return ToString(rv.Elem().Interface())
	}
	return fmt.Sprint(value)
}

func segmentValue(current any, segment string) (any, bool) {
	if current == nil {
		return nil, false
	}

	switch v := current.(type) {
	case Record:
		return v.Get(segment)
	case map[string]any:
		value, ok := v[segment]
		return value, ok
	case map[string]string:
		value, ok := v[segment]
		return value, ok
	case []any:
		return indexValue(reflect.ValueOf(v), segment)
	}

	rv := reflect.ValueOf(current)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		value := rv.MapIndex(reflect.ValueOf(segment).Convert(rv.Type().Key()))
		if !value.IsValid() {
			return nil, false
		}
		return value.Interface(), true
	case reflect.Slice, reflect.Array:
		return indexValue(rv, segment)
	case reflect.Struct:
		return structField(rv, segment)
	}
	return nil, false
}

func indexValue(rv reflect.Value, segment string) (any, bool) {
	idx, err := strconv.Atoi(segment)
	if err != nil || idx < 0 || idx >= rv.Len() {
		return nil, false
	}
	return rv.Index(idx).Interface(), true
}

func structField(rv reflect.Value, segment string) (any, bool) {
	typ := rv.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		if jsonName(field) == segment || strings.EqualFold(field.Name, segment) {
			return rv.Field(i).Interface(), true
		}
	}
	return nil, false
}

func jsonName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" || tag == "-" {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	return name
}
