package gotemplate

import (
	"fmt"
	"reflect"

	"github.com/flosch/pongo2/v6"
	json "github.com/goccy/go-json"
)

// toContext turns view data into plain maps, slices and scalars so dotted
// lookups behave the same whatever Go types a builder passes. Structs go
// through a JSON round trip and so follow their json tags. Functions pass
// through as they are.
func toContext(data any) (pongo2.Context, error) {
	if data == nil {
		return pongo2.Context{}, nil
	}
	var root map[string]any
	switch v := data.(type) {
	case pongo2.Context:
		root = v
	case map[string]any:
		root = v
	default:
		plain, err := plainValue(v)
		if err != nil {
			return nil, err
		}
		m, ok := plain.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("view data must be an object, got %T", data)
		}
		root = m
	}

	ctx := make(pongo2.Context, len(root))
	for key, value := range root {
		if key == "" {
			continue
		}
		plain, err := plainValue(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		ctx[key] = plain
	}
	return ctx, nil
}

func plainValue(value any) (any, error) {
	switch v := value.(type) {
	case nil, string, bool, int, int64, float64:
		return v, nil
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			plain, err := plainValue(item)
			if err != nil {
				return nil, err
			}
			out[key] = plain
		}
		return out, nil
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			plain, err := plainValue(item)
			if err != nil {
				return nil, err
			}
			out[i] = plain
		}
		return out, nil
	}
	if reflect.TypeOf(value).Kind() == reflect.Func {
		return value, nil
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var decoded any
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		return nil, err
	}
	return decoded, nil
}
