package feedback

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	fbskema "github.com/reoring/fbskema"
)

// DecodeYAML reads a YAML document into the same wire tree the JSON decoder
// produces: string-keyed maps, []any and json.Number for numbers.
func DecodeYAML(r io.Reader) (any, error) {
	var raw any
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if err == io.EOF {
			return nil, fbskema.Issues{{Path: "/", Code: fbskema.CodeParseError, Message: "empty document"}}
		}
		return nil, fbskema.Issues{{Path: "/", Code: fbskema.CodeParseError, Message: err.Error(), Cause: err}}
	}
	return normalizeYAML(raw)
}

func normalizeYAML(v any) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			n, err := normalizeYAML(e)
			if err != nil {
				return nil, err
			}
			out[k] = n
		}
		return out, nil
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			n, err := normalizeYAML(e)
			if err != nil {
				return nil, err
			}
			out[fmt.Sprint(k)] = n
		}
		return out, nil
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			n, err := normalizeYAML(e)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	case int:
		return json.Number(strconv.Itoa(t)), nil
	case int64:
		return json.Number(strconv.FormatInt(t, 10)), nil
	case uint64:
		return json.Number(strconv.FormatUint(t, 10)), nil
	case float64:
		return json.Number(strconv.FormatFloat(t, 'g', -1, 64)), nil
	case time.Time:
		return t.UTC().Format(time.RFC3339Nano), nil
	}
	return v, nil
}
