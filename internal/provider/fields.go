package provider

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// record is one loosely typed JSON object returned by an upstream API.
type record = map[string]any

// decodeRecords accepts either a bare JSON array of objects or an object that
// wraps the array under one of the usual envelope keys.
func decodeRecords(body []byte) ([]record, error) {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}

	if strings.HasPrefix(trimmed, "[") {
		var list []record
		if err := json.Unmarshal(body, &list); err != nil {
			return nil, err
		}
		return list, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}
	for _, key := range []string{"data", "news", "results", "Table", "alerts"} {
		raw, ok := envelope[key]
		if !ok {
			continue
		}
		var list []record
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, fmt.Errorf("envelope key %q: %w", key, err)
		}
		return list, nil
	}
	return nil, fmt.Errorf("unexpected response shape")
}

// stringField returns the first non-blank value among keys, in order. The
// value is returned as sent.
func stringField(r record, keys ...string) string {
	for _, k := range keys {
		if s := asString(r[k]); strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

// intField returns the first numeric value among keys. ok is false when none
// of the keys hold a number.
func intField(r record, keys ...string) (int, bool) {
	for _, k := range keys {
		v, present := r[k]
		if !present || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			if math.IsNaN(n) || math.IsInf(n, 0) {
				continue
			}
			return int(n), true
		case string:
			f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
			if err != nil {
				continue
			}
			return int(f), true
		case json.Number:
			f, err := n.Float64()
			if err != nil {
				continue
			}
			return int(f), true
		}
	}
	return 0, false
}

// stringsField reads a list of strings. A comma separated string is accepted.
func stringsField(r record, keys ...string) []string {
	for _, k := range keys {
		switch v := r[k].(type) {
		case []any:
			out := make([]string, 0, len(v))
			for _, item := range v {
				if s := asString(item); strings.TrimSpace(s) != "" {
					out = append(out, s)
				}
			}
			return out
		case []string:
			return append([]string{}, v...)
		case string:
			var out []string
			for _, part := range strings.Split(v, ",") {
				if part = strings.TrimSpace(part); part != "" {
					out = append(out, part)
				}
			}
			if out != nil {
				return out
			}
		}
	}
	return []string{}
}

func asString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		if s == math.Trunc(s) && math.Abs(s) < 1e15 {
			return strconv.FormatInt(int64(s), 10)
		}
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}

// sanitizeText is for display text such as error bodies. It collapses
// whitespace and caps the length at maxLen bytes when maxLen is positive.
func sanitizeText(in string, maxLen int) string {
	in = strings.Join(strings.Fields(in), " ")
	if maxLen > 0 && len(in) > maxLen {
		in = in[:maxLen]
	}
	return in
}

// withoutKeys copies r minus every key in the given lists.
func withoutKeys(r record, lists ...[]string) map[string]any {
	skip := map[string]bool{}
	for _, l := range lists {
		for _, k := range l {
			skip[k] = true
		}
	}
	out := map[string]any{}
	for k, v := range r {
		if !skip[k] {
			out[k] = v
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
