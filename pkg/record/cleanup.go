package record

// bookkeepingKeys are form artefacts that never belong in a stored record.
var bookkeepingKeys = map[string]struct{}{
	"csrf_token":    {},
	"old_relations": {},
}

// Cleanup recursively removes entries whose value is an empty string, an
// empty list, a map whose values are all empty, or nil. Zero numbers and
// false booleans survive. Bookkeeping keys are stripped at every level.
// The input map is mutated and returned for chaining.
func Cleanup(data map[string]any) map[string]any {
	for key, value := range data {
		if _, drop := bookkeepingKeys[key]; drop {
			delete(data, key)
			continue
		}
		cleaned, keep := cleanValue(value)
		if !keep {
			delete(data, key)
			continue
		}
		data[key] = cleaned
	}
	return data
}

func cleanValue(value any) (any, bool) {
	switch v := value.(type) {
	case nil:
		return nil, false
	case string:
		return v, v != ""
	case map[string]any:
		cleaned := Cleanup(v)
		return cleaned, len(cleaned) > 0
	case []any:
		out := make([]any, 0, len(v))
		for _, item := range v {
			cleaned, keep := cleanValue(item)
			if keep {
				out = append(out, cleaned)
			}
		}
		return out, len(out) > 0
	case []string:
		out := make([]any, 0, len(v))
		for _, item := range v {
			if item != "" {
				out = append(out, item)
			}
		}
		return out, len(out) > 0
	default:
		// Numbers and booleans are kept even when zero-valued.
		return v, true
	}
}
