package netplanlint

import "strconv"

// lookup resolves unescaped pointer segments against a decoded document.
func lookup(v any, location []string) (any, bool) {
	cur := v
	for _, seg := range location {
		switch t := cur.(type) {
		case map[string]any:
			next, ok := t[seg]
			if !ok {
				return nil, false
			}
			cur = next
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(t) {
				return nil, false
			}
			cur = t[i]
		default:
			return nil, false
		}
	}
	return cur, true
}

func child(location []string, seg string) []string {
	return append(append(make([]string, 0, len(location)+1), location...), seg)
}
