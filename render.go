package netplanlint

import (
	"fmt"

	"github.com/goccy/go-json"
)

// renderValue renders a decoded value as compact JSON, the form used in
// messages: strings quoted, maps with sorted keys.
func renderValue(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
