package schema

import "github.com/reoring/netplanlint/internal/engine"

// Violation is one structural failure reported while checking a document.
type Violation = engine.Violation

// ViolationKind classifies a Violation.
type ViolationKind = engine.ViolationKind

const (
	ViolationOther                = engine.Other
	ViolationAdditionalProperties = engine.AdditionalProperties
	ViolationUniqueItems          = engine.UniqueItems
)

// Compiled is the assembled, compiled network schema. It holds no mutable
// state after Build returns.
type Compiled struct {
	engine  *engine.Schema
	doc     map[string]any
	patched []string
}

// Check validates a JSON-compatible value (see yamltree) and returns every
// violation in engine order, or nil when v conforms.
func (c *Compiled) Check(v any) []Violation {
	return c.engine.Validate(v)
}

// Document returns a deep copy of the patched schema document.
func (c *Compiled) Document() map[string]any {
	return deepCopy(c.doc).(map[string]any)
}

// Patched returns the insertion points that received the common properties.
func (c *Compiled) Patched() []string {
	return append([]string(nil), c.patched...)
}
