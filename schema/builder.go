package schema

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.uber.org/zap"

	"github.com/reoring/netplanlint/internal/engine"
	"github.com/reoring/netplanlint/internal/yamltree"
)

// Draft 7 $ref does not extend a closed object: a referenced definition's
// properties are invisible to the referencing object's additionalProperties.
// Shared keys are copied into each category's property set before compiling.

// Categories lists the interface categories that receive the common
// properties. modems and nm-devices stay closed and empty.
var Categories = []string{"ethernets", "vlans", "bridges", "wifis", "bonds", "tunnels", "vrfs"}

// InsertionPoint returns the JSON Pointer of the per-interface properties
// mapping for a category.
func InsertionPoint(category string) string {
	return "/properties/network/properties/" + escapeToken(category) + "/patternProperties/.*$/properties"
}

// InsertionPoints returns the insertion points of all Categories.
func InsertionPoints() []string {
	out := make([]string, 0, len(Categories))
	for _, c := range Categories {
		out = append(out, InsertionPoint(c))
	}
	return out
}

// Option configures Build.
type Option func(*options)

type options struct {
	log *zap.Logger
}

// WithLogger sets the logger used for build diagnostics. Defaults to a no-op
// logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

const (
	stageParse   = "parse"
	stageCompile = "compile"
)

// BuildError reports a schema that could not be assembled. It is a
// programmer error: the literals are embedded, so it never depends on user
// input.
type BuildError struct {
	Stage        string // "parse" or "compile"
	SchemaURL    string
	Kind         string
	InstancePath string
	Err          error
}

func (e *BuildError) Error() string {
	if e.Stage == stageParse {
		return fmt.Sprintf("schema: %s: %v", e.SchemaURL, e.Err)
	}
	return fmt.Sprintf("schema: compile failed: %s, %s, %s", e.SchemaURL, e.Kind, e.InstancePath)
}

func (e *BuildError) Unwrap() error { return e.Err }

// Build assembles the network schema from the embedded literals and compiles
// it as draft 7. The result is immutable and may be shared across goroutines.
func Build(opts ...Option) (*Compiled, error) {
	return build(networkSchema, commonProperties, opts...)
}

func build(base, fragment []byte, opts ...Option) (*Compiled, error) {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	doc, err := decodeMapping("network.schema.yaml", base)
	if err != nil {
		return nil, err
	}
	common, err := decodeMapping("common.yaml", fragment)
	if err != nil {
		return nil, err
	}

	patched := Patch(doc, common)
	for _, p := range patched {
		o.log.Debug("injected common properties", zap.String("pointer", p), zap.Int("keys", len(common)))
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, &BuildError{Stage: stageCompile, SchemaURL: ResourceURL, Kind: "marshal", Err: err}
	}
	loaded, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, &BuildError{Stage: stageCompile, SchemaURL: ResourceURL, Kind: "unmarshal", Err: err}
	}
	s, err := engine.Compile(ResourceURL, loaded)
	if err != nil {
		be := &BuildError{Stage: stageCompile, SchemaURL: ResourceURL, Kind: err.Error(), Err: err}
		var ce *engine.CompileError
		if errors.As(err, &ce) {
			be.SchemaURL, be.Kind, be.InstancePath = ce.SchemaURL, ce.Kind, ce.InstancePath
		}
		return nil, be
	}
	o.log.Debug("schema compiled", zap.Strings("patched", patched))
	return &Compiled{engine: s, doc: doc, patched: patched}, nil
}

func decodeMapping(name string, data []byte) (map[string]any, error) {
	d, err := yamltree.Decode(data)
	if err != nil {
		return nil, &BuildError{Stage: stageParse, SchemaURL: name, Err: err}
	}
	m, ok := d.Value.(map[string]any)
	if !ok {
		return nil, &BuildError{Stage: stageParse, SchemaURL: name, Err: fmt.Errorf("root is %T, want mapping", d.Value)}
	}
	return m, nil
}

// Patch merges every key of fragment into each insertion point present in
// doc. On a collision the fragment value wins. Each point receives its own
// deep copy of the fragment. It returns the pointers that were patched, in
// Categories order; missing points are skipped.
func Patch(doc, fragment map[string]any) []string {
	var patched []string
	for _, p := range InsertionPoints() {
		props, ok := lookupMapping(doc, p)
		if !ok {
			continue
		}
		for k, v := range fragment {
			props[k] = deepCopy(v)
		}
		patched = append(patched, p)
	}
	return patched
}

// lookupMapping resolves an RFC 6901 pointer to a mapping inside doc.
func lookupMapping(doc map[string]any, pointer string) (map[string]any, bool) {
	cur := doc
	for _, tok := range strings.Split(strings.TrimPrefix(pointer, "/"), "/") {
		next, ok := cur[unescapeToken(tok)].(map[string]any)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

func escapeToken(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "~", "~0"), "/", "~1")
}

func unescapeToken(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "~1", "/"), "~0", "~")
}

func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = deepCopy(vv)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = deepCopy(t[i])
		}
		return out
	default:
		return v
	}
}
