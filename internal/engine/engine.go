package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ViolationKind is the coarse classification of an engine error.
type ViolationKind int

const (
	Other ViolationKind = iota
	AdditionalProperties
	UniqueItems
)

func (k ViolationKind) String() string {
	switch k {
	case AdditionalProperties:
		return "additional_properties"
	case UniqueItems:
		return "unique_items"
	default:
		return "other"
	}
}

// Violation is one leaf error reported by the engine. Location holds the
// unescaped instance pointer segments.
type Violation struct {
	Location   []string
	Kind       ViolationKind
	Properties []string // AdditionalProperties: unexpected keys, engine order
	Duplicates [2]int   // UniqueItems: indexes of the two equal items
	Keyword    string   // slash-joined keyword path, e.g. "properties" or "enum"
	Detail     string
}

// Schema is a compiled draft-7 schema. It is read-only after Compile and safe
// for concurrent use.
type Schema struct {
	s *jsonschema.Schema
}

// CompileError describes a schema that failed to compile.
type CompileError struct {
	SchemaURL    string
	Kind         string
	InstancePath string
	Err          error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s, %s, %s", e.SchemaURL, e.Kind, e.InstancePath)
}

func (e *CompileError) Unwrap() error { return e.Err }

// Compile compiles doc (a JSON-compatible tree, ideally produced by
// jsonschema.UnmarshalJSON) registered under url as a draft-7 schema with
// format assertions enabled.
func Compile(url string, doc any) (*Schema, error) {
	c := jsonschema.NewCompiler()
	c.DefaultDraft(jsonschema.Draft7)
	c.AssertFormat()
	if err := c.AddResource(url, doc); err != nil {
		return nil, &CompileError{SchemaURL: url, Kind: "resource", Err: err}
	}
	s, err := c.Compile(url)
	if err != nil {
		return nil, compileError(url, err)
	}
	return &Schema{s: s}, nil
}

func compileError(url string, err error) error {
	ce := &CompileError{SchemaURL: url, Kind: err.Error(), Err: err}
	var sve *jsonschema.SchemaValidationError
	if !errors.As(err, &sve) {
		return ce
	}
	var ve *jsonschema.ValidationError
	if !errors.As(sve.Err, &ve) {
		return ce
	}
	leaf := firstLeaf(ve)
	ce.SchemaURL = leaf.SchemaURL
	ce.Kind = leaf.ErrorKind.LocalizedString(newPrinter())
	ce.InstancePath = Pointer(leaf.InstanceLocation)
	return ce
}

// Validate runs v against the schema. It returns nil when v is valid, and the
// flattened leaf violations, in engine order, otherwise.
func (s *Schema) Validate(v any) []Violation {
	err := s.s.Validate(v)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		// the engine only fails with *ValidationError; keep a generic entry
		return []Violation{{Kind: Other, Detail: err.Error()}}
	}
	return flatten(ve, nil, newPrinter())
}

// flatten walks the error tree depth-first. Wrapper nodes (subschema
// evaluation, $ref, groups, allOf) are descended into; every other node is a
// leaf, including anyOf/oneOf failures.
func flatten(ve *jsonschema.ValidationError, out []Violation, p *message.Printer) []Violation {
	if len(ve.Causes) > 0 && isWrapper(ve.ErrorKind) {
		for _, c := range ve.Causes {
			out = flatten(c, out, p)
		}
		return out
	}
	return append(out, toViolation(ve, p))
}

func firstLeaf(ve *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(ve.Causes) > 0 && isWrapper(ve.ErrorKind) {
		ve = ve.Causes[0]
	}
	return ve
}

func isWrapper(k jsonschema.ErrorKind) bool {
	switch k.(type) {
	case *kind.Schema, *kind.Reference, *kind.Group, *kind.AllOf:
		return true
	}
	return false
}

func toViolation(ve *jsonschema.ValidationError, p *message.Printer) Violation {
	v := Violation{
		Location: append([]string(nil), ve.InstanceLocation...),
		Keyword:  strings.Join(ve.ErrorKind.KeywordPath(), "/"),
		Detail:   ve.ErrorKind.LocalizedString(p),
	}
	switch k := ve.ErrorKind.(type) {
	case *kind.AdditionalProperties:
		v.Kind = AdditionalProperties
		v.Properties = append([]string(nil), k.Properties...)
	case *kind.UniqueItems:
		v.Kind = UniqueItems
		v.Duplicates = k.Duplicates
	default:
		v.Kind = Other
	}
	return v
}

func newPrinter() *message.Printer {
	return message.NewPrinter(language.English)
}

// Pointer renders location segments as an RFC 6901 JSON Pointer. The root is
// the empty string.
func Pointer(location []string) string {
	if len(location) == 0 {
		return ""
	}
	b := &strings.Builder{}
	for _, seg := range location {
		b.WriteByte('/')
		b.WriteString(strings.ReplaceAll(strings.ReplaceAll(seg, "~", "~0"), "/", "~1"))
	}
	return b.String()
}
