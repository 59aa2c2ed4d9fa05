package netplanlint

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/netplanlint/i18n"
)

// Kind is the user-facing classification of a failed document.
type Kind int

const (
	// KindUnexpectedValue covers every schema violation that is not one of
	// the kinds below: type, enum, pattern, range, format, missing key.
	KindUnexpectedValue Kind = iota
	// KindUnexpectedKeyword reports a key a closed object does not declare.
	KindUnexpectedKeyword
	// KindDuplicateItem reports a repeated element in a unique-items array.
	KindDuplicateItem
	// KindParse reports text that is not a YAML document.
	KindParse
)

func (k Kind) String() string {
	switch k {
	case KindUnexpectedKeyword:
		return "unexpected_keyword"
	case KindDuplicateItem:
		return "duplicate_item"
	case KindParse:
		return "parse_error"
	default:
		return "unexpected_value"
	}
}

func (k Kind) messageKey() string {
	switch k {
	case KindUnexpectedKeyword:
		return i18n.KeyUnexpectedKeyword
	case KindDuplicateItem:
		return i18n.KeyDuplicateItem
	case KindParse:
		return i18n.KeyParseError
	default:
		return i18n.KeyUnexpectedValue
	}
}

// Issue is a classified validation failure. Its Error method yields the
// single-line message shown to users.
type Issue struct {
	Kind Kind
	// Path is the JSON Pointer of the offending node ("" for the document
	// root). For KindDuplicateItem it points at the array.
	Path string
	// Key is the first unexpected key (KindUnexpectedKeyword only).
	Key string
	// Value is the offending value rendered as compact JSON. For
	// KindDuplicateItem it is the repeated element.
	Value string
	// Line and Column locate the offending node in the input, 1-based;
	// zero when unknown.
	Line   int
	Column int
	// Detail is the engine's own description of the violation.
	Detail string
	// Cause is the underlying parser error (KindParse only).
	Cause error

	tr i18n.Translator
}

// Error renders the message with the translator the Issue was created with,
// English by default.
func (i *Issue) Error() string {
	tr := i.tr
	if tr == nil {
		tr = i18n.Default()
	}
	return i.Message(tr)
}

// Message renders the message with tr.
func (i *Issue) Message(tr i18n.Translator) string {
	return tr.Message(i.Kind.messageKey(), map[string]string{
		"path":  i.Path,
		"key":   i.Key,
		"value": i.Value,
	})
}

func (i *Issue) Unwrap() error { return i.Cause }

// Issues is an ordered list of classified failures.
type Issues []*Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := min(len(iss), maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(iss[i].Error())
	}
	if n := len(iss); n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AsIssue extracts an *Issue from err using errors.As.
func AsIssue(err error) (*Issue, bool) {
	if err == nil {
		return nil, false
	}
	var is *Issue
	if errors.As(err, &is) {
		return is, true
	}
	return nil, false
}
