package netplanlint

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/reoring/netplanlint/i18n"
	"github.com/reoring/netplanlint/internal/engine"
	"github.com/reoring/netplanlint/internal/yamltree"
	"github.com/reoring/netplanlint/schema"
)

// Validator checks documents against a compiled network schema. It keeps no
// per-document state, so one Validator may be used from many goroutines.
type Validator struct {
	schema  *schema.Compiled
	log     *zap.Logger
	metrics *Metrics
	tr      i18n.Translator
}

// New returns a Validator for s. s must be non-nil.
func New(s *schema.Compiled, opts ...Option) *Validator {
	v := &Validator{schema: s, log: zap.NewNop(), tr: i18n.Default()}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate checks text against s. It returns nil when the document is valid
// and an *Issue describing the first failure otherwise.
func Validate(s *schema.Compiled, text string) error {
	return New(s).Validate(text)
}

// ValidateBytes is Validate for a byte slice.
func ValidateBytes(s *schema.Compiled, data []byte) error {
	return New(s).ValidateBytes(data)
}

// Validate checks text and returns the first failure as an *Issue, or nil.
//
// Only the first violation is reported. The order comes from the engine's
// error tree and is not guaranteed to be meaningful; use ValidateAll to see
// every violation.
func (v *Validator) Validate(text string) error {
	return v.ValidateBytes([]byte(text))
}

// ValidateBytes is Validate for a byte slice.
func (v *Validator) ValidateBytes(data []byte) error {
	iss := v.run(data, true)
	if len(iss) == 0 {
		return nil
	}
	return iss[0]
}

// ValidateAll checks text and returns every classified violation in engine
// order. A parse failure yields a single KindParse issue.
func (v *Validator) ValidateAll(text string) Issues {
	return v.run([]byte(text), false)
}

func (v *Validator) run(data []byte, firstOnly bool) Issues {
	start := time.Now()
	iss := v.check(data, firstOnly)

	result := resultValid
	if len(iss) > 0 {
		result = iss[0].Kind.String()
	}
	v.metrics.observe(result, time.Since(start))
	if len(iss) > 0 {
		v.log.Debug("document rejected",
			zap.String("kind", result),
			zap.String("path", iss[0].Path),
			zap.Int("violations", len(iss)))
	} else {
		v.log.Debug("document accepted")
	}
	return iss
}

func (v *Validator) check(data []byte, firstOnly bool) Issues {
	doc, err := yamltree.Decode(data)
	if err != nil {
		return Issues{{Kind: KindParse, Cause: err, Detail: err.Error(), tr: v.tr}}
	}
	violations := v.schema.Check(doc.Value)
	if len(violations) == 0 {
		return nil
	}
	if firstOnly {
		violations = violations[:1]
	}
	iss := make(Issues, 0, len(violations))
	for _, vi := range violations {
		iss = append(iss, v.classify(doc, vi))
	}
	return iss
}

// classify maps an engine violation onto one of the three message shapes.
func (v *Validator) classify(doc *yamltree.Document, vi schema.Violation) *Issue {
	is := &Issue{Path: engine.Pointer(vi.Location), Detail: vi.Detail, tr: v.tr}
	is.Line, is.Column = doc.Position(vi.Location)

	switch {
	case vi.Kind == schema.ViolationAdditionalProperties && len(vi.Properties) > 0:
		is.Kind = KindUnexpectedKeyword
		is.Key = vi.Properties[0]
		if line, col := doc.Position(child(vi.Location, is.Key)); line > 0 {
			is.Line, is.Column = line, col
		}
	case vi.Kind == schema.ViolationUniqueItems:
		is.Kind = KindDuplicateItem
		dup, _ := lookup(doc.Value, child(vi.Location, fmt.Sprint(vi.Duplicates[1])))
		is.Value = renderValue(dup)
	default:
		is.Kind = KindUnexpectedValue
		val, _ := lookup(doc.Value, vi.Location)
		is.Value = renderValue(val)
	}
	return is
}

// FileResult is the outcome of validating one file.
type FileResult struct {
	Path string
	// Err is the validation failure (an *Issue), nil when valid.
	Err error
	// ReadErr is set when the file could not be read; Err is then nil.
	ReadErr error
}

// ValidateFiles validates every path with at most jobs concurrent workers
// (jobs < 1 means one per path) and returns results in input order. A file
// that cannot be read is recorded in its result and does not stop the others.
// The returned error is non-nil only when ctx is done.
func (v *Validator) ValidateFiles(ctx context.Context, paths []string, jobs int) ([]FileResult, error) {
	results := make([]FileResult, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, p := range paths {
		results[i].Path = p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(p)
			if err != nil {
				results[i].ReadErr = fmt.Errorf("reading %s: %w", p, err)
				return nil
			}
			results[i].Err = v.ValidateBytes(data)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
