package netplanlint

import (
	"go.uber.org/zap"

	"github.com/reoring/netplanlint/i18n"
)

// Option configures a Validator.
type Option func(*Validator)

// WithLogger sets the logger for per-document debug output.
func WithLogger(l *zap.Logger) Option {
	return func(v *Validator) {
		if l != nil {
			v.log = l
		}
	}
}

// WithMetrics records every validation outcome in m.
func WithMetrics(m *Metrics) Option {
	return func(v *Validator) {
		v.metrics = m
	}
}

// WithTranslator sets the translator used by the Issues this Validator
// returns.
func WithTranslator(tr i18n.Translator) Option {
	return func(v *Validator) {
		if tr != nil {
			v.tr = tr
		}
	}
}
