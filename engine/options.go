package engine

import (
	"log/slog"
)

// Option configures engine behaviour via functional options.
type Option func(*config)

type config struct {
	logger *slog.Logger
	typed  bool
}

// WithLogger sets the logger for filter summaries and aggregation warnings.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithTypedResults makes group-by emit native values (integer counts,
// double aggregates, typed group keys) instead of their string forms.
func WithTypedResults() Option {
	return func(c *config) {
		c.typed = true
	}
}

func applyOptions(opts []Option) *config {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	return cfg
}
