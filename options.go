package conllup

import (
	"log/slog"
	"strings"

	"github.com/samber/lo"

	"github.com/jamesainslie/go-conllup/token"
)

// Option configures a Generator.
type Option func(*config)

type config struct {
	policy     policy
	transfers  token.Transfers
	keepStatus bool
	logger     *slog.Logger
}

func defaultConfig() config {
	return config{
		logger: slog.Default(),
	}
}

// WithDatasets keeps only documents declared in at least one of names.
func WithDatasets(names ...string) Option {
	return func(c *config) {
		c.policy.datasets = cleanList(append(c.policy.datasets, names...))
	}
}

// WithOmitDatasets drops documents declared in any of names.
func WithOmitDatasets(names ...string) Option {
	return func(c *config) {
		c.policy.omitDatasets = cleanList(append(c.policy.omitDatasets, names...))
	}
}

// WithAnnotations keeps only documents declaring every one of levels.
func WithAnnotations(levels ...string) Option {
	return func(c *config) {
		c.policy.annotations = cleanList(append(c.policy.annotations, levels...))
	}
}

// WithOmitAnnotations drops documents declaring any of levels.
func WithOmitAnnotations(levels ...string) Option {
	return func(c *config) {
		c.policy.omitAnnotations = cleanList(append(c.policy.omitAnnotations, levels...))
	}
}

// WithTransfers selects auxiliary columns to fold into MISC.
func WithTransfers(ts ...token.Transfer) Option {
	return func(c *config) {
		c.transfers = lo.Uniq(append(c.transfers, ts...))
	}
}

// WithKeepStatus retains contained_in_datasets and annotation_levels
// comments in the output (default: false).
func WithKeepStatus(keep bool) Option {
	return func(c *config) {
		c.keepStatus = keep
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

func cleanList(names []string) []string {
	return lo.Uniq(lo.Compact(lo.Map(names, func(n string, _ int) string {
		return strings.TrimSpace(n)
	})))
}
