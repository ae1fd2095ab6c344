// Package fetch runs registry lookups in the background so callers never
// block on the network. Results are handed back through callbacks.
package fetch

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/company/conda-env-detector/internal/logging"
	"github.com/company/conda-env-detector/internal/registry"
)

// DefaultSummaryLimit is the longest summary delivered to SummaryFunc, in characters.
const DefaultSummaryLimit = 100

// Texts delivered when a background lookup fails outright.
const (
	FailedSummary = "Failed to fetch summary"
	FailedInfo    = "Error fetching information"
)

// Fetcher performs one synchronous registry lookup.
type Fetcher interface {
	Fetch(ctx context.Context, name string) registry.Info
}

// SummaryFunc receives the caller's token and a summary of at most the
// dispatcher's limit.
type SummaryFunc func(token any, summary string)

// InfoFunc receives the full summary and description.
type InfoFunc func(summary, description string)

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// Dispatcher starts one goroutine per lookup. Goroutines are never joined or
// cancelled, and concurrent lookups of the same name are not merged. Each
// callback runs exactly once on its lookup's goroutine, in no particular order
// relative to other lookups.
type Dispatcher struct {
	fetcher      Fetcher
	logger       *log.Logger
	summaryLimit int
}

// NewDispatcher creates a dispatcher around f.
func NewDispatcher(f Fetcher, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		fetcher:      f,
		logger:       logging.Discard(),
		summaryLimit: DefaultSummaryLimit,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// WithLogger sets where failed lookups are logged.
func WithLogger(l *log.Logger) Option {
	return func(d *Dispatcher) { d.logger = l }
}

// WithSummaryLimit changes the summary truncation length.
func WithSummaryLimit(n int) Option {
	return func(d *Dispatcher) {
		if n > 0 {
			d.summaryLimit = n
		}
	}
}

// FetchSummaryAsync looks up name in the background and calls onDone with
// token and the truncated summary.
func (d *Dispatcher) FetchSummaryAsync(name string, token any, onDone SummaryFunc) {
	go func() {
		info, err := d.fetch(name)
		if err != nil {
			d.logger.Error("failed to fetch summary", "package", name, "err", err)
			onDone(token, FailedSummary)
			return
		}
		onDone(token, registry.Truncate(info.Summary, d.summaryLimit))
	}()
}

// FetchFullAsync looks up name in the background and calls onDone with the
// untruncated summary and description.
func (d *Dispatcher) FetchFullAsync(name string, onDone InfoFunc) {
	go func() {
		info, err := d.fetch(name)
		if err != nil {
			d.logger.Error("failed to fetch package info", "package", name, "err", err)
			onDone(FailedInfo, err.Error())
			return
		}
		onDone(info.Summary, info.Description)
	}()
}

// fetch converts a panicking Fetcher into an error.
func (d *Dispatcher) fetch(name string) (info registry.Info, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("fetching %s: %v", name, r)
		}
	}()

	info = d.fetcher.Fetch(context.Background(), name)
	d.logger.Debug("fetched package info", "package", name, "outcome", info.Outcome)
	return info, nil
}
