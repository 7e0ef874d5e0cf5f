package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xavierca1/leadlocal/internal/entity"
)

type Result struct {
	Leads    []entity.Lead `json:"leads"`
	Warnings []Warning     `json:"warnings,omitempty"`
}

// Aggregator queries every provider concurrently and merges the answers.
type Aggregator struct {
	providers []Provider
	logger    *zap.Logger
	newID     func() string
}

func NewAggregator(logger *zap.Logger, providers ...Provider) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{
		providers: providers,
		logger:    logger.Named("search"),
		newID:     func() string { return uuid.New().String() },
	}
}

func (a *Aggregator) Providers() []string {
	names := make([]string, len(a.providers))
	for i, p := range a.providers {
		names[i] = p.Name()
	}
	return names
}

type providerOutcome struct {
	records []Record
	err     error
}

// Search fans out to all providers and waits for every call to settle.
// A failing provider only adds a warning; ErrSearchFailed is returned when
// all of them fail.
func (a *Aggregator) Search(ctx context.Context, req Request) (*Result, error) {
	if len(a.providers) == 0 {
		return nil, fmt.Errorf("%w: no providers configured", ErrSearchFailed)
	}

	// Each goroutine owns one slot; nothing is shared until Wait returns.
	outcomes := make([]providerOutcome, len(a.providers))

	// The group has no derived context: one failure must not cancel the rest.
	var g errgroup.Group
	for i, p := range a.providers {
		g.Go(func() error {
			start := time.Now()
			records, err := p.Search(ctx, req)
			outcomes[i] = providerOutcome{records: records, err: err}
			a.logger.Debug("provider finished",
				zap.String("provider", p.Name()),
				zap.Int("records", len(records)),
				zap.Duration("elapsed", time.Since(start)),
				zap.Error(err),
			)
			return nil
		})
	}
	_ = g.Wait()

	var (
		all      []sourcedRecord
		warnings []Warning
		failures []error
	)
	for i, out := range outcomes {
		name := a.providers[i].Name()
		if out.err != nil {
			perr := &ProviderError{Provider: name, Err: out.err}
			failures = append(failures, perr)
			warnings = append(warnings, Warning{Provider: name, Message: ErrProviderUnavailable.Error()})
			a.logger.Warn("provider unavailable, continuing without it",
				zap.String("provider", name),
				zap.Error(out.err),
			)
			continue
		}
		for _, r := range out.records {
			all = append(all, sourcedRecord{source: name, record: r})
		}
	}

	if len(failures) == len(a.providers) {
		return nil, fmt.Errorf("%w: %w", ErrSearchFailed, errors.Join(failures...))
	}

	leads := merge(all)
	if limit := req.EffectiveLimit(); len(leads) > limit {
		leads = leads[:limit]
	}
	for i := range leads {
		leads[i].ID = a.newID()
	}

	a.logger.Info("search aggregated",
		zap.Int("raw_records", len(all)),
		zap.Int("leads", len(leads)),
		zap.Int("failed_providers", len(failures)),
	)

	return &Result{Leads: leads, Warnings: warnings}, nil
}
