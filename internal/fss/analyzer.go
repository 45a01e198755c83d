package fss

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// TableLoader returns the observable record for one lattice size. A missing
// table must be reported with an error matching ErrTableNotFound.
type TableLoader interface {
	LoadTable(L int) (*Record, error)
}

type Analyzer struct {
	params  Params
	palette []string
	loader  TableLoader
	strict  bool
	logger  *slog.Logger
}

type Option func(*Analyzer)

// WithStrict turns a run that finds no tables at all into ErrNoTables.
func WithStrict(strict bool) Option {
	return func(a *Analyzer) { a.strict = strict }
}

func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

func NewAnalyzer(params Params, palette []string, loader TableLoader, opts ...Option) *Analyzer {
	a := &Analyzer{
		params:  params,
		palette: palette,
		loader:  loader,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.With(slog.String("component", "fss"))
	return a
}

// Run loads each configured size in order, skipping missing tables with a
// warning, and collapses what it finds. Any other load error aborts the run.
func (a *Analyzer) Run() (*Figure, error) {
	if err := a.params.Validate(); err != nil {
		return nil, err
	}
	legend, err := NewLegend(a.params.Sizes, a.palette)
	if err != nil {
		return nil, err
	}

	fig := &Figure{Params: a.params, Legend: legend}
	for _, L := range a.params.Sizes {
		rec, err := a.loader.LoadTable(L)
		if err != nil {
			var missing *MissingTableError
			if errors.As(err, &missing) {
				a.logger.Warn("observable table not found, skipping size",
					slog.Int("L", L),
					slog.String("file", missing.File),
					slog.String("dir", missing.Dir))
				fig.Skipped = append(fig.Skipped, L)
				continue
			}
			if errors.Is(err, ErrTableNotFound) {
				a.logger.Warn("observable table not found, skipping size", slog.Int("L", L))
				fig.Skipped = append(fig.Skipped, L)
				continue
			}
			return nil, fmt.Errorf("load L=%d: %w", L, err)
		}

		entry, _ := legend.Entry(L)
		fig.Series = append(fig.Series, Series{
			L:      L,
			Entry:  entry,
			Raw:    rec.Samples,
			Points: Collapse(rec, a.params),
		})
		a.logger.Debug("loaded observable table",
			slog.Int("L", L),
			slog.String("file", rec.Source),
			slog.Int("samples", len(rec.Samples)))
	}

	if fig.Empty() && len(a.params.Sizes) > 0 {
		if a.strict {
			return nil, fmt.Errorf("%w: tried sizes %v", ErrNoTables, a.params.Sizes)
		}
		a.logger.Warn("no observable tables found, figure will be empty",
			slog.Any("sizes", a.params.Sizes))
	}
	return fig, nil
}
