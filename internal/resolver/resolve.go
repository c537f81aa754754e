package resolver

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/genomebank/taxofetch/internal/catalog"
	"github.com/genomebank/taxofetch/internal/model"
	"github.com/genomebank/taxofetch/internal/taxon"
)

// reasonUnparseable is recorded on NOT_FOUND rows caused by name-parse
// failures rather than catalog misses.
const reasonUnparseable = "unparseable name"

// Options tunes a Resolver.
type Options struct {
	Scope model.SourceScope
	// PreferQuality re-ranks genus fallbacks across databases by assembly
	// quality instead of always preferring RefSeq. See Merge.
	PreferQuality bool
	// Workers bounds per-target parallelism. Zero means 8.
	Workers int
}

// Resolver resolves raw species names against a loaded catalog pair. It is
// a pure transformation: the tables are read-only and each target is
// independent of every other.
type Resolver struct {
	tables *catalog.Pair
	opts   Options
}

// New creates a Resolver over the given catalog pair.
func New(tables *catalog.Pair, opts Options) *Resolver {
	if opts.Workers <= 0 {
		opts.Workers = 8
	}
	if opts.Scope == "" {
		opts.Scope = model.ScopeBoth
	}
	return &Resolver{tables: tables, opts: opts}
}

// ResolveOne resolves a single raw species name. Parse failures yield a
// NOT_FOUND result, never an error.
func (r *Resolver) ResolveOne(raw string) model.MergedResult {
	target, err := taxon.ParseTarget(raw)
	if err != nil {
		zap.L().Debug("resolver: unparseable target", zap.String("raw", raw), zap.Error(err))
		return model.MergedResult{
			Target: target,
			Type:   model.MatchNotFound,
			Reason: reasonUnparseable,
		}
	}

	refseq := model.MatchResult{Target: target, Type: model.MatchNotFound}
	genbank := model.MatchResult{Target: target, Type: model.MatchNotFound}
	if r.opts.Scope.WantsRefSeq() {
		refseq = Match(target, r.tables.RefSeq)
	}
	if r.opts.Scope.WantsGenBank() {
		genbank = Match(target, r.tables.GenBank)
	}

	return Merge(refseq, genbank, r.opts.Scope, r.opts.PreferQuality)
}

// Resolve resolves every raw name, fanning targets across a bounded worker
// group. Results come back in input order; the order of the report is an
// observable contract, not an implementation detail. The only error case is
// context cancellation.
func (r *Resolver) Resolve(ctx context.Context, raws []string) ([]model.MergedResult, error) {
	results := make([]model.MergedResult, len(raws))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Workers)

	for i, raw := range raws {
		i, raw := i, raw
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return eris.Wrap(err, "resolver: cancelled")
			}
			results[i] = r.ResolveOne(raw)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Tally counts results by match type, in the shape the run audit wants.
func Tally(results []model.MergedResult) (exact, fallback, notFound int) {
	for _, res := range results {
		switch res.Type {
		case model.MatchExact:
			exact++
		case model.MatchGenusFallback:
			fallback++
		default:
			notFound++
		}
	}
	return exact, fallback, notFound
}
