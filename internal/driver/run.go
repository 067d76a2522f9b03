package driver

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"quantgen/internal/decl"
	"quantgen/internal/diag"
	"quantgen/internal/observ"
	"quantgen/internal/outcome"
	"quantgen/internal/resolve"
	"quantgen/internal/source"
	"quantgen/internal/units"
)

// Options configures a run.
type Options struct {
	// Jobs bounds the number of unit types processed at once; <= 0 means GOMAXPROCS.
	Jobs           int
	MaxDiagnostics int
	// WarningsAsErrors reports every warning with error severity.
	WarningsAsErrors bool
	Logger           *slog.Logger
	PhaseObserver    PhaseObserver
}

// TypeResult is one validated unit type and the order of its dependents.
type TypeResult struct {
	Unit       units.UnitType
	Resolution resolve.Resolution[units.Params]
}

// Result is the outcome of a whole run. Diagnostics are in declaration
// order within each phase, and phases follow each other.
type Result struct {
	FileSet    *source.FileSet
	Units      []TypeResult
	Quantities []units.Quantity
	Bag        *diag.Bag
	Timing     observ.Report
}

// RunFiles loads paths and runs every phase over their declarations.
func RunFiles(ctx context.Context, paths []string, opts Options) (*Result, error) {
	fs := source.NewFileSet()
	bag := diag.NewBag(opts.MaxDiagnostics)
	docs := decl.Load(fs, paths, diag.BagReporter{Bag: bag})
	res, err := Run(ctx, fs, docs, opts)
	if err != nil {
		return nil, err
	}
	bag.Merge(res.Bag)
	res.Bag = bag
	return res, nil
}

// Run processes, validates and resolves the declarations of docs. It returns
// an error only when ctx is cancelled; declaration problems are diagnostics.
func Run(ctx context.Context, fs *source.FileSet, docs []*decl.Document, opts Options) (*Result, error) {
	r := &runner{
		opts:  opts,
		log:   opts.Logger,
		timer: observ.NewTimer(),
		proc:  units.NewProcessor(units.NewDiagnostics(opts.WarningsAsErrors)),
		bag:   diag.NewBag(opts.MaxDiagnostics),
	}
	if r.log == nil {
		r.log = slog.New(slog.DiscardHandler)
	}
	if r.opts.Jobs <= 0 {
		r.opts.Jobs = runtime.GOMAXPROCS(0)
	}

	var rawUnits []units.RawUnitType
	var rawQuantities []units.RawQuantity
	for _, doc := range docs {
		rawUnits = append(rawUnits, doc.Units...)
		rawQuantities = append(rawQuantities, doc.Quantities...)
	}
	r.log.Debug("declarations collected", "files", len(docs), "units", len(rawUnits), "quantities", len(rawQuantities))

	processed, err := phase(r, PhaseProcess, func() ([]outcome.Optional[units.UnitType], error) {
		return parallel(ctx, r.opts.Jobs, rawUnits, r.proc.ProcessUnitType)
	})
	if err != nil {
		return nil, err
	}
	var types []units.UnitType
	for _, o := range processed {
		r.bag.AddAll(o.Diagnostics())
		if u, ok := o.Get(); ok {
			types = append(types, u)
		}
	}

	pop, _ := phase(r, PhasePopulation, func() (*units.Population, error) {
		p := r.proc.BuildPopulation(types)
		r.bag.AddAll(p.Diagnostics())
		return p.Value(), nil
	})

	validated, err := phase(r, PhaseValidate, func() ([]outcome.Result[units.UnitType], error) {
		return parallel(ctx, r.opts.Jobs, pop.Units(), func(u units.UnitType) outcome.Result[units.UnitType] {
			return r.proc.ValidateUnitType(u, pop)
		})
	})
	if err != nil {
		return nil, err
	}
	for _, v := range validated {
		r.bag.AddAll(v.Diagnostics())
	}

	resolutions, err := phase(r, PhaseResolve, func() ([]outcome.Result[resolve.Resolution[units.Params]], error) {
		return parallel(ctx, r.opts.Jobs, validated, func(v outcome.Result[units.UnitType]) outcome.Result[resolve.Resolution[units.Params]] {
			return r.proc.Resolve(v.Value())
		})
	})
	if err != nil {
		return nil, err
	}
	resolved := make([]TypeResult, len(resolutions))
	for i, res := range resolutions {
		r.bag.AddAll(res.Diagnostics())
		resolved[i] = TypeResult{Unit: validated[i].Value(), Resolution: res.Value()}
		r.log.Debug("unit type resolved", "unit", resolved[i].Unit.Name, "passes", res.Value().Passes,
			"resolved", len(res.Value().Order), "unresolved", len(res.Value().Unresolved))
	}

	quantities, _ := phase(r, PhaseQuantities, func() ([]units.Quantity, error) {
		var out []units.Quantity
		for _, raw := range rawQuantities {
			o := r.proc.ProcessQuantity(raw, pop)
			r.bag.AddAll(o.Diagnostics())
			if q, ok := o.Get(); ok {
				out = append(out, q)
			}
		}
		return out, nil
	})

	if r.bag.Dropped() > 0 {
		r.log.Warn("diagnostic limit reached", "kept", r.bag.Len(), "dropped", r.bag.Dropped())
	}
	return &Result{
		FileSet:    fs,
		Units:      resolved,
		Quantities: quantities,
		Bag:        r.bag,
		Timing:     r.timer.Report(),
	}, nil
}

type runner struct {
	opts  Options
	log   *slog.Logger
	timer *observ.Timer
	proc  *units.Processor
	bag   *diag.Bag
}

// phase times fn and notifies the phase observer around it.
func phase[T any](r *runner, name string, fn func() (T, error)) (T, error) {
	if r.opts.PhaseObserver != nil {
		r.opts.PhaseObserver(PhaseEvent{Name: name, Status: PhaseStart})
	}
	idx := r.timer.Begin(name)
	before := r.bag.Len()
	out, err := fn()
	r.timer.End(idx, fmt.Sprintf("%d diagnostics", r.bag.Len()-before))
	if r.opts.PhaseObserver != nil {
		r.opts.PhaseObserver(PhaseEvent{Name: name, Status: PhaseEnd, Elapsed: r.timer.Elapsed(idx)})
	}
	return out, err
}

// parallel maps fn over items with at most jobs goroutines. Each item writes
// its own slot, so results keep the input order. Cancellation is checked
// before each item starts.
func parallel[In, Out any](ctx context.Context, jobs int, items []In, fn func(In) Out) ([]Out, error) {
	results := make([]Out, len(items))
	if len(items) == 0 {
		return results, ctx.Err()
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(items)))
	for i := range items {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = fn(items[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
