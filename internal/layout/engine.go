// Package layout runs the subdivision pipeline: roads, blocks, green space,
// tiling and parcel assembly, in that order.
package layout

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/layout-cli/internal/blocks"
	"github.com/sells-group/layout-cli/internal/greenspace"
	"github.com/sells-group/layout-cli/internal/model"
	"github.com/sells-group/layout-cli/internal/parcels"
	"github.com/sells-group/layout-cli/internal/planar"
	"github.com/sells-group/layout-cli/internal/roads"
	"github.com/sells-group/layout-cli/internal/subdivide"
)

// DefaultWorkers bounds per-block parallelism when no option is given.
const DefaultWorkers = 4

// Option configures an Engine.
type Option func(*Engine)

// WithKernel replaces the boolean polygon kernel.
func WithKernel(k planar.Kernel) Option {
	return func(e *Engine) { e.kernel = k }
}

// WithWorkers sets how many blocks are processed at once.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithSeed seeds the curve jitter for organic and mixed layouts. Every run
// starts from the same seed, so results are reproducible. Zero disables
// jitter.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		if seed == 0 {
			e.jitter = nil
			return
		}
		e.jitter = func() roads.Jitter { return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
	}
}

// WithJitter uses j for every run. j must not be shared with other
// goroutines while a run is in progress.
func WithJitter(j roads.Jitter) Option {
	return func(e *Engine) {
		e.jitter = func() roads.Jitter { return j }
	}
}

// WithAmplitude sets the maximum curve offset as a fraction of site height.
func WithAmplitude(a float64) Option {
	return func(e *Engine) { e.amplitude = a }
}

// WithLogger sets the logger. The global zap logger is used by default.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// Engine runs layouts. It is safe for concurrent use.
type Engine struct {
	kernel    planar.Kernel
	workers   int
	jitter    func() roads.Jitter
	amplitude float64
	log       *zap.Logger
}

// New returns an Engine. Without options runs are deterministic.
func New(opts ...Option) *Engine {
	e := &Engine{
		kernel:    planar.NewClipper(),
		workers:   DefaultWorkers,
		amplitude: roads.DefaultJitter,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = zap.L()
	}
	return e
}

// Run subdivides boundary with p. Only configuration problems are returned
// as errors; degenerate geometry is reported in Result.Diagnostics.
func (e *Engine) Run(ctx context.Context, boundary model.Boundary, p model.LayoutParameters) (*model.Result, error) {
	site, err := Validate(boundary, p)
	if err != nil {
		return nil, err
	}
	runID := uuid.NewString()
	log := e.log.With(zap.String("run_id", runID), zap.String("pattern", string(p.SubdivisionType)))
	start := time.Now()
	diag := &model.Diagnostics{}

	var jitter roads.Jitter
	if e.jitter != nil {
		jitter = e.jitter()
	}
	segs, err := roads.Generate(site, p, jitter, roads.WithAmplitude(e.amplitude))
	if err != nil {
		return nil, eris.Wrap(err, "layout: generate roads")
	}
	log.Info("roads generated", zap.Int("segments", len(segs)))

	sitePoly := site.Polygon()
	ex := blocks.Extract(e.kernel, sitePoly, segs, diag)
	log.Info("blocks extracted", zap.Int("blocks", len(ex.Blocks)), zap.Float64("road_area", ex.RoadArea))

	blks := ex.Blocks
	var green []model.GreenSpace
	if p.IncludeGreenSpaces {
		blks, green = greenspace.Allocate(e.kernel, blks, sitePoly.Area(), p, diag)
		log.Info("green space allocated", zap.Int("reserves", len(green)))
	}

	plots, err := e.assemble(ctx, blks, ex.Footprint, p, diag)
	if err != nil {
		return nil, err
	}

	res := &model.Result{
		RunID:       runID,
		Boundary:    site,
		Parameters:  p,
		Roads:       segs,
		Footprint:   ex.Footprint,
		Blocks:      blks,
		GreenSpaces: green,
		Parcels:     plots,
		Diagnostics: diag.Items(),
	}
	res.Stats = ComputeStats(res)

	for _, d := range res.Diagnostics {
		log.Warn("degenerate geometry", zap.String("stage", d.Stage), zap.String("ref", d.Ref), zap.String("reason", d.Reason))
	}
	log.Info("layout complete",
		zap.Int("parcels", len(plots)),
		zap.Int("diagnostics", len(res.Diagnostics)),
		zap.Float64("efficiency", res.Stats.Efficiency),
		zap.Duration("elapsed", time.Since(start)),
	)
	return res, nil
}

// assemble tiles every block in parallel, numbers the pieces in block
// order, then builds the parcels in parallel. Per-block diagnostics are
// merged in block order so reports are stable across runs.
func (e *Engine) assemble(ctx context.Context, blks []model.Block, footprint planar.MultiPolygon, p model.LayoutParameters, diag *model.Diagnostics) ([]model.Parcel, error) {
	tilings := make([]subdivide.Tiling, len(blks))
	local := make([]*model.Diagnostics, len(blks))
	for i := range local {
		local[i] = &model.Diagnostics{}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := range blks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			tilings[i] = subdivide.Subdivide(e.kernel, blks[i], p, local[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "layout: subdivide blocks")
	}

	first := make([]int, len(blks))
	next := 1
	for i, t := range tilings {
		first[i] = next
		next += len(t.Pieces)
	}

	out := make([][]model.Parcel, len(blks))
	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := range blks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = parcels.Assemble(e.kernel, blks[i].Index, first[i], tilings[i], footprint, p, local[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "layout: assemble parcels")
	}

	all := make([]model.Parcel, 0, next-1)
	for i := range out {
		all = append(all, out[i]...)
		diag.Merge(local[i])
	}
	return all, nil
}
