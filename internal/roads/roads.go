// Package roads synthesizes the road network for a site boundary. Each
// subdivision pattern is a Generator; names are assigned afterwards from the
// final segment order by Name.
package roads

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/layout-cli/internal/model"
	"github.com/sells-group/layout-cli/internal/planar"
)

// overshoot is how far scan lines and spokes run past the boundary box
// before clipping.
const overshoot = 10.0

// Generator produces clipped, unnamed road segments for one pattern.
type Generator interface {
	Generate(site planar.MultiPolygon, p model.LayoutParameters) []model.RoadSegment
}

// Jitter supplies random offsets in [0, 1). *rand.Rand satisfies it.
type Jitter interface {
	Float64() float64
}

// Option adjusts the curved generators built by New.
type Option func(*Organic)

// WithAmplitude sets the maximum control-point offset as a fraction of the
// site height.
func WithAmplitude(a float64) Option {
	return func(o *Organic) { o.Amplitude = a }
}

// WithSamples sets the number of points sampled along each curve.
func WithSamples(n int) Option {
	return func(o *Organic) {
		if n >= 2 {
			o.Samples = n
		}
	}
}

// New returns the Generator for a subdivision type. A nil jitter disables
// random control-point offsets.
func New(t model.SubdivisionType, jitter Jitter, opts ...Option) (Generator, error) {
	organic := DefaultOrganic(jitter)
	for _, opt := range opts {
		opt(&organic)
	}
	switch t {
	case model.SubdivisionGrid:
		return Grid{}, nil
	case model.SubdivisionRadial:
		return DefaultRadial(), nil
	case model.SubdivisionOrganic:
		return organic, nil
	case model.SubdivisionMixed:
		return Mixed{Connector: organic}, nil
	default:
		return nil, eris.Errorf("roads: unknown subdivision type %q", t)
	}
}

// Generate runs the pattern selected by p and names the result.
func Generate(boundary model.Boundary, p model.LayoutParameters, jitter Jitter, opts ...Option) ([]model.RoadSegment, error) {
	g, err := New(p.SubdivisionType, jitter, opts...)
	if err != nil {
		return nil, err
	}
	segs := Name(g.Generate(boundary.Polygon(), p))
	zap.L().Debug("roads: generated network",
		zap.String("pattern", string(p.SubdivisionType)),
		zap.Int("segments", len(segs)),
	)
	return segs, nil
}

// clip intersects a centerline with the site and returns one segment per
// resulting line. Empty intersections produce nothing.
func clip(site planar.MultiPolygon, line planar.LineString, template model.RoadSegment) []model.RoadSegment {
	var out []model.RoadSegment
	for _, part := range planar.ClipLine(line, site) {
		s := template
		s.Centerline = part
		out = append(out, s)
	}
	return out
}
