// Package parcels turns tiled block pieces into numbered parcels with
// frontage and buildable-area metadata.
package parcels

import (
	"fmt"

	"github.com/sells-group/layout-cli/internal/model"
	"github.com/sells-group/layout-cli/internal/planar"
	"github.com/sells-group/layout-cli/internal/subdivide"
)

// Frontage tolerances.
const (
	FrontageBuffer    = 0.1
	FallbackTolerance = 0.1
)

// ID formats the sequential identifier for the n-th parcel, 1-based.
func ID(n int) string {
	return fmt.Sprintf("P%04d", n)
}

// Assemble builds the parcels of one block. first is the sequence number of
// the block's first parcel; footprint is the road surface used for the
// frontage test.
func Assemble(k planar.Kernel, block int, first int, t subdivide.Tiling, footprint planar.MultiPolygon, p model.LayoutParameters, diag *model.Diagnostics) []model.Parcel {
	out := make([]model.Parcel, 0, len(t.Pieces))
	for i, shape := range t.Pieces {
		id := ID(first + i)
		b := shape.Bounds()
		parcel := model.Parcel{
			ID:             id,
			Block:          block,
			Vertices:       shape.Exterior.Open(),
			Shape:          shape,
			Area:           shape.Area(),
			Width:          b.Width(),
			Depth:          b.Height(),
			Centroid:       shape.Centroid(),
			StreetFrontage: Frontage(shape.Exterior.Open(), footprint),
			Fallback:       t.Fallback,
		}
		buildable, reason := Buildable(k, shape, p.FrontSetback)
		if reason != "" {
			diag.Report(model.StageParcels, id, reason)
		}
		parcel.BuildableArea = buildable
		out = append(out, parcel)
	}
	return out
}

// Frontage returns the endpoints of the longest ring edge within
// FrontageBuffer of the road footprint. With no such edge it returns every
// vertex within FallbackTolerance of the lowest northing, in ring order.
func Frontage(ring planar.Ring, footprint planar.MultiPolygon) []planar.Point {
	if len(ring) < 2 {
		return nil
	}
	best, bestLen := -1, 0.0
	if len(footprint) > 0 {
		for i := range ring {
			a, b := ring.Edge(i)
			if l := a.Dist(b); l > bestLen && planar.NearArea(a, b, footprint, FrontageBuffer) {
				best, bestLen = i, l
			}
		}
	}
	if best >= 0 {
		a, b := ring.Edge(best)
		return []planar.Point{a, b}
	}

	minY := ring.Bounds().MinY
	var out []planar.Point
	for _, v := range ring {
		if v.Y-minY <= FallbackTolerance {
			out = append(out, v)
		}
	}
	return out
}

// Buildable erodes shape by setback. The result must be a single polygon
// without holes; anything else yields no buildable ring and a reason.
func Buildable(k planar.Kernel, shape planar.Polygon, setback float64) (planar.Ring, string) {
	core := planar.Erode(k, shape, setback)
	switch {
	case core.IsEmpty():
		return nil, "setback removes the whole parcel"
	case len(core) > 1:
		return nil, fmt.Sprintf("setback splits the parcel into %d parts", len(core))
	case len(core[0].Holes) > 0:
		return nil, "buildable area has holes"
	}
	return core[0].Exterior.Open(), ""
}
