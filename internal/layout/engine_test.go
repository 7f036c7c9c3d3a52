package layout

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/layout-cli/internal/model"
	"github.com/sells-group/layout-cli/internal/planar"
	"github.com/sells-group/layout-cli/internal/subdivide"
)

func rect(w, h float64) model.Boundary {
	return model.Boundary{{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: h}, {X: 0, Y: h}}
}

func exactParams() model.LayoutParameters {
	p := model.DefaultParameters()
	p.PlotWidth, p.PlotDepth = 20, 25
	p.MinParcelArea = 100
	p.RemainderStrategy = model.RemainderAddToLast
	p.IncludeGreenSpaces = false
	return p
}

func TestRun_ExactTilingWithoutRoads(t *testing.T) {
	res, err := New().Run(context.Background(), rect(100, 100), exactParams())
	require.NoError(t, err)

	assert.Empty(t, res.Roads)
	require.Len(t, res.Blocks, 1)
	require.Len(t, res.Parcels, 20)
	for i, p := range res.Parcels {
		assert.Equal(t, fmt.Sprintf("P%04d", i+1), p.ID)
		assert.InDelta(t, 500.0, p.Area, 1e-9)
		assert.InDelta(t, 20.0, p.Width, 1e-12)
		assert.InDelta(t, 25.0, p.Depth, 1e-12)
		assert.False(t, p.Fallback)
	}
	assert.Equal(t, "P0001", res.Parcels[0].ID)
	assert.Equal(t, "P0020", res.Parcels[19].ID)
	assert.NotEmpty(t, res.RunID)

	assert.InDelta(t, 10000.0, res.Stats.TotalArea, 1e-9)
	assert.InDelta(t, 10000.0, res.Stats.ParcelArea, 1e-9)
	assert.InDelta(t, 100.0, res.Stats.Efficiency, 1e-9)
	assert.Zero(t, res.Stats.RoadArea)
	assert.Equal(t, 20, res.Stats.Parcels)
}

func TestRun_ConfigurationErrors(t *testing.T) {
	tests := []struct {
		name     string
		boundary model.Boundary
		mutate   func(*model.LayoutParameters)
		field    string
	}{
		{"two vertices", model.Boundary{{X: 0, Y: 0}, {X: 1, Y: 1}}, nil, "boundary"},
		{"closing vertex only", model.Boundary{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 0}}, nil, "boundary"},
		{"collinear", model.Boundary{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 20, Y: 0}}, nil, "boundary"},
		{"bowtie", model.Boundary{{X: 0, Y: 0}, {X: 10, Y: 10}, {X: 10, Y: 0}, {X: 0, Y: 10}}, nil, "boundary"},
		{"zero main width", rect(10, 10), func(p *model.LayoutParameters) { p.MainRoadWidth = 0 }, "main_road_width"},
		{"negative min area", rect(10, 10), func(p *model.LayoutParameters) { p.MinParcelArea = -1 }, "min_parcel_area"},
		{"min above max", rect(10, 10), func(p *model.LayoutParameters) { p.MinParcelArea = 2000 }, "min_parcel_area"},
		{"green over 100", rect(10, 10), func(p *model.LayoutParameters) { p.GreenSpacePercentage = 150 }, "green_space_percentage"},
		{"negative setback", rect(10, 10), func(p *model.LayoutParameters) { p.FrontSetback = -2 }, "front_setback"},
		{"negative plot width", rect(10, 10), func(p *model.LayoutParameters) { p.PlotWidth = -20 }, "plot_width"},
		{"unknown pattern", rect(10, 10), func(p *model.LayoutParameters) { p.SubdivisionType = "spiral" }, "subdivision_type"},
		{"unknown strategy", rect(10, 10), func(p *model.LayoutParameters) { p.RemainderStrategy = "merge" }, "remainder_strategy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := model.DefaultParameters()
			if tt.mutate != nil {
				tt.mutate(&p)
			}
			_, err := New().Run(context.Background(), tt.boundary, p)
			require.Error(t, err)
			assert.True(t, model.IsConfigurationError(err))
			var ce *model.ConfigurationError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.field, ce.Field)
		})
	}
}

func TestValidate_DropsClosingVertex(t *testing.T) {
	b := append(rect(50, 50), planar.Point{X: 0, Y: 0})
	got, err := Validate(b, model.DefaultParameters())
	require.NoError(t, err)
	assert.Len(t, got, 4)
}

func TestRun_GridInvariants(t *testing.T) {
	p := model.DefaultParameters()
	p.GreenSpacePercentage = 5
	res, err := New().Run(context.Background(), rect(500, 400), p)
	require.NoError(t, err)

	require.Len(t, res.Roads, 5) // 3 streets, 2 avenues
	require.Len(t, res.Blocks, 12)

	// Blocks, road surface and reserves add back up to the site.
	total := res.Stats.TotalArea
	assert.InEpsilon(t, total, res.Stats.BlockArea+res.Stats.RoadArea+res.Stats.GreenArea, 1e-6)
	assert.NotEmpty(t, res.GreenSpaces)

	perBlock := map[int]float64{}
	for _, parcel := range res.Parcels {
		if !parcel.Fallback {
			assert.GreaterOrEqual(t, parcel.Area+subdivide.SliverEpsilon, p.MinParcelArea, parcel.ID)
		}
		perBlock[parcel.Block] += parcel.Area
		for _, v := range parcel.BuildableArea {
			assert.True(t, parcel.Shape.Contains(v), "%s buildable vertex outside parcel", parcel.ID)
		}
		assert.NotEmpty(t, parcel.StreetFrontage, parcel.ID)
	}
	for _, b := range res.Blocks {
		assert.LessOrEqual(t, perBlock[b.Index], b.Area()+1e-6, "parcels overlap in block %d", b.Index)
	}
}

func TestRun_ParcelsPartitionBlocksOnConcaveSite(t *testing.T) {
	site := model.Boundary{{X: 0, Y: 0}, {X: 400, Y: 0}, {X: 400, Y: 300}, {X: 200, Y: 140}, {X: 0, Y: 300}}
	patterns := []model.SubdivisionType{model.SubdivisionGrid, model.SubdivisionRadial, model.SubdivisionOrganic, model.SubdivisionMixed}
	strategies := []model.RemainderStrategy{model.RemainderSeparate, model.RemainderAddToLast, model.RemainderDistribute}
	k := planar.NewClipper()

	for _, st := range patterns {
		for _, rs := range strategies {
			t.Run(fmt.Sprintf("%s/%s", st, rs), func(t *testing.T) {
				p := model.DefaultParameters()
				p.SubdivisionType = st
				p.RemainderStrategy = rs
				p.IncludeGreenSpaces = true
				p.GreenSpacePercentage = 5
				res, err := New(WithSeed(7)).Run(context.Background(), site, p)
				require.NoError(t, err)
				require.NotEmpty(t, res.Parcels)

				for i := range res.Parcels {
					a := res.Parcels[i]
					for _, b := range res.Parcels[i+1:] {
						if !a.Shape.Bounds().Intersects(b.Shape.Bounds()) {
							continue
						}
						overlap := k.Intersection(planar.MultiPolygon{a.Shape}, planar.MultiPolygon{b.Shape}).Area()
						assert.Less(t, overlap, 1e-6, "%s overlaps %s", a.ID, b.ID)
					}
				}

				byBlock := map[int]planar.MultiPolygon{}
				for _, parcel := range res.Parcels {
					byBlock[parcel.Block] = append(byBlock[parcel.Block], parcel.Shape)
				}
				for _, blk := range res.Blocks {
					covered := planar.UnionAll(k, splitParts(byBlock[blk.Index]))
					outside := k.Difference(covered, blk.Shape).Area()
					assert.Less(t, outside, 1e-6, "block %d parcels leave the block", blk.Index)

					uncovered := blk.Area() - covered.Area()
					assert.GreaterOrEqual(t, uncovered, -1e-6, "block %d", blk.Index)
					assert.LessOrEqual(t, uncovered, discarded(k, blk, p)+1e-6, "block %d lost land beyond slivers", blk.Index)
				}
			})
		}
	}
}

func splitParts(m planar.MultiPolygon) []planar.MultiPolygon {
	out := make([]planar.MultiPolygon, len(m))
	for i := range m {
		out[i] = planar.MultiPolygon{m[i]}
	}
	return out
}

// discarded replays the block tiling and sums the area of every cut piece
// below the minimum parcel area.
func discarded(k planar.Kernel, blk model.Block, p model.LayoutParameters) float64 {
	t := subdivide.Subdivide(k, blk, p, nil)
	if t.Skipped {
		return blk.Area()
	}
	if t.Fallback {
		var kept float64
		for _, piece := range t.Pieces {
			kept += piece.Area()
		}
		return blk.Area() - kept
	}
	var lost float64
	b := blk.Shape.Bounds()
	y := b.MinY
	for _, h := range t.Rows {
		x := b.MinX
		for _, w := range t.Columns {
			cell := planar.MultiPolygon{planar.Rect(x, y, x+w, y+h)}
			for _, piece := range k.Intersection(cell, blk.Shape) {
				if piece.Area()+subdivide.SliverEpsilon < p.MinParcelArea {
					lost += piece.Area()
				}
			}
			x += w
		}
		y += h
	}
	return lost
}

func TestRun_DeterministicPatterns(t *testing.T) {
	site := model.Boundary{{X: 0, Y: 0}, {X: 420, Y: 30}, {X: 380, Y: 310}, {X: 20, Y: 260}}
	for _, st := range []model.SubdivisionType{model.SubdivisionGrid, model.SubdivisionRadial, model.SubdivisionMixed} {
		t.Run(string(st), func(t *testing.T) {
			p := model.DefaultParameters()
			p.SubdivisionType = st
			e := New()
			a, err := e.Run(context.Background(), site, p)
			require.NoError(t, err)
			b, err := e.Run(context.Background(), site, p)
			require.NoError(t, err)

			assert.Equal(t, a.Roads, b.Roads)
			assert.Equal(t, a.Parcels, b.Parcels)
			assert.Equal(t, a.Diagnostics, b.Diagnostics)
			assert.NotEqual(t, a.RunID, b.RunID)
		})
	}
}

func TestRun_SeededOrganicIsReproducible(t *testing.T) {
	p := model.DefaultParameters()
	p.SubdivisionType = model.SubdivisionOrganic
	e := New(WithSeed(42), WithWorkers(2))

	var wg sync.WaitGroup
	results := make([]*model.Result, 3)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := e.Run(context.Background(), rect(400, 300), p)
			assert.NoError(t, err)
			results[i] = res
		}()
	}
	wg.Wait()
	require.NotNil(t, results[0])
	for _, r := range results[1:] {
		require.NotNil(t, r)
		assert.Equal(t, results[0].Roads, r.Roads)
		assert.Equal(t, results[0].Parcels, r.Parcels)
	}
}

func TestRun_WorkerCountDoesNotChangeOutput(t *testing.T) {
	p := model.DefaultParameters()
	one, err := New(WithWorkers(1)).Run(context.Background(), rect(500, 400), p)
	require.NoError(t, err)
	many, err := New(WithWorkers(8)).Run(context.Background(), rect(500, 400), p)
	require.NoError(t, err)
	assert.Equal(t, one.Parcels, many.Parcels)
	assert.Equal(t, one.Diagnostics, many.Diagnostics)
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New().Run(ctx, rect(100, 100), exactParams())
	require.Error(t, err)
	assert.False(t, model.IsConfigurationError(err))
}

func TestRun_NarrowSiteFallsBackToWholeBlock(t *testing.T) {
	p := model.DefaultParameters()
	p.IncludeGreenSpaces = false
	p.PlotWidth, p.PlotDepth = 30, 30
	p.MinParcelArea = 500
	// No 30 x 30 cell holds 500 of this diagonal strip; the strip is 900.
	strip := model.Boundary{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 100, Y: 90}, {X: 90, Y: 90}}
	res, err := New().Run(context.Background(), strip, p)
	require.NoError(t, err)

	assert.Empty(t, res.Roads)
	require.Len(t, res.Parcels, 1)
	assert.True(t, res.Parcels[0].Fallback)
	assert.InDelta(t, 900.0, res.Parcels[0].Area, 1e-9)
	assert.Equal(t, 1, res.Stats.FallbackPlots)
}
