package blocks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/layout-cli/internal/model"
	"github.com/sells-group/layout-cli/internal/planar"
)

func square(s float64) planar.MultiPolygon {
	return planar.MultiPolygon{planar.Rect(0, 0, s, s)}
}

func street(y, w float64) model.RoadSegment {
	return model.RoadSegment{
		Class:      model.RoadSecondary,
		Centerline: planar.LineString{{X: 0, Y: y}, {X: 100, Y: y}},
		Width:      w,
	}
}

func TestExtract_NoRoads(t *testing.T) {
	got := Extract(planar.NewClipper(), square(100), nil, nil)
	require.Len(t, got.Blocks, 1)
	assert.InDelta(t, 10000.0, got.Blocks[0].Area(), 1e-9)
	assert.Zero(t, got.RoadArea)
	assert.Empty(t, got.Footprint)
}

func TestExtract_StreetSplitsSite(t *testing.T) {
	diag := &model.Diagnostics{}
	got := Extract(planar.NewClipper(), square(100), []model.RoadSegment{street(50, 10)}, diag)

	require.Len(t, got.Blocks, 2)
	assert.InDelta(t, 4500.0, got.Blocks[0].Area(), 1e-6)
	assert.InDelta(t, 4500.0, got.Blocks[1].Area(), 1e-6)
	assert.InDelta(t, 1000.0, got.RoadArea, 1e-6)
	assert.Less(t, got.Blocks[0].Shape.Bounds().MinY, got.Blocks[1].Shape.Bounds().MinY, "south block first")
	assert.Equal(t, 0, got.Blocks[0].Index)
	assert.Equal(t, 1, got.Blocks[1].Index)
	assert.Zero(t, diag.Count(model.StageBlocks))
}

func TestExtract_AreaConservation(t *testing.T) {
	site := planar.MultiPolygon{{Exterior: planar.Ring{{X: 0, Y: 0}, {X: 240, Y: 20}, {X: 220, Y: 180}, {X: 10, Y: 150}}}}
	roads := []model.RoadSegment{
		{Centerline: planar.LineString{{X: -10, Y: 70}, {X: 250, Y: 90}}, Width: 12},
		{Centerline: planar.LineString{{X: 120, Y: -10}, {X: 110, Y: 190}}, Width: 15},
		{Centerline: planar.LineString{{X: 30, Y: 20}, {X: 60, Y: 120}, {X: 200, Y: 140}}, Width: 9},
	}
	for i := range roads {
		roads[i].Centerline = planar.ClipLine(roads[i].Centerline, site)[0]
	}

	got := Extract(planar.NewClipper(), site, roads, &model.Diagnostics{})
	var blockArea float64
	for _, b := range got.Blocks {
		blockArea += b.Area()
	}
	total := site.Area()
	assert.InEpsilon(t, total, blockArea+got.RoadArea, 1e-6)
	assert.Greater(t, len(got.Blocks), 3)
}

func TestFootprint_RoundCaps(t *testing.T) {
	fp := Footprint(planar.NewClipper(), []model.RoadSegment{street(50, 10)})
	disc := planar.Circle(planar.Point{}, 5, planar.ArcSegments).Area()
	assert.InDelta(t, 1000.0+disc, fp.Area(), 1e-6)
}
