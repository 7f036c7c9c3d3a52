package parcels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/layout-cli/internal/model"
	"github.com/sells-group/layout-cli/internal/planar"
	"github.com/sells-group/layout-cli/internal/subdivide"
)

func TestID(t *testing.T) {
	assert.Equal(t, "P0001", ID(1))
	assert.Equal(t, "P0042", ID(42))
	assert.Equal(t, "P12345", ID(12345))
}

func TestFrontage_LongestEdgeNearRoad(t *testing.T) {
	// Road strip along the north side of a wide parcel.
	road := planar.MultiPolygon{planar.Rect(-50, 20, 100, 32)}
	ring := planar.Rect(0, 0, 30, 20).Exterior

	got := Frontage(ring, road)
	assert.Equal(t, []planar.Point{{X: 30, Y: 20}, {X: 0, Y: 20}}, got)
}

func TestFrontage_CornerContactQualifies(t *testing.T) {
	// The side edges only touch the road at one end but are longer than
	// the edge lying along it.
	road := planar.MultiPolygon{planar.Rect(-50, 25, 100, 37)}
	ring := planar.Rect(0, 0, 20, 25).Exterior

	got := Frontage(ring, road)
	assert.Equal(t, []planar.Point{{X: 20, Y: 0}, {X: 20, Y: 25}}, got)
}

func TestFrontage_FallbackToMinNorthing(t *testing.T) {
	far := planar.MultiPolygon{planar.Rect(500, 500, 510, 510)}
	ring := planar.Ring{{X: 0, Y: 0.05}, {X: 20, Y: 0}, {X: 25, Y: 30}, {X: 0, Y: 25}}

	assert.Equal(t, []planar.Point{{X: 0, Y: 0.05}, {X: 20, Y: 0}}, Frontage(ring, far))
	assert.Equal(t, []planar.Point{{X: 0, Y: 0.05}, {X: 20, Y: 0}}, Frontage(ring, nil))
}

func TestBuildable(t *testing.T) {
	k := planar.NewClipper()

	ring, reason := Buildable(k, planar.Rect(0, 0, 20, 25), 6)
	assert.Empty(t, reason)
	assert.InDelta(t, 104.0, ring.Area(), 1e-6)
	assert.InDelta(t, 6.0, ring.Bounds().MinX, 1e-9)

	ring, reason = Buildable(k, planar.Rect(0, 0, 10, 10), 6)
	assert.Nil(t, ring)
	assert.NotEmpty(t, reason)

	ring, reason = Buildable(k, planar.Rect(0, 0, 20, 25), 0)
	assert.Empty(t, reason)
	assert.InDelta(t, 500.0, ring.Area(), 1e-9)
}

func TestBuildable_HolesRejected(t *testing.T) {
	donut := planar.Polygon{
		Exterior: planar.BBox{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100}.Ring(),
		Holes:    []planar.Ring{planar.BBox{MinX: 40, MinY: 40, MaxX: 60, MaxY: 60}.Ring().Reverse()},
	}
	ring, reason := Buildable(planar.NewClipper(), donut, 0)
	assert.Nil(t, ring)
	assert.Equal(t, "buildable area has holes", reason)
}

func TestAssemble(t *testing.T) {
	p := model.DefaultParameters()
	p.FrontSetback = 6
	tiles := subdivide.Tiling{Pieces: []planar.Polygon{planar.Rect(0, 0, 30, 20), planar.Rect(30, 0, 40, 10)}}
	road := planar.MultiPolygon{planar.Rect(-50, -12, 100, 0)}
	diag := &model.Diagnostics{}

	got := Assemble(planar.NewClipper(), 3, 7, tiles, road, p, diag)
	require.Len(t, got, 2)

	first := got[0]
	assert.Equal(t, "P0007", first.ID)
	assert.Equal(t, 3, first.Block)
	assert.Len(t, first.Vertices, 4)
	assert.InDelta(t, 600.0, first.Area, 1e-9)
	assert.InDelta(t, 30.0, first.Width, 1e-12)
	assert.InDelta(t, 20.0, first.Depth, 1e-12)
	assert.InDelta(t, 15.0, first.Centroid.X, 1e-9)
	assert.InDelta(t, 10.0, first.Centroid.Y, 1e-9)
	assert.Equal(t, []planar.Point{{X: 0, Y: 0}, {X: 30, Y: 0}}, first.StreetFrontage)
	assert.InDelta(t, 30.0, first.FrontageLength(), 1e-12)
	assert.InDelta(t, 144.0, first.BuildableSize(), 1e-6)
	assert.False(t, first.Fallback)

	assert.Equal(t, "P0008", got[1].ID)
	assert.Empty(t, got[1].BuildableArea)
	assert.Equal(t, 1, diag.Count(model.StageParcels))
	assert.Equal(t, "P0008", diag.Items()[0].Ref)
}
