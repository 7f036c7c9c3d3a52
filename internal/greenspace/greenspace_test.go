package greenspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/layout-cli/internal/model"
	"github.com/sells-group/layout-cli/internal/planar"
)

func block(i int, minX, size float64) model.Block {
	return model.Block{Index: i, Shape: planar.MultiPolygon{planar.Rect(minX, 0, minX+size, size)}}
}

func params(pct float64) model.LayoutParameters {
	p := model.DefaultParameters()
	p.IncludeGreenSpaces = true
	p.GreenSpacePercentage = pct
	return p
}

func TestRadius(t *testing.T) {
	assert.InDelta(t, 15.0, Radius(10000), 1e-12)
	assert.InDelta(t, 20.0, Radius(40000), 1e-12)
	assert.InDelta(t, 20.0, Radius(1e6), 1e-12)
}

func TestAllocate_CarvesCircleFromBlock(t *testing.T) {
	in := []model.Block{block(0, 0, 200)}
	blocks, green := Allocate(planar.NewClipper(), in, 40000, params(10), &model.Diagnostics{})

	require.Len(t, green, 1)
	disc := planar.Circle(planar.Point{}, 20, ReservePoints).Area()
	assert.InDelta(t, disc, green[0].Area, 1e-6)
	assert.Equal(t, 0, green[0].Block)
	require.Len(t, blocks, 1)
	assert.InDelta(t, 40000-disc, blocks[0].Area(), 1e-6)
	assert.InDelta(t, 40000.0, in[0].Area(), 1e-9, "input untouched")
}

func TestAllocate_LargestFirstAndStopsAtTarget(t *testing.T) {
	in := []model.Block{block(0, 0, 100), block(1, 300, 200)}
	blocks, green := Allocate(planar.NewClipper(), in, 50000, params(2), nil)

	require.Len(t, green, 1)
	assert.Equal(t, 1, green[0].Block)
	assert.InDelta(t, 10000.0, blocks[0].Area(), 1e-9)
	assert.Less(t, blocks[1].Area(), 40000.0)
}

func TestAllocate_KeepsGoingBelowTarget(t *testing.T) {
	in := []model.Block{block(0, 0, 100), block(1, 300, 200)}
	_, green := Allocate(planar.NewClipper(), in, 50000, params(50), nil)
	require.Len(t, green, 2)
	assert.Equal(t, 1, green[0].Block)
	assert.Equal(t, 0, green[1].Block)
}

func TestAllocate_SkipsSmallBlocks(t *testing.T) {
	in := []model.Block{block(0, 0, 60)}
	blocks, green := Allocate(planar.NewClipper(), in, 3600, params(10), nil)
	assert.Empty(t, green)
	assert.InDelta(t, 3600.0, blocks[0].Area(), 1e-9)
}

func TestAllocate_Disabled(t *testing.T) {
	p := params(10)
	p.IncludeGreenSpaces = false
	_, green := Allocate(planar.NewClipper(), []model.Block{block(0, 0, 200)}, 40000, p, nil)
	assert.Empty(t, green)
}

func TestAllocate_AreaConservation(t *testing.T) {
	in := []model.Block{block(0, 0, 150), block(1, 200, 90)}
	before := in[0].Area() + in[1].Area()
	blocks, green := Allocate(planar.NewClipper(), in, before, params(100), nil)

	var after float64
	for _, b := range blocks {
		after += b.Area()
	}
	for _, g := range green {
		after += g.Area
	}
	assert.InEpsilon(t, before, after, 1e-6)
}
