package roads

import (
	"github.com/sells-group/layout-cli/internal/model"
	"github.com/sells-group/layout-cli/internal/planar"
)

// Grid lays secondary streets east-west and main avenues north-south.
// Street spacing is one block width plus a street; avenue spacing is one
// block length plus an avenue.
type Grid struct{}

// Generate implements Generator.
func (Grid) Generate(site planar.MultiPolygon, p model.LayoutParameters) []model.RoadSegment {
	b := site.Bounds()
	var out []model.RoadSegment

	street := model.RoadSegment{Class: model.RoadSecondary, Kind: model.KindStreet, Width: p.SecondaryRoadWidth}
	for _, y := range scan(b.MinY, b.MaxY, p.MaxBlockWidth+p.SecondaryRoadWidth) {
		line := planar.LineString{{X: b.MinX - overshoot, Y: y}, {X: b.MaxX + overshoot, Y: y}}
		out = append(out, clip(site, line, street)...)
	}

	avenue := model.RoadSegment{Class: model.RoadMain, Kind: model.KindAvenue, Width: p.MainRoadWidth}
	for _, x := range scan(b.MinX, b.MaxX, p.MaxBlockLength+p.MainRoadWidth) {
		line := planar.LineString{{X: x, Y: b.MinY - overshoot}, {X: x, Y: b.MaxY + overshoot}}
		out = append(out, clip(site, line, avenue)...)
	}
	return out
}

// scan returns the offsets min+spacing, min+2*spacing, ... strictly inside
// (min, max).
func scan(min, max, spacing float64) []float64 {
	if spacing <= 0 {
		return nil
	}
	var out []float64
	for i := 1; ; i++ {
		v := min + float64(i)*spacing
		if v >= max-planar.Epsilon {
			return out
		}
		out = append(out, v)
	}
}
