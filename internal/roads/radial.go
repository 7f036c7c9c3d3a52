package roads

import (
	"math"

	"github.com/sells-group/layout-cli/internal/model"
	"github.com/sells-group/layout-cli/internal/planar"
)

// Radial spoke and ring counts. These are fixed by the pattern, not derived
// from the site.
const (
	RadialSpokes = 8
	RadialRings  = 3
	ringVertices = 72
)

// Radial emits spokes from the site centroid and concentric ring roads.
type Radial struct {
	Spokes int
	Rings  int
}

// DefaultRadial returns the 8-spoke, 3-ring pattern.
func DefaultRadial() Radial {
	return Radial{Spokes: RadialSpokes, Rings: RadialRings}
}

// Generate implements Generator. Spokes come first in counter-clockwise
// order from east, then ring pieces from the innermost ring outwards.
func (r Radial) Generate(site planar.MultiPolygon, p model.LayoutParameters) []model.RoadSegment {
	b := site.Bounds()
	center := site.Centroid()
	reach := math.Hypot(b.Width(), b.Height()) + overshoot

	var out []model.RoadSegment
	spoke := model.RoadSegment{Class: model.RoadSecondary, Kind: model.KindRadial, Width: p.SecondaryRoadWidth}
	for i := 0; i < r.Spokes; i++ {
		a := 2 * math.Pi * float64(i) / float64(r.Spokes)
		end := planar.Point{X: center.X + reach*math.Cos(a), Y: center.Y + reach*math.Sin(a)}
		out = append(out, clip(site, planar.LineString{center, end}, spoke)...)
	}

	outer := math.Min(b.Width(), b.Height()) / 2
	for i := 1; i <= r.Rings; i++ {
		radius := float64(i) * outer / float64(r.Rings+1)
		ring := model.RoadSegment{Class: model.RoadMain, Kind: model.KindRing, Group: i, Width: p.MainRoadWidth}
		loop := planar.LineString(planar.Circle(center, radius, ringVertices).Closed())
		out = append(out, clip(site, loop, ring)...)
	}
	return out
}
