package roads

import (
	"github.com/sells-group/layout-cli/internal/model"
	"github.com/sells-group/layout-cli/internal/planar"
)

// Organic pattern defaults.
const (
	OrganicRoads  = 3
	CurveSamples  = 20
	DefaultJitter = 0.1
)

// Organic emits curved main drives across the site, spaced evenly north to
// south, plus lanes joining the midpoints of consecutive drives.
type Organic struct {
	Roads   int
	Samples int
	// Amplitude bounds the control-point offset as a fraction of the site
	// height.
	Amplitude float64
	Jitter    Jitter
}

// DefaultOrganic returns the 3-drive pattern with the given jitter source.
func DefaultOrganic(j Jitter) Organic {
	return Organic{Roads: OrganicRoads, Samples: CurveSamples, Amplitude: DefaultJitter, Jitter: j}
}

// Generate implements Generator.
func (o Organic) Generate(site planar.MultiPolygon, p model.LayoutParameters) []model.RoadSegment {
	b := site.Bounds()
	h := b.Height()

	var out []model.RoadSegment
	drive := model.RoadSegment{Class: model.RoadMain, Kind: model.KindDrive, Width: p.MainRoadWidth}
	for i := 0; i < o.Roads; i++ {
		y := b.MinY + float64(i+1)*h/float64(o.Roads+1)
		start := planar.Point{X: b.MinX, Y: y}
		end := planar.Point{X: b.MaxX, Y: y}
		out = append(out, clip(site, o.curve(start, end, h), drive)...)
	}

	var lanes []model.RoadSegment
	lane := model.RoadSegment{Class: model.RoadAccess, Kind: model.KindLane, Width: p.AccessRoadWidth}
	for i := 1; i < len(out); i++ {
		from := out[i-1].Centerline.Midpoint()
		to := out[i].Centerline.Midpoint()
		lanes = append(lanes, clip(site, planar.LineString{from, to}, lane)...)
	}
	return append(out, lanes...)
}

// curve builds the four control points between start and end, offsets the
// two interior ones north or south, and samples the spline.
func (o Organic) curve(start, end planar.Point, height float64) planar.LineString {
	c1 := planar.Lerp(start, end, 1.0/3)
	c2 := planar.Lerp(start, end, 2.0/3)
	c1.Y += o.offset(height)
	c2.Y += o.offset(height)
	return CatmullRom([]planar.Point{start, c1, c2, end}, o.Samples)
}

func (o Organic) offset(height float64) float64 {
	if o.Jitter == nil || o.Amplitude == 0 {
		return 0
	}
	return (o.Jitter.Float64()*2 - 1) * o.Amplitude * height
}

// CatmullRom samples a uniform Catmull-Rom spline through every control
// point into n points. The end points are duplicated as phantom controls so
// the curve starts and ends on them.
func CatmullRom(ctrl []planar.Point, n int) planar.LineString {
	if len(ctrl) < 2 || n < 2 {
		return planar.LineString(ctrl)
	}
	pts := make([]planar.Point, 0, len(ctrl)+2)
	pts = append(pts, ctrl[0])
	pts = append(pts, ctrl...)
	pts = append(pts, ctrl[len(ctrl)-1])

	spans := len(ctrl) - 1
	out := make(planar.LineString, n)
	for i := 0; i < n; i++ {
		s := float64(spans) * float64(i) / float64(n-1)
		k := int(s)
		if k >= spans {
			k = spans - 1
		}
		out[i] = catmullRomPoint(pts[k], pts[k+1], pts[k+2], pts[k+3], s-float64(k))
	}
	return out
}

func catmullRomPoint(p0, p1, p2, p3 planar.Point, t float64) planar.Point {
	t2 := t * t
	t3 := t2 * t
	f := func(a, b, c, d float64) float64 {
		return 0.5 * (2*b + (-a+c)*t + (2*a-5*b+4*c-d)*t2 + (-a+3*b-3*c+d)*t3)
	}
	return planar.Point{X: f(p0.X, p1.X, p2.X, p3.X), Y: f(p0.Y, p1.Y, p2.Y, p3.Y)}
}
