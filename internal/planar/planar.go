// Package planar holds the 2D geometry used by the layout engine: value
// types, metrics, predicates, line clipping, buffering and the boolean
// operation Kernel.
//
// Coordinates are (easting, northing). Rings are stored open: the closing
// vertex is never repeated.
package planar

import (
	"math"

	"github.com/ctessum/geom"
)

// Epsilon is the distance tolerance used by geometric predicates.
const Epsilon = 1e-9

// AreaEpsilon is the area below which a ring or polygon is treated as noise.
const AreaEpsilon = 1e-6

// Point is a planar coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns a+b.
func (a Point) Add(b Point) Point { return Point{a.X + b.X, a.Y + b.Y} }

// Sub returns a-b.
func (a Point) Sub(b Point) Point { return Point{a.X - b.X, a.Y - b.Y} }

// Scale returns a*s.
func (a Point) Scale(s float64) Point { return Point{a.X * s, a.Y * s} }

// Dot returns the dot product of a and b.
func (a Point) Dot(b Point) float64 { return a.X*b.X + a.Y*b.Y }

// Cross returns the z component of a x b.
func (a Point) Cross(b Point) float64 { return a.X*b.Y - a.Y*b.X }

// Dist returns the euclidean distance between a and b.
func (a Point) Dist(b Point) float64 { return math.Hypot(a.X-b.X, a.Y-b.Y) }

// Near reports whether a and b are within Epsilon of each other.
func (a Point) Near(b Point) bool { return a.Dist(b) <= Epsilon*10 }

// Lerp returns the point a fraction t of the way from a to b.
func Lerp(a, b Point, t float64) Point {
	return Point{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}

// BBox is an axis-aligned bounding box.
type BBox struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// EmptyBBox returns a box that any extension will replace.
func EmptyBBox() BBox {
	return BBox{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
}

// IsEmpty reports whether the box covers no points.
func (b BBox) IsEmpty() bool { return b.MinX > b.MaxX || b.MinY > b.MaxY }

// Width returns the east-west extent.
func (b BBox) Width() float64 { return b.MaxX - b.MinX }

// Height returns the north-south extent.
func (b BBox) Height() float64 { return b.MaxY - b.MinY }

// Center returns the middle of the box.
func (b BBox) Center() Point { return Point{(b.MinX + b.MaxX) / 2, (b.MinY + b.MaxY) / 2} }

// Extend grows the box to include p.
func (b BBox) Extend(p Point) BBox {
	b.MinX = math.Min(b.MinX, p.X)
	b.MinY = math.Min(b.MinY, p.Y)
	b.MaxX = math.Max(b.MaxX, p.X)
	b.MaxY = math.Max(b.MaxY, p.Y)
	return b
}

// Union returns the smallest box covering b and o.
func (b BBox) Union(o BBox) BBox {
	if o.IsEmpty() {
		return b
	}
	b = b.Extend(Point{o.MinX, o.MinY})
	return b.Extend(Point{o.MaxX, o.MaxY})
}

// Intersects reports whether the boxes share any point.
func (b BBox) Intersects(o BBox) bool {
	return !(o.MinX > b.MaxX+Epsilon || o.MaxX < b.MinX-Epsilon ||
		o.MinY > b.MaxY+Epsilon || o.MaxY < b.MinY-Epsilon)
}

// Ring returns the box as a counter-clockwise ring.
func (b BBox) Ring() Ring {
	return Ring{{b.MinX, b.MinY}, {b.MaxX, b.MinY}, {b.MaxX, b.MaxY}, {b.MinX, b.MaxY}}
}

// Rect returns an axis-aligned rectangle polygon.
func Rect(minX, minY, maxX, maxY float64) Polygon {
	return Polygon{Exterior: BBox{minX, minY, maxX, maxY}.Ring()}
}

// Ring is a closed sequence of vertices without a repeated last point.
type Ring []Point

// Open drops a repeated closing vertex.
func (r Ring) Open() Ring {
	if len(r) > 1 && r[0].Near(r[len(r)-1]) {
		return r[:len(r)-1]
	}
	return r
}

// Closed returns the vertices with the first point appended.
func (r Ring) Closed() []Point {
	if len(r) == 0 {
		return nil
	}
	out := make([]Point, 0, len(r)+1)
	out = append(out, r...)
	return append(out, r[0])
}

// Edge returns the i-th edge of the ring.
func (r Ring) Edge(i int) (Point, Point) {
	return r[i], r[(i+1)%len(r)]
}

// SignedArea is positive for counter-clockwise rings.
func (r Ring) SignedArea() float64 {
	if len(r) < 3 {
		return 0
	}
	var s float64
	for i := range r {
		a, b := r.Edge(i)
		s += a.X*b.Y - b.X*a.Y
	}
	return s / 2
}

// Area returns the absolute enclosed area.
func (r Ring) Area() float64 { return geom.Polygon{r.path()}.Area() }

// Reverse returns the ring with opposite orientation.
func (r Ring) Reverse() Ring {
	out := make(Ring, len(r))
	for i, p := range r {
		out[len(r)-1-i] = p
	}
	return out
}

// Oriented returns the ring wound counter-clockwise when ccw is true.
func (r Ring) Oriented(ccw bool) Ring {
	if (r.SignedArea() > 0) != ccw {
		return r.Reverse()
	}
	return r
}

// Bounds returns the bounding box of the ring.
func (r Ring) Bounds() BBox {
	if len(r) == 0 {
		return EmptyBBox()
	}
	return fromBounds(geom.LineString(r.path()).Bounds())
}

// Centroid returns the area centroid of the ring.
func (r Ring) Centroid() Point {
	return MultiPolygon{{Exterior: r}}.Centroid()
}

func (r Ring) vertexMean() Point {
	var p Point
	if len(r) == 0 {
		return p
	}
	for _, v := range r {
		p = p.Add(v)
	}
	return p.Scale(1 / float64(len(r)))
}

// OnBoundary reports whether p lies on an edge of the ring.
func (r Ring) OnBoundary(p Point) bool {
	for i := range r {
		a, b := r.Edge(i)
		if PointSegmentDistance(p, a, b) <= Epsilon*10 {
			return true
		}
	}
	return false
}

// ContainsStrict reports whether p is inside the ring and not on its boundary.
func (r Ring) ContainsStrict(p Point) bool {
	if r.OnBoundary(p) {
		return false
	}
	return r.winds(p)
}

// winds is the even-odd ray test, undefined on the boundary.
func (r Ring) winds(p Point) bool {
	in := false
	for i := range r {
		a, b := r.Edge(i)
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < x {
				in = !in
			}
		}
	}
	return in
}

// Simplify removes repeated and collinear vertices.
func (r Ring) Simplify() Ring {
	r = r.Open()
	out := make(Ring, 0, len(r))
	for _, p := range r {
		if len(out) > 0 && out[len(out)-1].Near(p) {
			continue
		}
		out = append(out, p)
	}
	if len(out) > 1 && out[0].Near(out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	if len(out) < 3 {
		return out
	}
	g := geom.LineString(out.path()).Simplify(Epsilon * 10).(geom.LineString)
	out = out[:0]
	for _, p := range g {
		out = append(out, Point{p.X, p.Y})
	}
	out = out.Open()
	// The simplifier keeps both path ends, so the seam vertex is checked here.
	for len(out) >= 3 && PointSegmentDistance(out[0], out[len(out)-1], out[1]) <= Epsilon*10 {
		out = out[1:]
	}
	return out
}

// SelfIntersects reports whether any two non-adjacent edges touch, or
// adjacent edges overlap.
func (r Ring) SelfIntersects() bool {
	n := len(r)
	if n < 3 {
		return false
	}
	for i := 0; i < n; i++ {
		a, b := r.Edge(i)
		for j := i + 1; j < n; j++ {
			c, d := r.Edge(j)
			adjacent := j == i+1 || (i == 0 && j == n-1)
			if adjacent {
				// The shared vertex is expected; anything more is an overlap.
				if collinearOverlap(a, b, c, d) {
					return true
				}
				continue
			}
			if SegmentsTouch(a, b, c, d) {
				return true
			}
		}
	}
	return false
}

func collinearOverlap(a, b, c, d Point) bool {
	r := b.Sub(a)
	if math.Abs(r.Cross(c.Sub(a))) > Epsilon || math.Abs(r.Cross(d.Sub(a))) > Epsilon {
		return false
	}
	rr := r.Dot(r)
	if rr == 0 {
		return true
	}
	t0 := c.Sub(a).Dot(r) / rr
	t1 := d.Sub(a).Dot(r) / rr
	lo, hi := math.Min(t0, t1), math.Max(t0, t1)
	return math.Min(hi, 1)-math.Max(lo, 0) > Epsilon
}

// Polygon is an exterior ring with optional holes.
type Polygon struct {
	Exterior Ring   `json:"exterior"`
	Holes    []Ring `json:"holes,omitempty"`
}

// Area returns the exterior area minus the hole areas.
func (p Polygon) Area() float64 {
	if len(p.Exterior) < 3 {
		return 0
	}
	return p.geomPolygon().Area()
}

// Bounds returns the bounding box of the exterior ring.
func (p Polygon) Bounds() BBox { return p.Exterior.Bounds() }

// Centroid returns the area centroid, accounting for holes.
func (p Polygon) Centroid() Point {
	return MultiPolygon{p}.Centroid()
}

// Contains reports whether pt is inside the polygon or on its boundary.
func (p Polygon) Contains(pt Point) bool {
	if len(p.Exterior) < 3 {
		return false
	}
	if p.Exterior.OnBoundary(pt) {
		return true
	}
	if !p.Exterior.winds(pt) {
		return false
	}
	for _, h := range p.Holes {
		if h.ContainsStrict(pt) {
			return false
		}
	}
	return true
}

// Rings returns the exterior followed by the holes.
func (p Polygon) Rings() []Ring {
	out := make([]Ring, 0, 1+len(p.Holes))
	out = append(out, p.Exterior)
	return append(out, p.Holes...)
}

// MultiPolygon is a set of disjoint polygons.
type MultiPolygon []Polygon

// Area returns the total area.
func (m MultiPolygon) Area() float64 {
	var a float64
	for _, p := range m {
		a += p.Area()
	}
	return a
}

// IsEmpty reports whether the set covers no area.
func (m MultiPolygon) IsEmpty() bool { return m.Area() <= AreaEpsilon }

// Bounds returns the bounding box of every part.
func (m MultiPolygon) Bounds() BBox {
	b := EmptyBBox()
	for _, p := range m {
		b = b.Union(p.Bounds())
	}
	return b
}

// Centroid returns the area centroid of every part. Sets with no area fall
// back to the mean of the exterior vertices.
func (m MultiPolygon) Centroid() Point {
	var g geom.MultiPolygon
	for _, p := range m {
		if len(p.Exterior) >= 3 {
			g = append(g, p.geomPolygon())
		}
	}
	if g.Area() < AreaEpsilon {
		var pts Ring
		for _, p := range m {
			pts = append(pts, p.Exterior...)
		}
		return pts.vertexMean()
	}
	c := g.Centroid()
	return Point{c.X, c.Y}
}

// Contains reports whether pt is inside or on the boundary of any part.
func (m MultiPolygon) Contains(pt Point) bool {
	for _, p := range m {
		if p.Contains(pt) {
			return true
		}
	}
	return false
}

// Rings returns every ring of every part.
func (m MultiPolygon) Rings() []Ring {
	var out []Ring
	for _, p := range m {
		out = append(out, p.Rings()...)
	}
	return out
}

// LineString is an ordered sequence of points.
type LineString []Point

// Length returns the total length.
func (l LineString) Length() float64 {
	var s float64
	for i := 1; i < len(l); i++ {
		s += l[i-1].Dist(l[i])
	}
	return s
}

// Midpoint returns the point halfway along the line by arc length.
func (l LineString) Midpoint() Point {
	if len(l) == 0 {
		return Point{}
	}
	half := l.Length() / 2
	for i := 1; i < len(l); i++ {
		d := l[i-1].Dist(l[i])
		if d >= half && d > 0 {
			return Lerp(l[i-1], l[i], half/d)
		}
		half -= d
	}
	return l[len(l)-1]
}

// Bounds returns the bounding box of the line.
func (l LineString) Bounds() BBox { return Ring(l).Bounds() }

// IsClosed reports whether the first and last points coincide.
func (l LineString) IsClosed() bool {
	return len(l) > 2 && l[0].Near(l[len(l)-1])
}

// Dedupe drops consecutive repeated points.
func (l LineString) Dedupe() LineString {
	out := make(LineString, 0, len(l))
	for _, p := range l {
		if len(out) > 0 && out[len(out)-1].Near(p) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// PointSegmentDistance returns the distance from p to segment ab.
func PointSegmentDistance(p, a, b Point) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return p.Dist(a)
	}
	t := p.Sub(a).Dot(ab) / l2
	t = math.Max(0, math.Min(1, t))
	return p.Dist(Lerp(a, b, t))
}

// SegmentDistance returns the minimum distance between segments ab and cd.
func SegmentDistance(a, b, c, d Point) float64 {
	if SegmentsTouch(a, b, c, d) {
		return 0
	}
	return math.Min(
		math.Min(PointSegmentDistance(a, c, d), PointSegmentDistance(b, c, d)),
		math.Min(PointSegmentDistance(c, a, b), PointSegmentDistance(d, a, b)),
	)
}

// SegmentsTouch reports whether segments ab and cd share at least one point.
func SegmentsTouch(a, b, c, d Point) bool {
	d1 := orient(c, d, a)
	d2 := orient(c, d, b)
	d3 := orient(a, b, c)
	d4 := orient(a, b, d)
	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) && ((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	return (d1 == 0 && PointSegmentDistance(a, c, d) <= Epsilon) ||
		(d2 == 0 && PointSegmentDistance(b, c, d) <= Epsilon) ||
		(d3 == 0 && PointSegmentDistance(c, a, b) <= Epsilon) ||
		(d4 == 0 && PointSegmentDistance(d, a, b) <= Epsilon)
}

// orient returns the sign of the turn a->b->c, snapping tiny values to 0.
func orient(a, b, c Point) int {
	v := b.Sub(a).Cross(c.Sub(a))
	scale := math.Max(b.Sub(a).Dot(b.Sub(a)), c.Sub(a).Dot(c.Sub(a)))
	if math.Abs(v) <= Epsilon*math.Max(1, scale) {
		return 0
	}
	if v > 0 {
		return 1
	}
	return -1
}

func clamp01(t float64) float64 { return math.Max(0, math.Min(1, t)) }

// Circle returns an n-gon inscribed in the circle. The first vertex sits half
// a step past east so axis-aligned neighbours never share a vertex with it:
// those are the odd vertices of the 2n-gon buffer of center.
func Circle(center Point, radius float64, n int) Ring {
	if n < 3 {
		n = 3
	}
	radius = math.Max(radius, 0)
	disc := geom.Point{X: center.X, Y: center.Y}.Buffer(radius, 2*n)[0]
	out := make(Ring, n)
	for i := range out {
		p := disc[2*i+1]
		out[i] = Point{p.X, p.Y}
	}
	return out
}

// path returns r closed, as ctessum/geom stores rings.
func (r Ring) path() geom.Path {
	out := make(geom.Path, 0, len(r)+1)
	for _, p := range r {
		out = append(out, geom.Point{X: p.X, Y: p.Y})
	}
	if len(r) > 0 {
		out = append(out, out[0])
	}
	return out
}

// geomPolygon returns p with the exterior counter-clockwise and holes clockwise,
// the winding geom's centroid expects.
func (p Polygon) geomPolygon() geom.Polygon {
	out := geom.Polygon{p.Exterior.Oriented(true).path()}
	for _, h := range p.Holes {
		out = append(out, h.Oriented(false).path())
	}
	return out
}

func fromBounds(b *geom.Bounds) BBox {
	if b.Empty() {
		return EmptyBBox()
	}
	return BBox{MinX: b.Min.X, MinY: b.Min.Y, MaxX: b.Max.X, MaxY: b.Max.Y}
}
