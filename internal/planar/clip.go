package planar

import (
	"math"
	"sort"

	"github.com/ctessum/geom"
)

// ClipLine returns the parts of l that lie inside area, in the order they
// occur along l and running in l's direction. A closed input whose first and
// last parts meet at the start vertex is stitched back into one part.
func ClipLine(l LineString, area MultiPolygon) []LineString {
	l = l.Dedupe()
	if len(l) < 2 || area.IsEmpty() || !l.Bounds().Intersects(area.Bounds()) {
		return nil
	}
	clipping := toGeom(area)

	// The sweep drops chains that close on themselves, so a closed line is
	// clipped as two open halves.
	halves := []LineString{l}
	if l.IsClosed() && len(l) > 3 {
		mid := len(l) / 2
		halves = []LineString{l[:mid+1], l[mid:]}
	}

	var pieces []clipPiece
	for _, h := range halves {
		ml, _ := lineGeom(h).Clip(clipping).(geom.MultiLineString)
		for _, g := range ml {
			part := make(LineString, len(g))
			for i, p := range g {
				part[i] = Point{p.X, p.Y}
			}
			part = part.Dedupe()
			if len(part) < 2 || part.Length() <= Epsilon {
				continue
			}
			seg, forward := l.locate(part[0], part[1])
			if !forward {
				part = LineString(Ring(part).Reverse())
				seg, _ = l.locate(part[0], part[1])
			}
			pieces = append(pieces, clipPiece{pos: float64(seg) + l.param(seg, part[0]), line: part})
		}
	}
	sort.SliceStable(pieces, func(i, j int) bool { return pieces[i].pos < pieces[j].pos })

	var parts []LineString
	for _, pc := range pieces {
		if n := len(parts); n > 0 && parts[n-1][len(parts[n-1])-1].Near(pc.line[0]) {
			parts[n-1] = append(parts[n-1], pc.line[1:]...)
			continue
		}
		parts = append(parts, pc.line)
	}

	if l.IsClosed() && len(parts) > 1 {
		first, last := parts[0], parts[len(parts)-1]
		if first[0].Near(l[0]) && last[len(last)-1].Near(l[len(l)-1]) {
			joined := append(LineString{}, last...)
			joined = append(joined, first[1:]...)
			parts = append([]LineString{joined}, parts[1:len(parts)-1]...)
		}
	}
	for i := range parts {
		parts[i] = mergeCollinear(parts[i])
	}
	return parts
}

type clipPiece struct {
	pos  float64 // segment index plus fraction along it
	line LineString
}

func lineGeom(l LineString) geom.LineString {
	out := make(geom.LineString, len(l))
	for i, p := range l {
		out[i] = geom.Point{X: p.X, Y: p.Y}
	}
	return out
}

// locate returns the segment of l that ab lies on and whether ab runs the
// same way.
func (l LineString) locate(a, b Point) (int, bool) {
	m := Lerp(a, b, 0.5)
	best, bestD := 0, math.Inf(1)
	for i := 1; i < len(l); i++ {
		if d := PointSegmentDistance(m, l[i-1], l[i]); d < bestD {
			best, bestD = i-1, d
		}
	}
	return best, b.Sub(a).Dot(l[best+1].Sub(l[best])) > 0
}

// param returns how far along segment i the projection of p falls, in [0,1].
func (l LineString) param(i int, p Point) float64 {
	d := l[i+1].Sub(l[i])
	dd := d.Dot(d)
	if dd == 0 {
		return 0
	}
	return clamp01(p.Sub(l[i]).Dot(d) / dd)
}

// mergeCollinear drops interior vertices that lie on the straight line
// between their neighbours.
func mergeCollinear(l LineString) LineString {
	if len(l) < 3 {
		return l
	}
	out := LineString{l[0]}
	for i := 1; i < len(l)-1; i++ {
		if PointSegmentDistance(l[i], out[len(out)-1], l[i+1]) <= Epsilon*10 {
			continue
		}
		out = append(out, l[i])
	}
	return append(out, l[len(l)-1])
}

// clipSegmentToBox clips ab to b with Liang-Barsky and reports whether any
// part remains.
func clipSegmentToBox(a, c Point, b BBox) (Point, Point, bool) {
	t0, t1 := 0.0, 1.0
	d := c.Sub(a)
	edges := [4][2]float64{
		{-d.X, a.X - b.MinX},
		{d.X, b.MaxX - a.X},
		{-d.Y, a.Y - b.MinY},
		{d.Y, b.MaxY - a.Y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, c, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return a, c, false
			}
			if r > t0 {
				t0 = r
			}
		} else {
			if r < t0 {
				return a, c, false
			}
			if r < t1 {
				t1 = r
			}
		}
	}
	return Lerp(a, c, t0), Lerp(a, c, t1), true
}

// strictlyInside reports whether p is inside b by more than Epsilon.
func (b BBox) strictlyInside(p Point) bool {
	return p.X > b.MinX+Epsilon && p.X < b.MaxX-Epsilon &&
		p.Y > b.MinY+Epsilon && p.Y < b.MaxY-Epsilon
}

// ContainsBox reports whether the whole box lies inside the area, boundary
// contact allowed. No ring may pass through the box interior and the box
// center must be covered.
func (m MultiPolygon) ContainsBox(b BBox) bool {
	if b.IsEmpty() || !m.Contains(b.Center()) {
		return false
	}
	for _, r := range m.Rings() {
		for i := range r {
			p, q := r.Edge(i)
			s, e, ok := clipSegmentToBox(p, q, b)
			if !ok {
				continue
			}
			if b.strictlyInside(Lerp(s, e, 0.5)) {
				return false
			}
		}
	}
	return true
}
