package planar

import (
	"math"
	"sort"

	"github.com/ctessum/geom"
)

// Kernel is the boolean polygon capability the layout stages depend on.
// Implementations must be safe for concurrent use.
type Kernel interface {
	Union(a, b MultiPolygon) MultiPolygon
	Difference(a, b MultiPolygon) MultiPolygon
	Intersection(a, b MultiPolygon) MultiPolygon
}

// UnionAll folds parts into one set with k.
func UnionAll(k Kernel, parts []MultiPolygon) MultiPolygon {
	var acc MultiPolygon
	for _, p := range parts {
		if p.IsEmpty() {
			continue
		}
		if len(acc) == 0 {
			acc = p
			continue
		}
		acc = k.Union(acc, p)
	}
	return acc
}

// Clipper implements Kernel on the Martinez sweep of github.com/ctessum/geom.
// Results are re-assembled into exterior/hole polygons locally so the
// winding produced by the sweep does not matter.
type Clipper struct{}

// NewClipper returns the default Kernel.
func NewClipper() Clipper { return Clipper{} }

// Union returns the area covered by a or b.
func (Clipper) Union(a, b MultiPolygon) MultiPolygon {
	if a.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return a
	}
	return fromGeom(toGeom(a).Union(toGeom(b)))
}

// Difference returns the area of a not covered by b.
func (Clipper) Difference(a, b MultiPolygon) MultiPolygon {
	if a.IsEmpty() {
		return nil
	}
	if b.IsEmpty() || !a.Bounds().Intersects(b.Bounds()) {
		return a
	}
	return fromGeom(toGeom(a).Difference(toGeom(b)))
}

// Intersection returns the area covered by both a and b.
func (Clipper) Intersection(a, b MultiPolygon) MultiPolygon {
	if a.IsEmpty() || b.IsEmpty() || !a.Bounds().Intersects(b.Bounds()) {
		return nil
	}
	return fromGeom(toGeom(a).Intersection(toGeom(b)))
}

func toGeom(m MultiPolygon) geom.Polygon {
	var out geom.Polygon
	for _, r := range m.Rings() {
		path := make([]geom.Point, len(r))
		for i, p := range r {
			path[i] = geom.Point{X: p.X, Y: p.Y}
		}
		out = append(out, path)
	}
	return out
}

// fromGeom flattens every ring of g and re-assembles them.
func fromGeom(g geom.Polygonal) MultiPolygon {
	var rings []Ring
	for _, poly := range g.Polygons() {
		for _, path := range poly {
			r := make(Ring, len(path))
			for i, p := range path {
				r[i] = Point{p.X, p.Y}
			}
			rings = append(rings, r.Open())
		}
	}
	return Assemble(rings)
}

// Assemble groups loose rings into polygons by nesting depth: rings at even
// depth become exteriors, rings at odd depth become holes of the smallest
// enclosing exterior. Degenerate rings are dropped. Output is ordered south
// to north, then west to east, by bounding box so results do not depend on
// the order the kernel emitted rings in.
func Assemble(rings []Ring) MultiPolygon {
	type node struct {
		ring  Ring
		area  float64
		depth int
		owner int
	}
	var nodes []node
	for _, r := range rings {
		r = r.Simplify()
		if len(r) < 3 || r.Area() <= AreaEpsilon {
			continue
		}
		nodes = append(nodes, node{ring: r, area: r.Area(), owner: -1})
	}
	sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].area > nodes[j].area })

	for i := range nodes {
		best := -1
		for j := 0; j < i; j++ {
			if !ringInside(nodes[i].ring, nodes[j].ring) {
				continue
			}
			nodes[i].depth++
			if best < 0 || nodes[j].area < nodes[best].area {
				best = j
			}
		}
		nodes[i].owner = best
	}

	index := map[int]int{}
	var out MultiPolygon
	for i, n := range nodes {
		if n.depth%2 == 0 {
			index[i] = len(out)
			out = append(out, Polygon{Exterior: n.ring.Oriented(true)})
		}
	}
	for _, n := range nodes {
		if n.depth%2 == 1 && n.owner >= 0 {
			if k, ok := index[n.owner]; ok {
				out[k].Holes = append(out[k].Holes, n.ring.Oriented(false))
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		bi, bj := out[i].Bounds(), out[j].Bounds()
		if math.Abs(bi.MinY-bj.MinY) > Epsilon {
			return bi.MinY < bj.MinY
		}
		return bi.MinX < bj.MinX
	})
	return out
}

// ringInside reports whether inner lies within outer, judged by the first
// vertex of inner that is not on the boundary of outer.
func ringInside(inner, outer Ring) bool {
	for _, p := range inner {
		if outer.OnBoundary(p) {
			continue
		}
		return outer.winds(p)
	}
	// Every vertex on the boundary: test an edge midpoint instead.
	for i := range inner {
		a, b := inner.Edge(i)
		m := Lerp(a, b, 0.5)
		if !outer.OnBoundary(m) {
			return outer.winds(m)
		}
	}
	return false
}
