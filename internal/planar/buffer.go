package planar

import (
	"fmt"
	"math"
)

// ArcSegments is the number of vertices used to approximate a full circle
// in buffers.
const ArcSegments = 32

// Quad returns the rectangle of half-width r centred on segment ab, or nil
// when the segment is degenerate.
func Quad(a, b Point, r float64) Ring {
	d := b.Sub(a)
	l := math.Hypot(d.X, d.Y)
	if l <= Epsilon || r <= 0 {
		return nil
	}
	n := Point{-d.Y / l * r, d.X / l * r}
	return Ring{a.Sub(n), b.Sub(n), b.Add(n), a.Add(n)}
}

// Buffer accumulates round-capped buffers of many lines. A disc is emitted
// once per distinct vertex and radius.
type Buffer struct {
	parts []MultiPolygon
	discs map[string]bool
}

// NewBuffer returns an empty Buffer.
func NewBuffer() *Buffer {
	return &Buffer{discs: map[string]bool{}}
}

// AddLine adds the round-capped, round-joined buffer of l at distance r.
func (b *Buffer) AddLine(l LineString, r float64) {
	l = l.Dedupe()
	if r <= 0 || len(l) == 0 {
		return
	}
	for i := 1; i < len(l); i++ {
		if q := Quad(l[i-1], l[i], r); q != nil {
			b.parts = append(b.parts, MultiPolygon{{Exterior: q}})
		}
	}
	for _, p := range l {
		key := fmt.Sprintf("%.9f:%.9f:%.9f", p.X, p.Y, r)
		if b.discs[key] {
			continue
		}
		b.discs[key] = true
		b.parts = append(b.parts, MultiPolygon{{Exterior: Circle(p, r, ArcSegments)}})
	}
}

// AddSegment adds the buffer of a single segment ab at distance r.
func (b *Buffer) AddSegment(a, c Point, r float64) {
	b.AddLine(LineString{a, c}, r)
}

// Len returns the number of primitive shapes collected.
func (b *Buffer) Len() int { return len(b.parts) }

// Result unions every collected shape with k.
func (b *Buffer) Result(k Kernel) MultiPolygon {
	return UnionAll(k, b.parts)
}

// BufferLine returns the round-capped buffer of l at distance r.
func BufferLine(k Kernel, l LineString, r float64) MultiPolygon {
	b := NewBuffer()
	b.AddLine(l, r)
	return b.Result(k)
}

// Erode returns the points of p at least d from its boundary: p minus the
// buffer of every ring edge. Joins at reflex corners come out rounded.
func Erode(k Kernel, p Polygon, d float64) MultiPolygon {
	if d <= 0 {
		return MultiPolygon{p}
	}
	b := NewBuffer()
	for _, r := range p.Rings() {
		r = r.Simplify()
		for i := range r {
			a, c := r.Edge(i)
			b.AddSegment(a, c, d)
		}
	}
	return k.Difference(MultiPolygon{p}, b.Result(k))
}

// NearArea reports whether segment ab passes within tol of any part of
// area, interior included.
func NearArea(a, b Point, area MultiPolygon, tol float64) bool {
	box := LineString{a, b}.Bounds()
	box = BBox{box.MinX - tol, box.MinY - tol, box.MaxX + tol, box.MaxY + tol}
	for _, p := range area {
		if !box.Intersects(p.Bounds()) {
			continue
		}
		if p.Contains(a) || p.Contains(b) || p.Contains(Lerp(a, b, 0.5)) {
			return true
		}
		for _, r := range p.Rings() {
			for i := range r {
				c, d := r.Edge(i)
				if SegmentDistance(a, b, c, d) <= tol {
					return true
				}
			}
		}
	}
	return false
}
