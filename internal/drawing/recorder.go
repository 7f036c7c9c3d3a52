package drawing

import "github.com/sells-group/layout-cli/internal/planar"

// Kind identifies a recorded primitive.
type Kind int

const (
	KindPolyline Kind = iota
	KindLabel
	KindRectangle
)

// Primitive is one recorded drawing call.
type Primitive struct {
	Kind   Kind
	Layer  string
	Points []planar.Point
	Closed bool
	Text   string
	Height float64
	Attrs  Attrs
}

// Recorder is a Surface that keeps every call in order.
type Recorder struct {
	Primitives []Primitive
}

func (r *Recorder) AddPolyline(layer string, pts []planar.Point, closed bool, attrs Attrs) {
	r.Primitives = append(r.Primitives, Primitive{
		Kind: KindPolyline, Layer: layer, Points: append([]planar.Point(nil), pts...), Closed: closed, Attrs: attrs,
	})
}

func (r *Recorder) AddLabel(layer string, at planar.Point, text string, height float64) {
	r.Primitives = append(r.Primitives, Primitive{Kind: KindLabel, Layer: layer, Points: []planar.Point{at}, Text: text, Height: height})
}

func (r *Recorder) AddRectangle(layer string, lo, hi planar.Point) {
	r.Primitives = append(r.Primitives, Primitive{Kind: KindRectangle, Layer: layer, Points: []planar.Point{lo, hi}})
}

// Layer returns the primitives drawn on one layer.
func (r *Recorder) Layer(name string) []Primitive {
	var out []Primitive
	for _, p := range r.Primitives {
		if p.Layer == name {
			out = append(out, p)
		}
	}
	return out
}
