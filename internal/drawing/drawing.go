// Package drawing emits a layout result as layered drawing primitives. Any
// backend that accepts polylines, labels and rectangles can render it.
package drawing

import (
	"github.com/sells-group/layout-cli/internal/model"
	"github.com/sells-group/layout-cli/internal/planar"
)

// Layer names.
const (
	LayerFrame     = "FRAME"
	LayerBoundary  = "BOUNDARY"
	LayerRoads     = "ROADS"
	LayerBlocks    = "BLOCKS"
	LayerGreen     = "GREEN"
	LayerParcels   = "PARCELS"
	LayerSetbacks  = "SETBACKS"
	LayerFrontage  = "FRONTAGE"
	LayerLabels    = "LABELS"
	LayerFootprint = "ROAD_FOOTPRINT"
)

// Layers lists every layer in drawing order.
var Layers = []string{
	LayerFrame, LayerBoundary, LayerFootprint, LayerRoads, LayerBlocks,
	LayerGreen, LayerParcels, LayerSetbacks, LayerFrontage, LayerLabels,
}

// Surface receives drawing primitives.
type Surface interface {
	AddPolyline(layer string, pts []planar.Point, closed bool, attrs Attrs)
	AddLabel(layer string, at planar.Point, text string, height float64)
	AddRectangle(layer string, lo, hi planar.Point)
}

// Attrs carries feature properties alongside a primitive.
type Attrs map[string]any

// Options controls annotation.
type Options struct {
	// Margin is the gap between the boundary box and the frame.
	Margin float64
	// TextHeight is the parcel label height; the area line sits
	// AreaOffset below the id.
	TextHeight float64
	AreaOffset float64
	Locale     string
}

// DefaultOptions returns the standard annotation settings.
func DefaultOptions() Options {
	return Options{Margin: 10, TextHeight: 2, AreaOffset: 3, Locale: "en"}
}

// Draw writes r to s layer by layer.
func Draw(s Surface, r *model.Result, opts Options) {
	f := NewFormatter(opts.Locale)

	box := r.Boundary.Ring().Bounds()
	s.AddRectangle(LayerFrame,
		planar.Point{X: box.MinX - opts.Margin, Y: box.MinY - opts.Margin},
		planar.Point{X: box.MaxX + opts.Margin, Y: box.MaxY + opts.Margin})

	s.AddPolyline(LayerBoundary, r.Boundary.Ring(), true, Attrs{"area": r.Stats.TotalArea})

	for _, p := range r.Footprint {
		polygon(s, LayerFootprint, p, nil)
	}
	for _, road := range r.Roads {
		s.AddPolyline(LayerRoads, road.Centerline, false, Attrs{
			"name":           road.Name,
			"classification": string(road.Class),
			"width":          road.Width,
		})
	}
	for _, b := range r.Blocks {
		for _, p := range b.Shape {
			polygon(s, LayerBlocks, p, Attrs{"block": b.Index})
		}
	}
	for _, g := range r.GreenSpaces {
		for _, p := range g.Shape {
			polygon(s, LayerGreen, p, Attrs{"block": g.Block, "area": g.Area})
		}
	}

	for _, p := range r.Parcels {
		s.AddPolyline(LayerParcels, p.Vertices, true, Attrs{
			"id":    p.ID,
			"block": p.Block,
			"area":  p.Area,
		})
		if len(p.BuildableArea) > 0 {
			s.AddPolyline(LayerSetbacks, p.BuildableArea, true, Attrs{"id": p.ID, "area": p.BuildableSize()})
		}
		if len(p.StreetFrontage) > 1 {
			s.AddPolyline(LayerFrontage, p.StreetFrontage, false, Attrs{"id": p.ID, "length": p.FrontageLength()})
		}
		s.AddLabel(LayerLabels, p.Centroid, p.ID, opts.TextHeight)
		s.AddLabel(LayerLabels, planar.Point{X: p.Centroid.X, Y: p.Centroid.Y - opts.AreaOffset}, f.Area(p.Area), opts.TextHeight*0.75)
	}
	for _, road := range r.Roads {
		if road.Name != "" {
			s.AddLabel(LayerLabels, road.Centerline.Midpoint(), road.Name, opts.TextHeight*1.5)
		}
	}
}

func polygon(s Surface, layer string, p planar.Polygon, attrs Attrs) {
	s.AddPolyline(layer, p.Exterior, true, attrs)
	for _, h := range p.Holes {
		s.AddPolyline(layer, h, true, attrs)
	}
}
