// Package export writes layout results to files: GeoJSON drawings, WKT
// parcel lists, shapefiles and a parcel schedule workbook.
package export

import (
	"encoding/json"
	"io"
	"maps"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/sells-group/layout-cli/internal/drawing"
	"github.com/sells-group/layout-cli/internal/model"
	"github.com/sells-group/layout-cli/internal/planar"
)

// GeoJSONSurface is a drawing.Surface that collects GeoJSON features.
// Closed polylines become polygons, labels become points with a "text"
// property, and every feature carries its "layer".
type GeoJSONSurface struct {
	features []*geojson.Feature
}

var _ drawing.Surface = (*GeoJSONSurface)(nil)

func (s *GeoJSONSurface) AddPolyline(layer string, pts []planar.Point, closed bool, attrs drawing.Attrs) {
	if len(pts) < 2 {
		return
	}
	var g geom.T
	if closed {
		g = geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{ringCoords(pts)})
	} else {
		g = geom.NewLineString(geom.XY).MustSetCoords(coords(pts))
	}
	s.add(layer, g, attrs)
}

func (s *GeoJSONSurface) AddLabel(layer string, at planar.Point, text string, height float64) {
	s.add(layer, geom.NewPoint(geom.XY).MustSetCoords(geom.Coord{at.X, at.Y}),
		drawing.Attrs{"text": text, "height": height})
}

func (s *GeoJSONSurface) AddRectangle(layer string, lo, hi planar.Point) {
	box := planar.BBox{MinX: lo.X, MinY: lo.Y, MaxX: hi.X, MaxY: hi.Y}
	s.add(layer, geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{ringCoords(box.Ring())}), nil)
}

func (s *GeoJSONSurface) add(layer string, g geom.T, attrs drawing.Attrs) {
	props := map[string]any{"layer": layer}
	maps.Copy(props, attrs)
	s.features = append(s.features, &geojson.Feature{Geometry: g, Properties: props})
}

// FeatureCollection returns everything drawn so far.
func (s *GeoJSONSurface) FeatureCollection() *geojson.FeatureCollection {
	return &geojson.FeatureCollection{Features: s.features}
}

// Len returns the number of features.
func (s *GeoJSONSurface) Len() int { return len(s.features) }

// GeoJSON draws r and returns it as a FeatureCollection.
func GeoJSON(r *model.Result, opts drawing.Options) *geojson.FeatureCollection {
	s := &GeoJSONSurface{}
	drawing.Draw(s, r, opts)
	return s.FeatureCollection()
}

// WriteGeoJSON encodes the drawing of r to w.
func WriteGeoJSON(w io.Writer, r *model.Result, opts drawing.Options) error {
	data, err := json.Marshal(GeoJSON(r, opts))
	if err != nil {
		return eris.Wrap(err, "export: encode geojson")
	}
	if _, err := w.Write(data); err != nil {
		return eris.Wrap(err, "export: write geojson")
	}
	return nil
}

func coords(pts []planar.Point) []geom.Coord {
	out := make([]geom.Coord, len(pts))
	for i, p := range pts {
		out[i] = geom.Coord{p.X, p.Y}
	}
	return out
}

// ringCoords returns the ring closed, as GeoJSON and WKT require.
func ringCoords(pts []planar.Point) []geom.Coord {
	out := coords(planar.Ring(pts).Open())
	if len(out) > 0 {
		out = append(out, out[0])
	}
	return out
}

// toPolygon converts a planar polygon with holes to go-geom.
func toPolygon(p planar.Polygon) *geom.Polygon {
	rings := [][]geom.Coord{ringCoords(p.Exterior.Oriented(true))}
	for _, h := range p.Holes {
		rings = append(rings, ringCoords(h.Oriented(false)))
	}
	return geom.NewPolygon(geom.XY).MustSetCoords(rings)
}
