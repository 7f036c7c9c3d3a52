package export

import (
	"path/filepath"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"

	"github.com/sells-group/layout-cli/internal/model"
	"github.com/sells-group/layout-cli/internal/planar"
)

var parcelFields = []shp.Field{
	shp.StringField("ID", 12),
	shp.NumberField("BLOCK", 6),
	shp.FloatField("AREA", 14, 3),
	shp.FloatField("WIDTH", 10, 3),
	shp.FloatField("DEPTH", 10, 3),
	shp.FloatField("FRONTAGE", 10, 3),
	shp.FloatField("BUILDABLE", 14, 3),
	shp.NumberField("FALLBACK", 1),
}

var roadFields = []shp.Field{
	shp.StringField("NAME", 32),
	shp.StringField("CLASS", 10),
	shp.FloatField("WIDTH", 8, 2),
}

// WriteShapefiles writes <prefix>_parcels.shp and <prefix>_roads.shp (with
// their .shx and .dbf) into dir and returns the .shp paths.
func WriteShapefiles(dir, prefix string, r *model.Result) ([]string, error) {
	parcels := filepath.Join(dir, prefix+"_parcels.shp")
	if err := writeParcels(parcels, r.Parcels); err != nil {
		return nil, err
	}
	roads := filepath.Join(dir, prefix+"_roads.shp")
	if err := writeRoads(roads, r.Roads); err != nil {
		return nil, err
	}
	return []string{parcels, roads}, nil
}

func writeParcels(path string, parcels []model.Parcel) error {
	w, err := shp.Create(path, shp.POLYGON)
	if err != nil {
		return eris.Wrap(err, "export: create parcel shapefile")
	}
	defer w.Close()
	if err := w.SetFields(parcelFields); err != nil {
		return eris.Wrap(err, "export: parcel fields")
	}

	for _, p := range parcels {
		parts := [][]shp.Point{shpRing(p.Vertices.Oriented(false))}
		for _, h := range p.Shape.Holes {
			parts = append(parts, shpRing(h.Oriented(true)))
		}
		poly := shp.Polygon(*shp.NewPolyLine(parts))
		row := int(w.Write(&poly))
		fallback := 0
		if p.Fallback {
			fallback = 1
		}
		values := []any{p.ID, p.Block, p.Area, p.Width, p.Depth, p.FrontageLength(), p.BuildableSize(), fallback}
		for i, v := range values {
			if err := w.WriteAttribute(row, i, v); err != nil {
				return eris.Wrapf(err, "export: attribute %d of %s", i, p.ID)
			}
		}
	}
	return nil
}

func writeRoads(path string, roads []model.RoadSegment) error {
	w, err := shp.Create(path, shp.POLYLINE)
	if err != nil {
		return eris.Wrap(err, "export: create road shapefile")
	}
	defer w.Close()
	if err := w.SetFields(roadFields); err != nil {
		return eris.Wrap(err, "export: road fields")
	}

	for _, road := range roads {
		pts := make([]shp.Point, len(road.Centerline))
		for i, p := range road.Centerline {
			pts[i] = shp.Point{X: p.X, Y: p.Y}
		}
		row := int(w.Write(shp.NewPolyLine([][]shp.Point{pts})))
		for i, v := range []any{road.Name, string(road.Class), road.Width} {
			if err := w.WriteAttribute(row, i, v); err != nil {
				return eris.Wrapf(err, "export: attribute %d of %s", i, road.Name)
			}
		}
	}
	return nil
}

// shpRing closes r. Shapefile outer rings run clockwise and holes
// counter-clockwise; callers orient r first.
func shpRing(r planar.Ring) []shp.Point {
	out := make([]shp.Point, 0, len(r)+1)
	for _, p := range r {
		out = append(out, shp.Point{X: p.X, Y: p.Y})
	}
	if len(r) > 0 {
		out = append(out, shp.Point{X: r[0].X, Y: r[0].Y})
	}
	return out
}
