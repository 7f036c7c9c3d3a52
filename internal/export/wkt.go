package export

import (
	"fmt"
	"io"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/wkt"

	"github.com/sells-group/layout-cli/internal/model"
	"github.com/sells-group/layout-cli/internal/planar"
)

// ParcelWKT returns the parcel outline, holes included, as WKT.
func ParcelWKT(p model.Parcel) (string, error) {
	shape := p.Shape
	if len(shape.Exterior) == 0 {
		shape = planar.Polygon{Exterior: p.Vertices}
	}
	s, err := wkt.Marshal(toPolygon(shape))
	if err != nil {
		return "", eris.Wrapf(err, "export: wkt for %s", p.ID)
	}
	return s, nil
}

// WriteWKT writes one "id<TAB>wkt" line per parcel.
func WriteWKT(w io.Writer, r *model.Result) error {
	for _, p := range r.Parcels {
		s, err := ParcelWKT(p)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\n", p.ID, s); err != nil {
			return eris.Wrap(err, "export: write wkt")
		}
	}
	return nil
}
