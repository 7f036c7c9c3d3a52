package export

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/layout-cli/internal/drawing"
	"github.com/sells-group/layout-cli/internal/model"
)

// Format names accepted by Write.
const (
	GeoJSONFormat = "geojson"
	ShapeFormat   = "shp"
	XLSXFormat    = "xlsx"
	WKTFormat     = "wkt"
)

// Formats lists every supported format.
var Formats = []string{GeoJSONFormat, ShapeFormat, XLSXFormat, WKTFormat}

// Write renders r into dir in each requested format and returns the paths
// written. Files are named after prefix.
func Write(dir, prefix string, r *model.Result, formats []string, opts drawing.Options) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, eris.Wrapf(err, "export: create %s", dir)
	}

	var paths []string
	for _, format := range formats {
		var (
			written []string
			err     error
		)
		switch format {
		case GeoJSONFormat:
			written, err = writeFile(filepath.Join(dir, prefix+".geojson"), func(buf *bytes.Buffer) error {
				return WriteGeoJSON(buf, r, opts)
			})
		case WKTFormat:
			written, err = writeFile(filepath.Join(dir, prefix+"_parcels.wkt"), func(buf *bytes.Buffer) error {
				return WriteWKT(buf, r)
			})
		case XLSXFormat:
			written, err = writeFile(filepath.Join(dir, prefix+"_schedule.xlsx"), func(buf *bytes.Buffer) error {
				return WriteSchedule(buf, r, drawing.NewFormatter(opts.Locale))
			})
		case ShapeFormat:
			written, err = WriteShapefiles(dir, prefix, r)
		default:
			return paths, eris.Errorf("export: unknown format %q", format)
		}
		if err != nil {
			return paths, err
		}
		zap.L().Debug("export: wrote", zap.String("format", format), zap.Strings("paths", written))
		paths = append(paths, written...)
	}
	return paths, nil
}

func writeFile(path string, fill func(*bytes.Buffer) error) ([]string, error) {
	var buf bytes.Buffer
	if err := fill(&buf); err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return nil, eris.Wrapf(err, "export: write %s", path)
	}
	return []string{path}, nil
}
