package plan

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/layout-cli/internal/model"
	"github.com/sells-group/layout-cli/internal/planar"
)

// ReadBoundary returns the largest ring of the first polygon record in a
// shapefile. A .zip path is unpacked to a temporary directory first.
func ReadBoundary(path string) (model.Boundary, error) {
	log := zap.L().With(zap.String("component", "plan.shapefile"), zap.String("path", path))

	if strings.EqualFold(filepath.Ext(path), ".zip") {
		dir, err := os.MkdirTemp("", "layout-boundary-")
		if err != nil {
			return nil, eris.Wrap(err, "plan: create temp dir")
		}
		defer os.RemoveAll(dir) //nolint:errcheck
		if err := extractZIP(path, dir); err != nil {
			return nil, eris.Wrap(err, "plan: extract boundary archive")
		}
		if path, err = findFileByExt(dir, ".shp"); err != nil {
			return nil, eris.Wrap(err, "plan: find .shp file")
		}
	}

	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "plan: open shapefile")
	}
	defer func() { _ = reader.Close() }()

	for reader.Next() {
		_, shape := reader.Shape()
		poly, ok := shape.(*shp.Polygon)
		if !ok || poly.NumParts == 0 {
			continue
		}
		ring := largestRing(poly)
		log.Debug("boundary loaded", zap.Int("vertices", len(ring)))
		return model.Boundary(ring.Open()), nil
	}
	return nil, model.NewConfigurationError("layout_boundary", "shapefile has no polygon records")
}

func largestRing(p *shp.Polygon) planar.Ring {
	var best planar.Ring
	for i := int32(0); i < p.NumParts; i++ {
		start := p.Parts[i]
		end := int32(len(p.Points))
		if i+1 < p.NumParts {
			end = p.Parts[i+1]
		}
		ring := make(planar.Ring, 0, end-start)
		for _, pt := range p.Points[start:end] {
			ring = append(ring, planar.Point{X: pt.X, Y: pt.Y})
		}
		if ring.Area() > best.Area() {
			best = ring
		}
	}
	return best
}

func extractZIP(zipPath, destDir string) error {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return eris.Wrap(err, "open zip")
	}
	defer r.Close() //nolint:errcheck

	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if err := extractEntry(f, filepath.Join(destDir, filepath.Base(f.Name))); err != nil {
			return eris.Wrapf(err, "extract %s", f.Name)
		}
	}
	return nil
}

func extractEntry(f *zip.File, dest string) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close() //nolint:errcheck

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func findFileByExt(dir, ext string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", eris.Wrap(err, "read directory")
	}
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ext) {
			return filepath.Join(dir, e.Name()), nil
		}
	}
	return "", eris.Errorf("no %s file found in %s", ext, dir)
}
