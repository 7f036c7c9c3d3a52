// Package plan loads layout plan documents. A plan names the site, lists its
// boundary beacons (or points at a boundary shapefile) and overrides any
// subset of the layout parameters.
package plan

import (
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/layout-cli/internal/model"
	"github.com/sells-group/layout-cli/internal/planar"
)

// TypeLayout is the only plan type the layout engine accepts.
const TypeLayout = "layout"

// Coordinate is one boundary beacon.
type Coordinate struct {
	ID       string  `yaml:"id" json:"id"`
	Easting  float64 `yaml:"easting" json:"easting"`
	Northing float64 `yaml:"northing" json:"northing"`
}

// Boundary is the plan's site outline. File, when set and Coordinates is
// empty, names a polygon shapefile (.shp or a .zip holding one) relative to
// the plan document.
type Boundary struct {
	Coordinates []Coordinate `yaml:"coordinates" json:"coordinates"`
	File        string       `yaml:"file,omitempty" json:"file,omitempty"`
}

// Plan is a decoded plan document.
type Plan struct {
	Name       string                 `yaml:"name" json:"name"`
	Type       string                 `yaml:"type" json:"type"`
	Boundary   Boundary               `yaml:"layout_boundary" json:"layout_boundary"`
	Parameters model.LayoutParameters `yaml:"layout_parameters" json:"layout_parameters"`

	dir string
}

// Parse decodes a YAML or JSON plan. Parameters absent from the document
// keep the values in defaults.
func Parse(data []byte, defaults model.LayoutParameters) (*Plan, error) {
	p := &Plan{Type: TypeLayout, Parameters: defaults}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, eris.Wrap(err, "plan: decode")
	}
	if p.Type != TypeLayout {
		return nil, model.NewConfigurationError("type", "plan type "+p.Type+" is not "+TypeLayout)
	}
	return p, nil
}

// Load reads and parses the plan at path.
func Load(path string, defaults model.LayoutParameters) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "plan: read %s", path)
	}
	p, err := Parse(data, defaults)
	if err != nil {
		return nil, err
	}
	p.dir = filepath.Dir(path)
	return p, nil
}

// SiteBoundary returns the boundary vertices, reading the shapefile when
// the plan has no inline coordinates.
func (p *Plan) SiteBoundary() (model.Boundary, error) {
	if len(p.Boundary.Coordinates) > 0 {
		out := make(model.Boundary, len(p.Boundary.Coordinates))
		for i, c := range p.Boundary.Coordinates {
			out[i] = planar.Point{X: c.Easting, Y: c.Northing}
		}
		return out, nil
	}
	if p.Boundary.File == "" {
		return nil, model.NewConfigurationError("layout_boundary", "no coordinates or boundary file")
	}
	path := p.Boundary.File
	if !filepath.IsAbs(path) && p.dir != "" {
		path = filepath.Join(p.dir, path)
	}
	return ReadBoundary(path)
}
