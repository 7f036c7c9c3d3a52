package roads

import (
	"github.com/sells-group/layout-cli/internal/model"
	"github.com/sells-group/layout-cli/internal/planar"
)

// Mixed is the full grid plus one curved boulevard from the south-west
// corner of the site box to the north-east corner.
type Mixed struct {
	Grid      Grid
	Connector Organic
}

// Generate implements Generator.
func (m Mixed) Generate(site planar.MultiPolygon, p model.LayoutParameters) []model.RoadSegment {
	out := m.Grid.Generate(site, p)
	b := site.Bounds()
	start := planar.Point{X: b.MinX, Y: b.MinY}
	end := planar.Point{X: b.MaxX, Y: b.MaxY}
	connector := model.RoadSegment{Class: model.RoadMain, Kind: model.KindConnector, Width: p.MainRoadWidth}
	return append(out, clip(site, m.Connector.curve(start, end, b.Height()), connector)...)
}
