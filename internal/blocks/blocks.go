// Package blocks derives buildable blocks from a site and its road network:
// every centerline is buffered by half its width, the footprints are unioned,
// and the union is subtracted from the site.
package blocks

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/sells-group/layout-cli/internal/model"
	"github.com/sells-group/layout-cli/internal/planar"
)

// conservationTolerance is the relative area mismatch that is reported as a
// degenerate extraction.
const conservationTolerance = 1e-6

// Extraction is the output of Extract.
type Extraction struct {
	Blocks []model.Block
	// Footprint is the road surface inside the site.
	Footprint planar.MultiPolygon
	RoadArea  float64
}

// Footprint returns the union of every road's buffered centerline.
func Footprint(k planar.Kernel, roads []model.RoadSegment) planar.MultiPolygon {
	buf := planar.NewBuffer()
	for _, r := range roads {
		buf.AddLine(r.Centerline, r.Width/2)
	}
	return buf.Result(k)
}

// Extract subtracts the road footprints from site and returns one block per
// connected component, ordered south to north then west to east. With no
// roads the whole site is the single block.
func Extract(k planar.Kernel, site planar.MultiPolygon, roads []model.RoadSegment, diag *model.Diagnostics) Extraction {
	total := site.Area()
	if len(roads) == 0 {
		return Extraction{Blocks: split(site)}
	}

	union := Footprint(k, roads)
	inside := k.Intersection(site, union)
	rest := k.Difference(site, union)

	out := Extraction{Blocks: split(rest), Footprint: inside, RoadArea: inside.Area()}
	if drift := math.Abs(rest.Area() + out.RoadArea - total); drift > conservationTolerance*math.Max(total, 1) {
		diag.Report(model.StageBlocks, "site",
			fmt.Sprintf("block and road areas differ from site area by %.6f", drift))
	}
	zap.L().Debug("blocks: extracted",
		zap.Int("roads", len(roads)),
		zap.Int("blocks", len(out.Blocks)),
		zap.Float64("road_area", out.RoadArea),
	)
	return out
}

func split(m planar.MultiPolygon) []model.Block {
	var out []model.Block
	for _, p := range m {
		if p.Area() <= planar.AreaEpsilon {
			continue
		}
		out = append(out, model.Block{Index: len(out), Shape: planar.MultiPolygon{p}})
	}
	return out
}
