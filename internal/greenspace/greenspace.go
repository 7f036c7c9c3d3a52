// Package greenspace reserves circular open space inside the largest blocks
// until a target share of the site is set aside.
package greenspace

import (
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/sells-group/layout-cli/internal/model"
	"github.com/sells-group/layout-cli/internal/planar"
)

// Allocation constants. Blocks under MinBlockArea never receive a reserve.
const (
	MinBlockArea  = 5000.0
	MaxRadius     = 20.0
	RadiusFactor  = 0.15
	ReservePoints = planar.ArcSegments
)

// Radius returns the reserve radius for a block of the given area.
func Radius(blockArea float64) float64 {
	return math.Min(MaxRadius, math.Sqrt(blockArea)*RadiusFactor)
}

// Allocate carves reserves out of blocks, largest first, until the reserved
// area reaches siteArea * GreenSpacePercentage / 100. Blocks keep their
// position in the returned slice; green spaces are in allocation order.
// The input slice is not modified.
func Allocate(k planar.Kernel, blocks []model.Block, siteArea float64, p model.LayoutParameters, diag *model.Diagnostics) ([]model.Block, []model.GreenSpace) {
	out := append([]model.Block(nil), blocks...)
	if !p.IncludeGreenSpaces || p.GreenSpacePercentage <= 0 {
		return out, nil
	}
	target := siteArea * p.GreenSpacePercentage / 100

	order := make([]int, len(out))
	areas := make([]float64, len(out))
	for i := range out {
		order[i] = i
		areas[i] = out[i].Area()
	}
	sort.SliceStable(order, func(a, b int) bool { return areas[order[a]] > areas[order[b]] })

	var reserved float64
	var green []model.GreenSpace
	for _, i := range order {
		if reserved >= target {
			break
		}
		if areas[i] < MinBlockArea {
			continue
		}
		b := out[i]
		ref := fmt.Sprintf("block %d", b.Index)
		disc := planar.MultiPolygon{{Exterior: planar.Circle(b.Shape.Centroid(), Radius(areas[i]), ReservePoints)}}
		shape := k.Intersection(disc, b.Shape)
		if shape.IsEmpty() {
			diag.Report(model.StageGreenSpace, ref, "reserve does not overlap block")
			continue
		}
		rest := k.Difference(b.Shape, shape)
		if rest.IsEmpty() {
			diag.Report(model.StageGreenSpace, ref, "reserve consumed the whole block")
		}
		out[i] = model.Block{Index: b.Index, Shape: rest}
		a := shape.Area()
		green = append(green, model.GreenSpace{Block: b.Index, Shape: shape, Area: a})
		reserved += a
	}

	zap.L().Debug("greenspace: allocated",
		zap.Int("reserves", len(green)),
		zap.Float64("target", target),
		zap.Float64("reserved", reserved),
	)
	return out, green
}
