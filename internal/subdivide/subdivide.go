// Package subdivide tiles a block into rectangular plots. Column widths and
// row depths come from the plot size and the remainder strategy; each cell is
// then cut to the true block outline.
package subdivide

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/sells-group/layout-cli/internal/model"
	"github.com/sells-group/layout-cli/internal/planar"
)

const (
	// WidthFactor scales the minimum parcel width into the derived plot
	// width.
	WidthFactor = 1.2
	// LeftoverEpsilon is the leftover below which no remainder rule applies.
	LeftoverEpsilon = 1e-6
	// SliverEpsilon is added to a piece's area before the minimum-area test.
	SliverEpsilon = 1e-6

	minPlotSize = 1e-6
	countSlack  = 1e-9
)

// Tiling is the outcome of subdividing one block.
type Tiling struct {
	Columns []float64
	Rows    []float64
	Pieces  []planar.Polygon
	// Fallback is set when no cell survived and the block was kept whole.
	Fallback bool
	// Skipped is set when the block is smaller than the minimum parcel.
	Skipped bool
}

// PlotSize returns the plot width and depth, honouring explicit overrides.
func PlotSize(p model.LayoutParameters) (width, depth float64) {
	width = p.PlotWidth
	if width <= 0 {
		width = math.Max(p.MinParcelWidth*WidthFactor, minPlotSize)
	}
	depth = p.PlotDepth
	if depth <= 0 {
		target := (p.MinParcelArea + p.MaxParcelArea) / 2
		depth = math.Max(target/width, minPlotSize)
	}
	return width, depth
}

// Partition splits extent into cells of size along one axis and disposes of
// the leftover with s. other is the plot size on the other axis, used by
// the separate strategy to decide whether the leftover is a plot of its
// own.
func Partition(extent, size, other, minArea float64, s model.RemainderStrategy) []float64 {
	n := int(math.Floor(extent/size + countSlack))
	if n < 1 {
		n = 1
	}
	cells := make([]float64, n)
	for i := range cells {
		cells[i] = size
	}
	leftover := extent - float64(n)*size
	if math.Abs(leftover) <= LeftoverEpsilon {
		return cells
	}

	switch s {
	case model.RemainderSeparate:
		if leftover > 0 && leftover*other >= minArea {
			return append(cells, leftover)
		}
		cells[n-1] += leftover
	case model.RemainderDistribute:
		share := leftover / float64(n)
		for i := range cells {
			cells[i] += share
		}
	default:
		cells[n-1] += leftover
	}
	return cells
}

// Subdivide tiles block row by row from the south-west corner of its box,
// west to east within a row. Pieces smaller than MinParcelArea are dropped.
// When nothing survives, each part of the block large enough to stand alone
// is emitted whole.
func Subdivide(k planar.Kernel, block model.Block, p model.LayoutParameters, diag *model.Diagnostics) Tiling {
	area := block.Area()
	if area < p.MinParcelArea {
		return Tiling{Skipped: true}
	}

	b := block.Shape.Bounds()
	w, d := PlotSize(p)
	t := Tiling{
		Columns: Partition(b.Width(), w, d, p.MinParcelArea, p.RemainderStrategy),
		Rows:    Partition(b.Height(), d, w, p.MinParcelArea, p.RemainderStrategy),
	}

	y := b.MinY
	for _, h := range t.Rows {
		x := b.MinX
		for _, cw := range t.Columns {
			t.Pieces = append(t.Pieces, cut(k, block.Shape, planar.BBox{MinX: x, MinY: y, MaxX: x + cw, MaxY: y + h}, p.MinParcelArea)...)
			x += cw
		}
		y += h
	}

	if len(t.Pieces) == 0 {
		t.Fallback = true
		t.Pieces = fallback(block.Shape, p.MinParcelArea)
		if dropped := len(block.Shape) - len(t.Pieces); dropped > 0 {
			diag.Report(model.StageSubdivide, fmt.Sprintf("block %d", block.Index),
				fmt.Sprintf("fallback dropped %d of %d parts", dropped, len(block.Shape)))
		}
	}
	zap.L().Debug("subdivide: tiled block",
		zap.Int("block", block.Index),
		zap.Int("columns", len(t.Columns)),
		zap.Int("rows", len(t.Rows)),
		zap.Int("pieces", len(t.Pieces)),
		zap.Bool("fallback", t.Fallback),
	)
	return t
}

// cut intersects one cell with the block and returns the pieces that meet
// the minimum area. Cells wholly inside the block skip the kernel.
func cut(k planar.Kernel, shape planar.MultiPolygon, cell planar.BBox, minArea float64) []planar.Polygon {
	if shape.ContainsBox(cell) {
		r := planar.Rect(cell.MinX, cell.MinY, cell.MaxX, cell.MaxY)
		if r.Area()+SliverEpsilon >= minArea {
			return []planar.Polygon{r}
		}
		return nil
	}
	var out []planar.Polygon
	for _, piece := range k.Intersection(planar.MultiPolygon{planar.Rect(cell.MinX, cell.MinY, cell.MaxX, cell.MaxY)}, shape) {
		if piece.Area()+SliverEpsilon >= minArea {
			out = append(out, piece)
		}
	}
	return out
}

// fallback keeps every part of m that meets the minimum area as a parcel of
// its own. A block whose parts are each below the minimum keeps its largest.
func fallback(m planar.MultiPolygon, minArea float64) []planar.Polygon {
	var out []planar.Polygon
	for _, part := range m {
		if part.Area()+SliverEpsilon >= minArea {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		out = []planar.Polygon{largest(m)}
	}
	return out
}

func largest(m planar.MultiPolygon) planar.Polygon {
	best := 0
	for i := range m {
		if m[i].Area() > m[best].Area() {
			best = i
		}
	}
	return m[best]
}
