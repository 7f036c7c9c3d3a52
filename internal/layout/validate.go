package layout

import (
	"math"

	"github.com/sells-group/layout-cli/internal/model"
	"github.com/sells-group/layout-cli/internal/planar"
)

// NormalizeBoundary drops a repeated closing vertex and consecutive
// duplicates, and rejects boundaries that are not simple polygons.
func NormalizeBoundary(b model.Boundary) (model.Boundary, error) {
	for _, pt := range b {
		if math.IsNaN(pt.X) || math.IsNaN(pt.Y) || math.IsInf(pt.X, 0) || math.IsInf(pt.Y, 0) {
			return nil, model.NewConfigurationError("boundary", "coordinates must be finite")
		}
	}
	ring := planar.Ring(planar.LineString(b).Dedupe()).Open()
	if len(ring) < 3 {
		return nil, model.NewConfigurationError("boundary", "at least 3 distinct vertices are required")
	}
	if ring.Area() <= planar.AreaEpsilon {
		return nil, model.NewConfigurationError("boundary", "boundary encloses no area")
	}
	if ring.SelfIntersects() {
		return nil, model.NewConfigurationError("boundary", "boundary is self-intersecting")
	}
	return model.Boundary(ring), nil
}

// ValidateParameters checks widths, areas and enums.
func ValidateParameters(p model.LayoutParameters) error {
	positive := []struct {
		field string
		v     float64
	}{
		{"main_road_width", p.MainRoadWidth},
		{"secondary_road_width", p.SecondaryRoadWidth},
		{"access_road_width", p.AccessRoadWidth},
		{"min_parcel_area", p.MinParcelArea},
		{"max_parcel_area", p.MaxParcelArea},
		{"min_parcel_width", p.MinParcelWidth},
		{"min_parcel_depth", p.MinParcelDepth},
		{"target_parcel_ratio", p.TargetParcelRatio},
		{"max_block_length", p.MaxBlockLength},
		{"max_block_width", p.MaxBlockWidth},
	}
	for _, f := range positive {
		if !(f.v > 0) || math.IsInf(f.v, 0) {
			return model.NewConfigurationError(f.field, "must be positive")
		}
	}
	nonNegative := []struct {
		field string
		v     float64
	}{
		{"front_setback", p.FrontSetback},
		{"side_setback", p.SideSetback},
		{"rear_setback", p.RearSetback},
		{"corner_radius", p.CornerRadius},
		{"plot_width", p.PlotWidth},
		{"plot_depth", p.PlotDepth},
	}
	for _, f := range nonNegative {
		if !(f.v >= 0) || math.IsInf(f.v, 0) {
			return model.NewConfigurationError(f.field, "must not be negative")
		}
	}
	if p.MinParcelArea > p.MaxParcelArea {
		return model.NewConfigurationError("min_parcel_area", "exceeds max_parcel_area")
	}
	if !(p.GreenSpacePercentage >= 0 && p.GreenSpacePercentage <= 100) {
		return model.NewConfigurationError("green_space_percentage", "must be between 0 and 100")
	}
	if !p.SubdivisionType.Valid() {
		return model.NewConfigurationError("subdivision_type", "unknown pattern "+string(p.SubdivisionType))
	}
	if !p.RemainderStrategy.Valid() {
		return model.NewConfigurationError("remainder_strategy", "unknown strategy "+string(p.RemainderStrategy))
	}
	return nil
}

// Validate normalizes the boundary and checks the parameters. Every error
// it returns is a *model.ConfigurationError.
func Validate(b model.Boundary, p model.LayoutParameters) (model.Boundary, error) {
	nb, err := NormalizeBoundary(b)
	if err != nil {
		return nil, err
	}
	if err := ValidateParameters(p); err != nil {
		return nil, err
	}
	return nb, nil
}
