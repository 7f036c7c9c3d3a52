package layout

import "github.com/sells-group/layout-cli/internal/model"

// ComputeStats summarises a finished result.
func ComputeStats(r *model.Result) model.Stats {
	s := model.Stats{
		TotalArea: r.Boundary.Polygon().Area(),
		RoadArea:  r.Footprint.Area(),
		Roads:     len(r.Roads),
		Blocks:    len(r.Blocks),
		Parcels:   len(r.Parcels),
	}
	for _, b := range r.Blocks {
		s.BlockArea += b.Area()
	}
	for _, g := range r.GreenSpaces {
		s.GreenArea += g.Area
	}
	for _, p := range r.Parcels {
		s.ParcelArea += p.Area
		if p.Fallback {
			s.FallbackPlots++
		}
	}
	if s.TotalArea > 0 {
		s.RoadPercentage = s.RoadArea / s.TotalArea * 100
		s.Efficiency = s.ParcelArea / s.TotalArea * 100
	}
	return s
}
