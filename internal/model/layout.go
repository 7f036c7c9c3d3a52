package model

import "github.com/sells-group/layout-cli/internal/planar"

// Boundary is the ordered, implicitly closed site outline.
type Boundary []planar.Point

// Ring returns the boundary as an open ring.
func (b Boundary) Ring() planar.Ring { return planar.Ring(b).Open() }

// Polygon returns the boundary as a single-part area.
func (b Boundary) Polygon() planar.MultiPolygon {
	return planar.MultiPolygon{{Exterior: b.Ring().Oriented(true)}}
}

// Block is land left between road footprints, and after allocation, outside
// green space. It may consist of several disjoint parts.
type Block struct {
	Index int                 `json:"index"`
	Shape planar.MultiPolygon `json:"shape"`
}

// Area returns the block area.
func (b Block) Area() float64 { return b.Shape.Area() }

// GreenSpace is a reserve carved out of a block.
type GreenSpace struct {
	Block int                 `json:"block"`
	Shape planar.MultiPolygon `json:"shape"`
	Area  float64             `json:"area"`
}

// Parcel is a numbered plot produced by tiling a block.
type Parcel struct {
	ID             string         `json:"id"`
	Block          int            `json:"block"`
	Vertices       planar.Ring    `json:"vertices"`
	Shape          planar.Polygon `json:"-"`
	Area           float64        `json:"area"`
	Width          float64        `json:"width"`
	Depth          float64        `json:"depth"`
	Centroid       planar.Point   `json:"centroid"`
	StreetFrontage []planar.Point `json:"street_frontage"`
	BuildableArea  planar.Ring    `json:"buildable_area"`
	// Fallback marks a block too small to tile that was emitted whole.
	Fallback bool `json:"fallback,omitempty"`
}

// FrontageLength returns the length of the frontage polyline.
func (p Parcel) FrontageLength() float64 {
	return planar.LineString(p.StreetFrontage).Length()
}

// BuildableSize returns the buildable ring area, or 0 when there is none.
func (p Parcel) BuildableSize() float64 { return p.BuildableArea.Area() }

// Stats summarises a layout.
type Stats struct {
	TotalArea      float64 `json:"total_area"`
	RoadArea       float64 `json:"road_area"`
	BlockArea      float64 `json:"block_area"`
	GreenArea      float64 `json:"green_area"`
	ParcelArea     float64 `json:"parcel_area"`
	Roads          int     `json:"roads"`
	Blocks         int     `json:"blocks"`
	Parcels        int     `json:"parcels"`
	FallbackPlots  int     `json:"fallback_parcels"`
	RoadPercentage float64 `json:"road_percentage"`
	Efficiency     float64 `json:"efficiency"`
}

// Result is the output of one engine run.
type Result struct {
	RunID       string                     `json:"run_id"`
	Boundary    Boundary                   `json:"boundary"`
	Parameters  LayoutParameters           `json:"parameters"`
	Roads       []RoadSegment              `json:"roads"`
	Footprint   planar.MultiPolygon        `json:"-"`
	Blocks      []Block                    `json:"blocks"`
	GreenSpaces []GreenSpace               `json:"green_spaces"`
	Parcels     []Parcel                   `json:"parcels"`
	Stats       Stats                      `json:"stats"`
	Diagnostics []*DegenerateGeometryError `json:"diagnostics,omitempty"`
}
