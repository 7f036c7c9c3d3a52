package model

import "github.com/sells-group/layout-cli/internal/planar"

// RoadClass is the hierarchy level of a road.
type RoadClass string

const (
	RoadMain      RoadClass = "main"
	RoadSecondary RoadClass = "secondary"
	RoadAccess    RoadClass = "access"
)

// RoadKind records which generator rule produced a segment. Names are
// derived from kind and position once generation is complete.
type RoadKind string

const (
	KindStreet    RoadKind = "street"
	KindAvenue    RoadKind = "avenue"
	KindRadial    RoadKind = "radial"
	KindRing      RoadKind = "ring"
	KindDrive     RoadKind = "drive"
	KindLane      RoadKind = "lane"
	KindConnector RoadKind = "connector"
)

// RoadSegment is one named, clipped piece of road centerline.
type RoadSegment struct {
	Class      RoadClass         `json:"classification"`
	Kind       RoadKind          `json:"kind"`
	Group      int               `json:"group,omitempty"` // ring number for KindRing, 1-based
	Centerline planar.LineString `json:"centerline"`
	Width      float64           `json:"width"`
	Name       string            `json:"name"`
}
