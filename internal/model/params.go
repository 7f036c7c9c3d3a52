package model

// SubdivisionType selects the road network pattern.
type SubdivisionType string

const (
	SubdivisionGrid    SubdivisionType = "grid"
	SubdivisionRadial  SubdivisionType = "radial"
	SubdivisionOrganic SubdivisionType = "organic"
	SubdivisionMixed   SubdivisionType = "mixed"
)

// Valid reports whether t is a known pattern.
func (t SubdivisionType) Valid() bool {
	switch t {
	case SubdivisionGrid, SubdivisionRadial, SubdivisionOrganic, SubdivisionMixed:
		return true
	}
	return false
}

// RemainderStrategy decides what happens to space left over when a block is
// not an exact multiple of the plot size.
type RemainderStrategy string

const (
	RemainderSeparate   RemainderStrategy = "separate"
	RemainderAddToLast  RemainderStrategy = "add_to_last"
	RemainderDistribute RemainderStrategy = "distribute"
)

// Valid reports whether s is a known strategy.
func (s RemainderStrategy) Valid() bool {
	switch s {
	case RemainderSeparate, RemainderAddToLast, RemainderDistribute:
		return true
	}
	return false
}

// LayoutParameters configures every stage of the subdivision engine.
// Lengths are in boundary units (metres), areas in square units.
type LayoutParameters struct {
	MainRoadWidth      float64 `json:"main_road_width" yaml:"main_road_width" mapstructure:"main_road_width"`
	SecondaryRoadWidth float64 `json:"secondary_road_width" yaml:"secondary_road_width" mapstructure:"secondary_road_width"`
	AccessRoadWidth    float64 `json:"access_road_width" yaml:"access_road_width" mapstructure:"access_road_width"`

	MinParcelArea     float64 `json:"min_parcel_area" yaml:"min_parcel_area" mapstructure:"min_parcel_area"`
	MaxParcelArea     float64 `json:"max_parcel_area" yaml:"max_parcel_area" mapstructure:"max_parcel_area"`
	MinParcelWidth    float64 `json:"min_parcel_width" yaml:"min_parcel_width" mapstructure:"min_parcel_width"`
	MinParcelDepth    float64 `json:"min_parcel_depth" yaml:"min_parcel_depth" mapstructure:"min_parcel_depth"`
	TargetParcelRatio float64 `json:"target_parcel_ratio" yaml:"target_parcel_ratio" mapstructure:"target_parcel_ratio"`

	SubdivisionType      SubdivisionType `json:"subdivision_type" yaml:"subdivision_type" mapstructure:"subdivision_type"`
	IncludeGreenSpaces   bool            `json:"include_green_spaces" yaml:"include_green_spaces" mapstructure:"include_green_spaces"`
	GreenSpacePercentage float64         `json:"green_space_percentage" yaml:"green_space_percentage" mapstructure:"green_space_percentage"`

	FrontSetback float64 `json:"front_setback" yaml:"front_setback" mapstructure:"front_setback"`
	SideSetback  float64 `json:"side_setback" yaml:"side_setback" mapstructure:"side_setback"`
	RearSetback  float64 `json:"rear_setback" yaml:"rear_setback" mapstructure:"rear_setback"`

	CornerRadius float64 `json:"corner_radius" yaml:"corner_radius" mapstructure:"corner_radius"`

	MaxBlockLength float64 `json:"max_block_length" yaml:"max_block_length" mapstructure:"max_block_length"`
	MaxBlockWidth  float64 `json:"max_block_width" yaml:"max_block_width" mapstructure:"max_block_width"`

	// PlotWidth and PlotDepth override the derived plot size when positive.
	PlotWidth         float64           `json:"plot_width,omitempty" yaml:"plot_width,omitempty" mapstructure:"plot_width"`
	PlotDepth         float64           `json:"plot_depth,omitempty" yaml:"plot_depth,omitempty" mapstructure:"plot_depth"`
	RemainderStrategy RemainderStrategy `json:"remainder_strategy" yaml:"remainder_strategy" mapstructure:"remainder_strategy"`
}

// DefaultParameters returns the parameters used when a plan leaves them out.
func DefaultParameters() LayoutParameters {
	return LayoutParameters{
		MainRoadWidth:        15,
		SecondaryRoadWidth:   12,
		AccessRoadWidth:      9,
		MinParcelArea:        450,
		MaxParcelArea:        1000,
		MinParcelWidth:       15,
		MinParcelDepth:       25,
		TargetParcelRatio:    1.5,
		SubdivisionType:      SubdivisionGrid,
		IncludeGreenSpaces:   true,
		GreenSpacePercentage: 10,
		FrontSetback:         6,
		SideSetback:          3,
		RearSetback:          3,
		CornerRadius:         5,
		MaxBlockLength:       200,
		MaxBlockWidth:        100,
		RemainderStrategy:    RemainderAddToLast,
	}
}

// Width returns the declared width for a road class.
func (p LayoutParameters) Width(c RoadClass) float64 {
	switch c {
	case RoadMain:
		return p.MainRoadWidth
	case RoadSecondary:
		return p.SecondaryRoadWidth
	default:
		return p.AccessRoadWidth
	}
}
