package model

import (
	"errors"
	"fmt"
	"sync"
)

// ConfigurationError reports a malformed boundary or parameter set. It is
// raised before generation starts and is never retried.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return "configuration: " + e.Reason
	}
	return fmt.Sprintf("configuration: %s: %s", e.Field, e.Reason)
}

// NewConfigurationError builds a ConfigurationError.
func NewConfigurationError(field, reason string) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: reason}
}

// IsConfigurationError returns true if err (or any error in its chain) is a
// ConfigurationError.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// Stage names used in diagnostics.
const (
	StageRoads      = "roads"
	StageBlocks     = "blocks"
	StageGreenSpace = "green_space"
	StageSubdivide  = "subdivide"
	StageParcels    = "parcels"
)

// DegenerateGeometryError records a boolean operation that collapsed in a
// way that drops visible land. It is reported, never returned.
type DegenerateGeometryError struct {
	Stage  string `json:"stage"`
	Ref    string `json:"ref"`
	Reason string `json:"reason"`
}

func (e *DegenerateGeometryError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Stage, e.Ref, e.Reason)
}

// Diagnostics collects degenerate geometry reports. The zero value is ready
// to use and safe for concurrent use.
type Diagnostics struct {
	mu     sync.Mutex
	items  []*DegenerateGeometryError
	counts map[string]int
}

// Report records a diagnostic.
func (d *Diagnostics) Report(stage, ref, reason string) {
	if d == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.counts == nil {
		d.counts = map[string]int{}
	}
	d.items = append(d.items, &DegenerateGeometryError{Stage: stage, Ref: ref, Reason: reason})
	d.counts[stage]++
}

// Count returns the number of reports for a stage.
func (d *Diagnostics) Count(stage string) int {
	if d == nil {
		return 0
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.counts[stage]
}

// Items returns a copy of every report in the order they were made.
func (d *Diagnostics) Items() []*DegenerateGeometryError {
	if d == nil {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]*DegenerateGeometryError(nil), d.items...)
}

// Merge appends every report from o, preserving o's order.
func (d *Diagnostics) Merge(o *Diagnostics) {
	for _, it := range o.Items() {
		d.Report(it.Stage, it.Ref, it.Reason)
	}
}
