package model

import (
	"sync"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigurationError(t *testing.T) {
	err := NewConfigurationError("main_road_width", "must be positive")
	assert.Equal(t, "configuration: main_road_width: must be positive", err.Error())
	assert.Equal(t, "configuration: bad plan", (&ConfigurationError{Reason: "bad plan"}).Error())

	wrapped := eris.Wrap(err, "layout: validate")
	assert.True(t, IsConfigurationError(wrapped))
	assert.False(t, IsConfigurationError(eris.New("boom")))
	assert.False(t, IsConfigurationError(nil))
}

func TestDiagnostics_NilSafe(t *testing.T) {
	var d *Diagnostics
	d.Report(StageParcels, "P0001", "x")
	assert.Zero(t, d.Count(StageParcels))
	assert.Nil(t, d.Items())
}

func TestDiagnostics_ConcurrentReportAndMerge(t *testing.T) {
	var d Diagnostics
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.Report(StageSubdivide, "block 1", "multi-part fallback")
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, d.Count(StageSubdivide))

	var other Diagnostics
	other.Report(StageGreenSpace, "block 2", "reserve missed the block")
	other.Report(StageParcels, "P0003", "setback removes the whole parcel")

	var all Diagnostics
	all.Merge(&other)
	items := all.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "green_space: block 2: reserve missed the block", items[0].Error())
	assert.Equal(t, "P0003", items[1].Ref)
	assert.Equal(t, 1, all.Count(StageParcels))
}
