package export

import (
	"io"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/layout-cli/internal/drawing"
	"github.com/sells-group/layout-cli/internal/model"
)

// Sheet names in the parcel schedule.
const (
	SheetParcels     = "Parcels"
	SheetSummary     = "Summary"
	SheetDiagnostics = "Diagnostics"
)

const areaFormat = "#,##0.00"

var scheduleHeader = []string{"ID", "Block", "Area (m²)", "Width (m)", "Depth (m)", "Frontage (m)", "Buildable (m²)", "Fallback"}

// Schedule builds the parcel schedule workbook.
func Schedule(r *model.Result, f drawing.Formatter) (*xlsx.File, error) {
	file := xlsx.NewFile()

	parcels, err := file.AddSheet(SheetParcels)
	if err != nil {
		return nil, eris.Wrap(err, "export: add parcel sheet")
	}
	header := parcels.AddRow()
	for _, h := range scheduleHeader {
		header.AddCell().SetString(h)
	}
	for _, p := range r.Parcels {
		row := parcels.AddRow()
		row.AddCell().SetString(p.ID)
		row.AddCell().SetInt(p.Block)
		for _, v := range []float64{p.Area, p.Width, p.Depth, p.FrontageLength(), p.BuildableSize()} {
			row.AddCell().SetFloatWithFormat(v, areaFormat)
		}
		row.AddCell().SetBool(p.Fallback)
	}

	summary, err := file.AddSheet(SheetSummary)
	if err != nil {
		return nil, eris.Wrap(err, "export: add summary sheet")
	}
	s := r.Stats
	for _, kv := range [][2]string{
		{"Run", r.RunID},
		{"Pattern", string(r.Parameters.SubdivisionType)},
		{"Total area", f.Area(s.TotalArea)},
		{"Road area", f.Area(s.RoadArea)},
		{"Block area", f.Area(s.BlockArea)},
		{"Green area", f.Area(s.GreenArea)},
		{"Parcel area", f.Area(s.ParcelArea)},
		{"Roads", f.Count(s.Roads)},
		{"Blocks", f.Count(s.Blocks)},
		{"Parcels", f.Count(s.Parcels)},
		{"Fallback parcels", f.Count(s.FallbackPlots)},
		{"Road percentage", f.Percent(s.RoadPercentage)},
		{"Efficiency", f.Percent(s.Efficiency)},
	} {
		row := summary.AddRow()
		row.AddCell().SetString(kv[0])
		row.AddCell().SetString(kv[1])
	}

	if len(r.Diagnostics) > 0 {
		diag, err := file.AddSheet(SheetDiagnostics)
		if err != nil {
			return nil, eris.Wrap(err, "export: add diagnostics sheet")
		}
		for _, d := range r.Diagnostics {
			row := diag.AddRow()
			row.AddCell().SetString(d.Stage)
			row.AddCell().SetString(d.Ref)
			row.AddCell().SetString(d.Reason)
		}
	}
	return file, nil
}

// WriteSchedule writes the parcel schedule workbook to w.
func WriteSchedule(w io.Writer, r *model.Result, f drawing.Formatter) error {
	file, err := Schedule(r, f)
	if err != nil {
		return err
	}
	if err := file.Write(w); err != nil {
		return eris.Wrap(err, "export: write xlsx")
	}
	return nil
}
