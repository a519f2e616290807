package harvest

import (
	"encoding/json"
	"io"
	"time"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/sells-group/herb-harvest/internal/model"
)

// ExportGeoJSON writes harvests as a FeatureCollection of WGS84 points.
// Photo payloads are left out; data URIs can run to megabytes.
func ExportGeoJSON(w io.Writer, harvests []model.Harvest) error {
	fc := &geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(harvests))}
	for _, h := range harvests {
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:       h.ID,
			Geometry: geom.NewPointFlat(geom.XY, []float64{h.GPS.Lon, h.GPS.Lat}).SetSRID(4326),
			Properties: map[string]any{
				"herbName": h.HerbName,
				"quantity": h.Quantity,
				"unit":     h.Unit,
				"date":     h.Date.UTC().Format(time.RFC3339),
			},
		})
	}

	data, err := json.Marshal(fc)
	if err != nil {
		return eris.Wrap(err, "harvest: encode geojson")
	}
	_, err = w.Write(data)
	return eris.Wrap(err, "harvest: write geojson")
}

var xlsxHeader = []string{"ID", "Herb", "Quantity", "Unit", "Date", "Latitude", "Longitude", "Photo hint"}

// ExportXLSX writes harvests to a single-sheet workbook.
func ExportXLSX(w io.Writer, harvests []model.Harvest) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Harvests")
	if err != nil {
		return eris.Wrap(err, "harvest: add sheet")
	}

	header := sheet.AddRow()
	for _, title := range xlsxHeader {
		header.AddCell().SetString(title)
	}

	for _, h := range harvests {
		row := sheet.AddRow()
		row.AddCell().SetString(h.ID)
		row.AddCell().SetString(h.HerbName)
		row.AddCell().SetFloat(h.Quantity)
		row.AddCell().SetString(h.Unit)
		row.AddCell().SetDateTime(h.Date.UTC())
		row.AddCell().SetFloat(h.GPS.Lat)
		row.AddCell().SetFloat(h.GPS.Lon)
		row.AddCell().SetString(h.PhotoHint)
	}

	return eris.Wrap(f.Write(w), "harvest: write xlsx")
}
