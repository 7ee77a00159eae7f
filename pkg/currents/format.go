package currents

import (
	"strconv"
	"strings"

	"github.com/spencer-p/nykpcurrents/pkg/noaa"
	"github.com/spencer-p/nykpcurrents/pkg/table"
)

// Canonical column names, after renaming NOAA's.
const (
	colTime  = "time"
	colStage = "stage"
	colKnots = "knots"
)

var columnRenames = map[string]string{
	noaa.ColumnTime:  colTime,
	noaa.ColumnEvent: colStage,
	noaa.ColumnSpeed: colKnots,
}

// Prediction is one predicted current event.
type Prediction struct {
	Time  string
	Stage string
	// Knots is the speed as the provider wrote it; it may be empty.
	Knots string
}

// PredictionsFromTable reads predictions out of a NOAA table. It fails with a
// *table.MissingColumnError if one of the three expected columns is absent.
func PredictionsFromTable(t table.Table) ([]Prediction, error) {
	t, err := t.Rename(columnRenames)
	if err != nil {
		return nil, err
	}

	ti, si, ki := t.Index(colTime), t.Index(colStage), t.Index(colKnots)
	preds := make([]Prediction, len(t.Rows))
	for r := range t.Rows {
		preds[r] = Prediction{
			Time:  t.Value(r, ti),
			Stage: t.Value(r, si),
			Knots: t.Value(r, ki),
		}
	}
	return preds, nil
}

// FormatTable renders a NOAA table as a report, one line per row.
func FormatTable(t table.Table) (string, error) {
	preds, err := PredictionsFromTable(t)
	if err != nil {
		return "", err
	}
	return FormatPredictions(preds), nil
}

// FormatPredictions renders predictions one per line, in order. Each line is
// the time, two spaces and the stage, followed by the speed in mph when the
// speed is known.
func FormatPredictions(preds []Prediction) string {
	var b strings.Builder
	for _, p := range preds {
		b.WriteString(p.Time)
		b.WriteString("  ")
		b.WriteString(p.Stage)
		if mph, ok := KnotsToMPH(p.Knots); ok {
			b.WriteString(" (")
			b.WriteString(formatMPH(mph))
			b.WriteString(" mph)")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// formatMPH shows one decimal place, rounding exact halves to even.
func formatMPH(mph float64) string {
	return strconv.FormatFloat(mph, 'f', 1, 64)
}
