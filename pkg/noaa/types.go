package noaa

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/spencer-p/nykpcurrents/pkg/table"
)

// Column names of NOAA's published current prediction tables.
const (
	ColumnTime  = "Date_Time (LST/LDT)"
	ColumnEvent = "Event"
	ColumnSpeed = "Speed (knots)"
)

// CurrentsQuery selects current predictions for a station; see
// GetCurrentPredictions. Date and Range are passed to NOAA as begin_date and
// range (hours). An empty Date means today.
type CurrentsQuery struct {
	Station string
	Date    string
	Range   string
}

// CurrentsResult is a fetched set of predictions with a link to the source.
type CurrentsResult struct {
	Table table.Table
	Link  string
	// Begin is the first day of the predictions, or zero if the date
	// selector was not a plain date.
	Begin time.Time
}

// NOAAResult is the data type returned by the NOAA API.
type NOAAResult struct {
	CurrentPredictions *CurrentPredictions `json:"current_predictions"`
	Error              *APIError           `json:"error"`
}

// APIError is the body NOAA sends instead of data for a bad query.
type APIError struct {
	Message string `json:"message"`
}

type CurrentPredictions struct {
	Units       string      `json:"units"`
	Predictions Predictions `json:"cp"`
}

// Prediction holds a single current event prediction.
type Prediction struct {
	// Local time of the event, "2006-01-02 15:04"
	Time string `json:"Time"`
	// slack, flood or ebb
	Type string `json:"Type"`
	// Speed along the major axis; ebbs are negative
	Velocity Knots `json:"Velocity_Major"`
}

// Verify the custom types can be unmarshaled
var _ json.Unmarshaler = new(Knots)

// Predictions is a time series of Prediction.
type Predictions []Prediction

// Knots is a current speed. NOAA encodes it as a number, or as a string in
// some products.
type Knots float64

func (k *Knots) UnmarshalJSON(buf []byte) error {
	buf = bytes.TrimSpace(buf)
	if bytes.Equal(buf, []byte("null")) {
		*k = 0
		return nil
	}

	var f float64
	if err := json.Unmarshal(buf, &f); err == nil {
		*k = Knots(f)
		return nil
	}

	var s string
	if err := json.Unmarshal(buf, &s); err != nil {
		return fmt.Errorf("velocity %q not number or string: %w", buf, err)
	}
	parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("velocity %q not a float: %w", s, err)
	}
	*k = Knots(parsed)
	return nil
}

// Event is the label NOAA's predictions page gives the event.
func (p Prediction) Event() string {
	switch strings.ToLower(p.Type) {
	case "slack":
		return "Slack"
	case "flood":
		return "Max Flood"
	case "ebb":
		return "Max Ebb"
	case "":
		return ""
	default:
		r, size := utf8.DecodeRuneInString(p.Type)
		return string(unicode.ToUpper(r)) + strings.ToLower(p.Type[size:])
	}
}

// Speed is the event's velocity in knots as NOAA gives it, ebbs negative.
// Slack water has no speed.
func (p Prediction) Speed() string {
	if strings.EqualFold(p.Type, "slack") {
		return ""
	}
	return strconv.FormatFloat(float64(p.Velocity), 'f', -1, 64)
}

// Table lays the predictions out the way NOAA publishes them.
func (ps Predictions) Table() table.Table {
	rows := make([][]string, len(ps))
	for i, p := range ps {
		rows[i] = []string{p.Time, p.Event(), p.Speed()}
	}
	return table.Table{
		Columns: []string{ColumnTime, ColumnEvent, ColumnSpeed},
		Rows:    rows,
	}
}

func (p Prediction) String() string {
	return fmt.Sprintf("{t: %s, type: %s, v: %f}", p.Time, p.Type, p.Velocity)
}
