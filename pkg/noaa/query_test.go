package noaa

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResponse = `{"current_predictions": {"units": "knots", "cp": [
 {"Type":"slack","meanFloodDir":9,"Bin":"13","meanEbbDir":190,"Time":"2024-01-01 02:01","Velocity_Major":0.04},
 {"Type":"flood","meanFloodDir":9,"Bin":"13","meanEbbDir":190,"Time":"2024-01-01 05:00","Velocity_Major":2.01},
 {"Type":"ebb","meanFloodDir":9,"Bin":"13","meanEbbDir":190,"Time":"2024-01-01 11:14","Velocity_Major":-1.53}
]}}`

func testClient(baseURL string) *Client {
	clock := clockwork.NewFakeClockAt(time.Date(2024, time.January, 1, 9, 30, 0, 0, time.Local))
	return NewClient(baseURL, "nykp_test", &http.Client{Timeout: 5 * time.Second}).WithClock(clock)
}

func TestQueryURL(t *testing.T) {
	table := []struct {
		name string
		in   CurrentsQuery
		want string
	}{{
		name: "defaults to today",
		in:   CurrentsQuery{Station: "NYH1927_13"},
		want: "application=nykp_test&begin_date=20240101&bin=13&format=json&interval=MAX_SLACK&product=currents_predictions&range=24&station=NYH1927&time_zone=lst_ldt&units=english",
	}, {
		name: "date and range passed through",
		in:   CurrentsQuery{Station: "NYH1927_13", Date: "20240315", Range: "48"},
		want: "application=nykp_test&begin_date=20240315&bin=13&format=json&interval=MAX_SLACK&product=currents_predictions&range=48&station=NYH1927&time_zone=lst_ldt&units=english",
	}, {
		name: "no bin",
		in:   CurrentsQuery{Station: "ACT3876"},
		want: "application=nykp_test&begin_date=20240101&format=json&interval=MAX_SLACK&product=currents_predictions&range=24&station=ACT3876&time_zone=lst_ldt&units=english",
	}}

	c := testClient(NOAA_URL)
	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			addr, err := c.url(&tc.in)
			require.NoError(t, err)
			assert.Equal(t, NOAA_URL+"?"+tc.want, addr.String())
		})
	}
}

func TestLink(t *testing.T) {
	day := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.Local)
	assert.Equal(t, PREDICTIONS_URL+"?id=NYH1927_13&d=2024-03-15", Link("NYH1927_13", day))
	assert.Equal(t, PREDICTIONS_URL+"?id=NYH1927_13", Link("NYH1927_13", time.Time{}))
}

func TestGetCurrentPredictions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "NYH1927", r.URL.Query().Get("station"))
		assert.Equal(t, "13", r.URL.Query().Get("bin"))
		assert.Equal(t, "currents_predictions", r.URL.Query().Get("product"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, sampleResponse)
	}))
	defer srv.Close()

	got, err := testClient(srv.URL).GetCurrentPredictions(context.Background(), &CurrentsQuery{Station: "NYH1927_13"})
	require.NoError(t, err)

	assert.Equal(t, []string{ColumnTime, ColumnEvent, ColumnSpeed}, got.Table.Columns)
	assert.Equal(t, [][]string{
		{"2024-01-01 02:01", "Slack", ""},
		{"2024-01-01 05:00", "Max Flood", "2.01"},
		{"2024-01-01 11:14", "Max Ebb", "-1.53"},
	}, got.Table.Rows)
	assert.Equal(t, PREDICTIONS_URL+"?id=NYH1927_13&d=2024-01-01", got.Link)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local), got.Begin)
}

func TestGetCurrentPredictionsOpaqueDate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "01/15/2024 06:00", r.URL.Query().Get("begin_date"))
		fmt.Fprint(w, sampleResponse)
	}))
	defer srv.Close()

	got, err := testClient(srv.URL).GetCurrentPredictions(context.Background(),
		&CurrentsQuery{Station: "NYH1927_13", Date: "01/15/2024 06:00"})
	require.NoError(t, err)
	assert.True(t, got.Begin.IsZero())
	assert.Equal(t, PREDICTIONS_URL+"?id=NYH1927_13", got.Link)
}

func TestGetCurrentPredictionsErrors(t *testing.T) {
	table := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{{
		name:    "api error body",
		status:  http.StatusOK,
		body:    `{"error": {"message": "No Predictions data was found. Please make sure the station id is correct."}}`,
		wantErr: "No Predictions data was found",
	}, {
		name:    "server error",
		status:  http.StatusBadGateway,
		body:    "upstream down",
		wantErr: "status 502",
	}, {
		name:    "garbage",
		status:  http.StatusOK,
		body:    "<html>",
		wantErr: "decode NOAA response",
	}, {
		name:    "empty object",
		status:  http.StatusOK,
		body:    "{}",
		wantErr: "no current predictions",
	}}

	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				fmt.Fprint(w, tc.body)
			}))
			defer srv.Close()

			_, err := testClient(srv.URL).GetCurrentPredictions(context.Background(), &CurrentsQuery{Station: "BAD_1"})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
