package noaa

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
)

const (
	NOAA_URL        = "https://api.tidesandcurrents.noaa.gov/api/prod/datagetter"
	PREDICTIONS_URL = "https://tidesandcurrents.noaa.gov/noaacurrents/predictions.html"
	TIME_FMT        = "20060102"

	defaultRange = "24" // hours
)

// dateFormats are the begin_date forms NOAA accepts that we also understand
// well enough to link to a day.
var dateFormats = []string{TIME_FMT, "2006-01-02", "01/02/2006"}

// Client fetches current predictions from the NOAA CO-OPS data API.
type Client struct {
	baseURL     string
	application string
	httpClient  *http.Client
	clock       clockwork.Clock
}

// NewClient creates a client for the datagetter at baseURL. The application
// name is sent with every request so NOAA can identify the caller.
func NewClient(baseURL, application string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = NOAA_URL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:     baseURL,
		application: application,
		httpClient:  httpClient,
		clock:       clockwork.NewRealClock(),
	}
}

// WithClock returns a copy of the client that reads "today" from clock.
func (c *Client) WithClock(clock clockwork.Clock) *Client {
	cc := *c
	cc.clock = clock
	return &cc
}

// GetCurrentPredictions fetches the current events for a query.
func (c *Client) GetCurrentPredictions(ctx context.Context, q *CurrentsQuery) (*CurrentsResult, error) {
	var result NOAAResult

	addr, err := c.url(q)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr.String(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "create NOAA request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch currents for station %q", q.Station)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, errors.Errorf("NOAA API error: status %d: %s", resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, errors.Wrap(err, "decode NOAA response")
	}
	if result.Error != nil {
		return nil, errors.Errorf("NOAA API error for station %q: %s", q.Station, result.Error.Message)
	}
	if result.CurrentPredictions == nil {
		return nil, errors.Errorf("NOAA returned no current predictions for station %q", q.Station)
	}

	begin := c.beginDate(q)
	return &CurrentsResult{
		Table: result.CurrentPredictions.Predictions.Table(),
		Link:  Link(q.Station, begin),
		Begin: begin,
	}, nil
}

// Link returns NOAA's human-readable predictions page for a station, on the
// given day when it is known.
func Link(station string, day time.Time) string {
	link := PREDICTIONS_URL + "?id=" + url.QueryEscape(station)
	if !day.IsZero() {
		link += "&d=" + day.Format("2006-01-02")
	}
	return link
}

func (c *Client) url(q *CurrentsQuery) (*url.URL, error) {
	addr, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, errors.Wrapf(err, "bad NOAA url %q", c.baseURL)
	}
	addr.RawQuery = c.build(q).Encode()
	return addr, nil
}

func (c *Client) build(q *CurrentsQuery) url.Values {
	station, bin := splitStation(q.Station)

	vals := make(url.Values)
	vals.Add("station", station)
	if bin != "" {
		vals.Add("bin", bin)
	}
	vals.Add("begin_date", c.beginSelector(q))
	vals.Add("range", orDefault(q.Range, defaultRange))
	vals.Add("product", "currents_predictions")
	vals.Add("interval", "MAX_SLACK")
	vals.Add("time_zone", "lst_ldt")
	vals.Add("units", "english")
	vals.Add("format", "json")
	if c.application != "" {
		vals.Add("application", c.application)
	}
	return vals
}

// beginSelector is the begin_date sent to NOAA. An empty date means today.
func (c *Client) beginSelector(q *CurrentsQuery) string {
	if q.Date == "" {
		return c.clock.Now().Format(TIME_FMT)
	}
	return q.Date
}

// beginDate is the begin_date as a calendar day, or zero when NOAA was given
// something we cannot read.
func (c *Client) beginDate(q *CurrentsQuery) time.Time {
	sel := c.beginSelector(q)
	for _, layout := range dateFormats {
		if t, err := time.ParseInLocation(layout, sel, time.Local); err == nil {
			return t
		}
	}
	return time.Time{}
}

// splitStation splits "NYH1927_13" into its station and depth bin.
func splitStation(id string) (station, bin string) {
	if i := strings.LastIndex(id, "_"); i > 0 {
		return id[:i], id[i+1:]
	}
	return id, ""
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
