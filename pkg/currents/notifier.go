package currents

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/spencer-p/nykpcurrents/pkg/history"
	"github.com/spencer-p/nykpcurrents/pkg/metrics"
	"github.com/spencer-p/nykpcurrents/pkg/noaa"
	"github.com/spencer-p/nykpcurrents/pkg/notify"
	"github.com/spencer-p/nykpcurrents/pkg/sunset"
)

// Fetcher retrieves current predictions; *noaa.Client is one.
type Fetcher interface {
	GetCurrentPredictions(ctx context.Context, q *noaa.CurrentsQuery) (*noaa.CurrentsResult, error)
}

// History remembers what was posted; *history.Store is one.
type History interface {
	Latest(ctx context.Context, stationID string) (history.Post, error)
	Record(ctx context.Context, p history.Post) error
}

// Notifier fetches, formats and posts current predictions. Fetcher and Poster
// are required; the rest is optional.
type Notifier struct {
	Fetcher Fetcher
	Poster  notify.Poster

	Logger  *slog.Logger
	Metrics *metrics.Metrics
	Clock   clockwork.Clock

	// History records every post. With SkipUnchanged, a report identical
	// to the station's last post is not sent again.
	History       History
	SkipUnchanged bool

	// Daylight adds sunrise and sunset to the report for stations with a
	// Place.
	Daylight bool
}

// PostCurrents posts the predictions for station, or DefaultStation when
// station is nil. date and timePeriod select the predictions and are passed
// to the Fetcher as is. Fetch, format and post errors are returned unchanged.
func (n *Notifier) PostCurrents(ctx context.Context, station *Station, date, timePeriod string) (notify.Result, error) {
	if station == nil {
		station = &DefaultStation
	}
	log := n.logger().With("station", station.ID)

	start := n.clock().Now()
	preds, err := n.Fetcher.GetCurrentPredictions(ctx, &noaa.CurrentsQuery{
		Station: station.ID,
		Date:    date,
		Range:   timePeriod,
	})
	if err != nil {
		return notify.Result{}, err
	}
	n.Metrics.ObserveFetch(n.clock().Since(start))

	report, err := FormatTable(preds.Table)
	if err != nil {
		return notify.Result{}, err
	}
	n.Metrics.SetRowsFormatted(len(preds.Table.Rows))
	log.Debug("formatted predictions", "rows", len(preds.Table.Rows), "link", preds.Link)

	if n.Daylight && station.Place != nil {
		day := preds.Begin
		if day.IsZero() {
			day = n.clock().Now()
		}
		report += sunset.Line(sunset.Daylight(day, *station.Place)) + "\n"
	}

	text := Message(*station, preds.Link, report)

	if n.unchanged(ctx, log, station.ID, text) {
		log.Info("predictions unchanged since last post, not posting")
		n.Metrics.ObservePost("skipped", n.clock().Now())
		return notify.Result{Skipped: true}, nil
	}

	res, err := n.Poster.Post(ctx, text)
	if err != nil {
		n.Metrics.ObservePost("error", n.clock().Now())
		return notify.Result{}, err
	}
	n.Metrics.ObservePost("sent", n.clock().Now())
	log.Info("posted current predictions", "destination", res.Destination)

	n.record(ctx, log, station, preds.Link, text, res)
	return res, nil
}

// Message composes the post: a bold title, the link to NOAA, a blank line
// and the report.
func Message(station Station, link, report string) string {
	return fmt.Sprintf("*New NOAA current predictions at %s*\n%s\n\n%s", station.Name, link, report)
}

func (n *Notifier) unchanged(ctx context.Context, log *slog.Logger, stationID, text string) bool {
	if n.History == nil || !n.SkipUnchanged {
		return false
	}
	last, err := n.History.Latest(ctx, stationID)
	if errors.Is(err, history.ErrNotFound) {
		return false
	}
	if err != nil {
		log.Warn("could not read post history", "error", err)
		return false
	}
	return last.Text == text
}

// record saves a delivered post. The message is already out, so a failure
// here is only logged.
func (n *Notifier) record(ctx context.Context, log *slog.Logger, station *Station, link, text string, res notify.Result) {
	if n.History == nil {
		return
	}
	err := n.History.Record(ctx, history.Post{
		StationID:   station.ID,
		StationName: station.Name,
		Link:        link,
		Text:        text,
		Destination: res.Destination,
		PostedAt:    n.clock().Now(),
	})
	if err != nil {
		log.Error("failed to record post", "error", err)
	}
}

func (n *Notifier) logger() *slog.Logger {
	if n.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return n.Logger
}

func (n *Notifier) clock() clockwork.Clock {
	if n.Clock == nil {
		return clockwork.NewRealClock()
	}
	return n.Clock
}
