// Command postcurrents posts today's NOAA current predictions for a station
// to Slack. It is meant to run from cron or by hand.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spencer-p/nykpcurrents/pkg/config"
	"github.com/spencer-p/nykpcurrents/pkg/currents"
	"github.com/spencer-p/nykpcurrents/pkg/history"
	"github.com/spencer-p/nykpcurrents/pkg/logging"
	"github.com/spencer-p/nykpcurrents/pkg/metrics"
	"github.com/spencer-p/nykpcurrents/pkg/noaa"
	"github.com/spencer-p/nykpcurrents/pkg/notify"
)

type options struct {
	date          string
	station       string
	timeRange     string
	debug         bool
	dryRun        bool
	skipUnchanged bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("postcurrents", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.date, "date", "", "first day of predictions, e.g. 20240101 (default today)")
	fs.StringVar(&opts.station, "station", "", "NOAA current station id with bin, e.g. NYH1927_13")
	fs.StringVar(&opts.timeRange, "range", "", "hours of predictions (default 24)")
	fs.BoolVar(&opts.debug, "debug", false, "log at debug level and print full error traces")
	fs.BoolVar(&opts.dryRun, "dry-run", false, "print the message instead of posting it")
	fs.BoolVar(&opts.skipUnchanged, "skip-unchanged", false, "do not repost a message identical to the last one (needs DATABASE_URL)")
	err := fs.Parse(args)
	return opts, err
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return 1
	}

	level := cfg.LogLevel
	if opts.debug {
		level = "debug"
	}
	logger := logging.New(level, cfg.LogFormat, stderr)
	logger.Debug("starting", "station", opts.station, "date", opts.date, "range", opts.timeRange, "dry_run", opts.dryRun)

	m := metrics.New()
	n, cleanup, err := newNotifier(cfg, opts, m, stdout, logger)
	if err != nil {
		return fail(logger, opts, err)
	}
	defer cleanup()

	var station *currents.Station
	if opts.station != "" {
		s := currents.StationByID(opts.station)
		station = &s
	}

	res, err := n.PostCurrents(ctx, station, opts.date, opts.timeRange)

	if cfg.PushgatewayURL != "" {
		if perr := m.Push(ctx, cfg.PushgatewayURL, cfg.PushJob); perr != nil {
			logger.Warn("failed to push metrics", "error", perr)
		}
	}

	if err != nil {
		return fail(logger, opts, err)
	}
	logger.Info("done",
		"skipped", res.Skipped,
		"destination", res.Destination,
		"channel", res.Channel,
		"ts", res.Timestamp)
	return 0
}

// newNotifier wires the notifier's collaborators from config. cleanup closes
// whatever was opened.
func newNotifier(cfg *config.Config, opts options, m *metrics.Metrics, stdout io.Writer, logger *slog.Logger) (*currents.Notifier, func(), error) {
	cleanup := func() {}

	httpClient := m.InstrumentClient(&http.Client{Timeout: cfg.HTTPTimeout})

	var poster notify.Poster
	if opts.dryRun {
		poster = notify.Writer{W: stdout}
	} else {
		dest, err := cfg.Destination()
		if err != nil {
			return nil, cleanup, err
		}
		switch dest {
		case "slack-webhook":
			poster = notify.NewWebhook(cfg.SlackWebhookURL, httpClient)
		case "slack-bot":
			poster = notify.NewBot(cfg.SlackToken, cfg.SlackChannel, cfg.SlackAPIURL, httpClient)
		}
	}

	n := &currents.Notifier{
		Fetcher:       noaa.NewClient(cfg.NOAAURL, cfg.NOAAApplication, httpClient),
		Poster:        poster,
		Logger:        logger,
		Metrics:       m,
		SkipUnchanged: opts.skipUnchanged,
		Daylight:      cfg.Daylight,
	}

	if cfg.DatabaseURL != "" && !opts.dryRun {
		store, err := history.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, cleanup, err
		}
		n.History = store
		cleanup = func() {
			if err := store.Close(); err != nil {
				logger.Warn("failed to close history database", "error", err)
			}
		}
	} else if opts.skipUnchanged {
		logger.Warn("--skip-unchanged has no effect without DATABASE_URL")
	}

	return n, cleanup, nil
}

func fail(logger *slog.Logger, opts options, err error) int {
	logger.Error("failed to post current predictions", "error", err)
	if opts.debug {
		logger.Debug("failure detail", "trace", fmt.Sprintf("%+v", err))
	}
	return 1
}
