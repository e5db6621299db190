package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/preston-bernstein/iss-spotter/internal/domain/spots"
	"github.com/preston-bernstein/iss-spotter/internal/logging"
	"github.com/preston-bernstein/iss-spotter/internal/poller"
	"github.com/preston-bernstein/iss-spotter/internal/providers"
	"github.com/preston-bernstein/iss-spotter/internal/providers/fixture"
	"github.com/preston-bernstein/iss-spotter/internal/providers/opennotify"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type options struct {
	obs      spots.Observatory
	provider string
	baseURL  string
	timeout  time.Duration
	passes   int
	asJSON   bool
	verbose  bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("spot", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Float64Var(&opts.obs.Latitude, "lat", 0, "observer latitude in degrees (-90..90)")
	fs.Float64Var(&opts.obs.Longitude, "lon", 0, "observer longitude in degrees (-180..180)")
	fs.Float64Var(&opts.obs.Altitude, "alt", 0, "observer altitude in meters (0..10000)")
	fs.IntVar(&opts.obs.MinElevation, "min-elevation", spots.DefaultMinElevation, "minimum elevation in degrees")
	fs.StringVar(&opts.provider, "provider", "opennotify", "upstream: opennotify or fixture")
	fs.StringVar(&opts.baseURL, "base-url", "", "open-notify base URL")
	fs.DurationVar(&opts.timeout, "timeout", 0, "per-request timeout (0 uses the client default, negative disables)")
	fs.IntVar(&opts.passes, "passes", 0, "number of passes to request")
	fs.BoolVar(&opts.asJSON, "json", false, "print the spots as JSON")
	fs.BoolVar(&opts.verbose, "v", false, "log poller activity to stderr")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return opts, opts.obs.Validate()
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(stderr, "spot:", err)
		}
		return 2
	}

	level := "warn"
	if opts.verbose {
		level = "debug"
	}
	logger := logging.NewLogger(logging.Config{Level: level, Output: stderr})

	fetcher, name := buildFetcher(opts, logger)
	list, err := poller.SpotObservatory(ctx, fetcher, opennotify.NewDecoder(), opts.obs,
		poller.WithLogger(logger),
		poller.WithProviderName(name),
	)
	if err != nil {
		fmt.Fprintln(stderr, "spot:", err)
		return 1
	}

	if opts.asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if list == nil {
			list = []spots.Spot{}
		}
		if err := enc.Encode(list); err != nil {
			fmt.Fprintln(stderr, "spot:", err)
			return 1
		}
		return 0
	}

	report(stdout, list, time.Now())
	return 0
}

func buildFetcher(opts options, logger *slog.Logger) (providers.Fetcher, string) {
	if opts.provider == "fixture" {
		return fixture.New(), "fixture"
	}
	return opennotify.NewClient(opennotify.Config{
		BaseURL: opts.baseURL,
		Timeout: opts.timeout,
		Passes:  opts.passes,
		Logger:  logger,
	}), "opennotify"
}

func report(w io.Writer, list []spots.Spot, now time.Time) {
	if s, ok := spots.FindCurrent(list, nil, now); ok {
		fmt.Fprintf(w, "ISS is overhead now, visible for another %s\n", s.End().Sub(now).Round(time.Second))
		return
	}
	if s, ok := spots.FindUpcoming(list, nil, now); ok {
		fmt.Fprintf(w, "next pass %s (in %s), visible for %s\n",
			s.RiseTime.Local().Format(time.RFC1123), s.Until(now).Round(time.Second), s.Duration)
		return
	}
	fmt.Fprintln(w, "no upcoming pass")
}
