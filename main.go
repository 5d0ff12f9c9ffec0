package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/9seconds/iplooker/lookerlib"
	"github.com/spf13/afero"
	kingpin "gopkg.in/alecthomas/kingpin.v2"
)

const (
	version = "1.0.0"

	formatText = "text"
	formatJSON = "json"

	shutdownTimeout = 10 * time.Second
)

var errNoIP = errors.New("IP address is not provided")

var (
	app = kingpin.New(
		"iplooker",
		"Look up an IP address in many geolocation sources at once")

	debug = app.Flag("debug", "Run in debug mode.").
		Short('d').
		Envar("IPLOOKER_DEBUG").
		Bool()
	quiet = app.Flag("quiet", "Report only errors.").
		Short('q').
		Bool()
	configPath = app.Flag("config", "Path to the config.").
			Short('c').
			Envar("IPLOOKER_CONFIG").
			String()
	outputFormat = app.Flag("format", "Output format.").
			Default(formatText).
			Enum(formatText, formatJSON)
	noColor = app.Flag("no-color", "Disable colored output.").
		Bool()

	lookupCommand = app.Command("lookup", "Look up an IP address.").
			Default()
	lookupIP = lookupCommand.Arg("ip-address", "IP address to look up.").
			String()
	lookupMe = lookupCommand.Flag("me", "Show your external IP address.").
			Short('m').
			Bool()
	lookupSelf = lookupCommand.Flag("lookup", "Look up your external IP address.").
			Short('l').
			Bool()
	lookupSources = lookupCommand.Flag("source", "Query only this source. Can be repeated.").
			Short('s').
			Strings()

	sourcesCommand = app.Command("sources", "List configured sources.")

	serveCommand = app.Command("serve", "Run HTTP API.")
	serveListen  = serveCommand.Flag("listen", "host:port to listen on.").
			Short('b').
			String()
)

func init() {
	app.Version(version)
}

func main() {
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	conf, err := parseConfig(afero.NewOsFs(), *configPath)
	if err != nil {
		app.Fatalf("cannot parse config: %v", err)
	}

	ctx, cancel := makeRootContext()
	defer cancel()

	log := newLogger(os.Stderr, logLevel(*debug, *quiet), !useColors(os.Stderr, *noColor))
	out := printer{
		out:    os.Stdout,
		colors: useColors(os.Stdout, *noColor),
	}
	client := makeHTTPClient(conf)

	switch command {
	case lookupCommand.FullCommand():
		err = runLookup(ctx, conf, client, log, out)
	case sourcesCommand.FullCommand():
		err = runSources(conf, out)
	case serveCommand.FullCommand():
		err = runServe(ctx, conf, client, log)
	}

	if err != nil {
		app.Fatalf("%v", err)
	}
}

func runLookup(ctx context.Context, conf *config, client lookerlib.HTTPClient,
	log lookerlib.Logger, out printer) error {
	ip := *lookupIP

	if ip != "" && (*lookupMe || *lookupSelf) {
		return errors.New("IP address cannot be combined with --me or --lookup")
	}

	if *lookupMe || *lookupSelf {
		external, err := lookerlib.ExternalIP(ctx, client)
		if err != nil {
			return fmt.Errorf("cannot get external IP address: %w", err)
		}

		if !*lookupSelf {
			if *outputFormat == formatJSON {
				return out.JSON(map[string]string{"ip": external})
			}

			out.ExternalIP(external)

			return nil
		}

		ip = external
	}

	if ip == "" {
		value, err := promptIP(os.Stdin, os.Stderr)
		if err != nil {
			return err
		}

		ip = value
	}

	if ip == "" {
		return errNoIP
	}

	looker, err := makeLooker(conf, client, log)
	if err != nil {
		return fmt.Errorf("cannot initialize looker: %w", err)
	}

	defer looker.Shutdown()

	report, err := looker.Lookup(ctx, ip, *lookupSources)
	if err != nil {
		return fmt.Errorf("cannot look up %s: %w", ip, err)
	}

	if *outputFormat == formatJSON {
		return out.JSON(report)
	}

	out.Report(report)

	return nil
}

func runSources(conf *config, out printer) error {
	if *outputFormat == formatJSON {
		return out.JSON(conf.GetSources())
	}

	out.Sources(conf.GetSources())

	return nil
}

func runServe(ctx context.Context, conf *config, client lookerlib.HTTPClient, log lookerlib.Logger) error {
	looker, err := makeLooker(conf, client, log)
	if err != nil {
		return fmt.Errorf("cannot initialize looker: %w", err)
	}

	defer looker.Shutdown()

	handler := lookerlib.NewHTTPHandler(looker)

	if conf.BasicAuth != nil {
		handler = &basicAuthMiddleware{
			handler:  handler,
			user:     []byte(conf.BasicAuth.User),
			password: []byte(conf.BasicAuth.Password),
		}
	}

	listen := *serveListen
	if listen == "" {
		listen = conf.GetListen()
	}

	srv := &http.Server{
		Addr:    listen,
		Handler: handler,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		srv.Shutdown(shutdownCtx) // nolint: errcheck
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server has failed: %w", err)
	}

	return nil
}
