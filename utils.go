package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/9seconds/iplooker/lookerlib"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

func makeRootContext() (context.Context, context.CancelFunc) {
	rootCtx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)

	go func() {
		for range sigChan {
			cancel()
		}
	}()

	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	return rootCtx, cancel
}

func makeHTTPClient(conf *config) lookerlib.HTTPClient {
	jar, err := cookiejar.New(nil)
	if err != nil {
		panic(err)
	}

	httpClient := &http.Client{
		Jar: jar,
	}

	return lookerlib.NewHTTPClient(httpClient,
		"iplooker/"+version,
		conf.GetRateLimitInterval(),
		conf.GetRateLimitBurst())
}

func makeLooker(conf *config, client lookerlib.HTTPClient, log lookerlib.Logger) (*lookerlib.Looker, error) {
	querier := lookerlib.NewUpstreamClient(client, log, conf.GetUpstreamOpts())

	return lookerlib.NewLooker(querier, conf.GetSources(), log, conf.GetWorkerPoolSize())
}

func logLevel(debug, quiet bool) zerolog.Level {
	switch {
	case debug:
		return zerolog.DebugLevel
	case quiet:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func useColors(f *os.File, noColor bool) bool {
	if noColor {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func promptIP(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, "Enter an IP address to look up: ") // nolint: errcheck

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("cannot read IP address: %w", err)
	}

	return strings.TrimSpace(line), nil
}
