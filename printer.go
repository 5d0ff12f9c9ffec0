package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/9seconds/iplooker/lookerlib"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"

	bullet = "• "
)

type printer struct {
	out    io.Writer
	colors bool
}

func (p printer) colorize(color, text string) string {
	if !p.colors {
		return text
	}

	return color + text + colorReset
}

func (p printer) println(text string) {
	fmt.Fprintln(p.out, text) // nolint: errcheck
}

func (p printer) ExternalIP(ip string) {
	p.println("Your external IP address is: " + p.colorize(colorGreen, ip))
}

func (p printer) Report(report lookerlib.Report) {
	if !report.OK() {
		p.println(p.colorize(colorYellow,
			"No data was returned from any source. The service may be rate limiting or blocking automated access."))
		p.println(p.colorize(colorYellow,
			"Please try again later or visit https://www.iplocation.net in a browser."))

		return
	}

	p.println("")
	p.println(p.colorize(colorCyan, "Results for "+report.IP+":"))

	for _, group := range report.Groups {
		p.println(bullet + p.colorize(colorBlue, group.Label()+":") + " " + group.Line)

		for _, note := range group.Security {
			p.println(lookerlib.SecurityIndent + p.colorize(colorRed, note))
		}
	}

	if len(report.MissingSources) > 0 {
		p.println("")
		p.println(p.colorize(colorYellow,
			"No data available from: "+strings.Join(report.MissingSources, ", ")))
	}
}

func (p printer) Sources(sources []lookerlib.Source) {
	for _, v := range sources {
		if v.Direct() {
			p.println(v.Name + " " + p.colorize(colorBlue, "("+v.URL+")"))
		} else {
			p.println(v.Name)
		}
	}
}

func (p printer) JSON(data interface{}) error {
	encoder := json.NewEncoder(p.out)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("cannot encode json: %w", err)
	}

	return nil
}
