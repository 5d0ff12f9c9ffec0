// This package provides a set of structs and functions which are used
// to look up a single IP address in many geolocation sources and to
// consolidate their answers.
//
// lookerlib is core of the iplooker project. The rest of the
// application is a thin wrapper: how to read a config, how to render
// a report in a terminal, how to expose it over HTTP.
//
// Each source answers with its own JSON shape. Source declares where
// the interesting object lives (DataPath) and which raw keys map to
// canonical fields. ExtractFields pulls them out, the standardizers
// canonicalize country, region, city and ISP names, FormatRecord builds
// a Result and Consolidate groups sources which say the same thing.
//
// Looker is a main entity of the lookerlib. It queries sources
// concurrently using a worker pool, tracks usage statistics and returns
// a Report: ordered results, missing sources, display groups and a
// verdict.
package lookerlib
