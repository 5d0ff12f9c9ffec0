// Iplooker is a tool to find out where some IP address comes from,
// asking many geolocation sources at once.
//
// Each geolocation source has its own opinion on the IP address and its
// own manner to report it: field names, country codes, spellings of the
// same city or the same ISP. Iplooker normalizes all of them and groups
// sources which say the same thing, so you see a short report instead of
// a pile of JSON.
//
// Tool is organized into 2 logical parts:
//
// Lookerlib
//
// lookerlib is a main package of the application. It has a registry of
// sources, an upstream client with retries and rate limiting, field
// extraction, standardization and consolidation of results. Looker
// struct queries sources concurrently and it can act as http.Handler.
//
// Iplooker
//
// A main package itself wires lookerlib with a CLI. It can look up a
// given IP address, your own external IP address, list known sources
// or run an HTTP API with the same data.
package main
