package lookerlib

import (
	"strings"

	"github.com/pariz/gountries"
)

var (
	countryQuery = gountries.New()

	usaNames = map[string]bool{
		"us":                       true,
		"usa":                      true,
		"united states":            true,
		"united states of america": true,
	}

	regionNames = map[string]bool{
		"washington, d.c.":     true,
		"district of columbia": true,
		"d.c.":                 true,
		"dc":                   true,
	}

	cityNames = map[string]bool{
		"washington":       true,
		"washington d.c.":  true,
		"washington, d.c.": true,
		"washington dc":    true,
		"washington, dc":   true,
		"new york":         true,
		"new york city":    true,
		"nyc":              true,
		"city of new york": true,
		"manhattan":        true,
	}
)

const comcast = "Comcast"

// StandardizeCountry returns a canonical country name.
//
// 2-letter ISO3166 codes are replaced with a common name of the
// country, so GB becomes United Kingdom. USA is special: all its
// variants, including the code itself, are normalized to US. Anything
// else is returned as is.
func StandardizeCountry(country string) string {
	if len(country) == 2 && strings.ToUpper(country) != "US" {
		return countryName(country)
	}

	if usaNames[strings.ToLower(country)] {
		return "US"
	}

	return country
}

func countryName(alpha2 string) string {
	details, err := countryQuery.FindCountryByAlpha(strings.ToUpper(alpha2))
	if err != nil || details.Name.Common == "" {
		return alpha2
	}

	return details.Name.Common
}

// StandardizeRegionAndCity normalizes spellings of Washington D.C.
// and New York.
func StandardizeRegionAndCity(region, city string) (string, string) {
	if regionNames[strings.ToLower(region)] {
		region = "DC"
	}

	if lowered := strings.ToLower(city); cityNames[lowered] {
		if strings.Contains(lowered, "washington") {
			city = "Washington"
		} else {
			city = "New York"
		}
	}

	return region, city
}

// StandardizeISPAndOrg combines ISP and organization into a single
// string. It returns false if neither of them is known.
//
// Presence and equality are checked on original values while the
// result is built from substituted ones. So "Comcast Business" and
// "Comcast" give "Comcast / Comcast".
func StandardizeISPAndOrg(isp, org string) (string, bool) {
	originalISP, originalOrg := isp, org

	if strings.Contains(strings.ToLower(isp), "comcast") {
		isp = comcast
	}

	if strings.Contains(strings.ToLower(org), "comcast") {
		org = comcast
	}

	hasISP := originalISP != "" && originalISP != "Unknown ISP"
	hasOrg := originalOrg != "" && originalOrg != "Unknown Org"

	switch {
	case hasISP && hasOrg:
		if strings.ToLower(originalISP) == strings.ToLower(originalOrg) {
			return isp, true
		}

		return isp + " / " + org, true
	case hasISP:
		return isp, true
	case hasOrg:
		return org, true
	}

	return "", false
}
