package lookerlib

import "strings"

// UnknownLocation is used if source knows neither city, nor region,
// nor country.
const UnknownLocation = "Unknown Location"

// FormatRecord standardizes a record and builds a display-ready result
// out of it.
func FormatRecord(rec Record) Result {
	country := StandardizeCountry(rec.Country)
	region, city := StandardizeRegionAndCity(rec.Region, rec.City)

	rv := Result{
		Source:   rec.Source,
		Location: ComposeLocation(city, region, country),
	}

	if ispOrg, ok := StandardizeISPAndOrg(rec.ISP, rec.Org); ok {
		rv.ISPOrg = ispOrg
	}

	if rec.Security != nil {
		rv.Security = SecurityAnnotation(*rec.Security)
	}

	return rv
}

// ComposeLocation joins non-empty parts of the location from the most
// specific one.
func ComposeLocation(city, region, country string) string {
	parts := make([]string, 0, 3)

	for _, v := range []string{city, region, country} {
		if v != "" {
			parts = append(parts, v)
		}
	}

	if len(parts) == 0 {
		return UnknownLocation
	}

	return strings.Join(parts, ", ")
}

// SecurityAnnotation describes security flags in a human-readable way.
// It returns an empty string if nothing is flagged. Anonymity is
// mentioned only if there is no more specific reason.
func SecurityAnnotation(sec Security) string {
	notes := []string{}

	if sec.IsVPN {
		if sec.VPNService != "" {
			notes = append(notes, "is a VPN ("+sec.VPNService+")")
		} else {
			notes = append(notes, "is a VPN service")
		}
	}

	if sec.IsProxy {
		notes = append(notes, "is a proxy IP")
	}

	if sec.IsTor {
		notes = append(notes, "is a Tor IP")
	}

	if sec.IsDatacenter {
		notes = append(notes, "comes from a hosting provider")
	}

	if sec.IsAnonymous && len(notes) == 0 {
		notes = append(notes, "is anonymous")
	}

	return strings.Join(notes, ", ")
}
