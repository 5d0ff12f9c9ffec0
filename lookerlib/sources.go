package lookerlib

import "strings"

// Canonical field names.
const (
	FieldCountry = "country"
	FieldRegion  = "region"
	FieldCity    = "city"
	FieldISP     = "isp"
	FieldOrg     = "org"
)

// CanonicalFields is an ordered list of fields each source has to
// declare.
var CanonicalFields = []string{FieldCountry, FieldRegion, FieldCity, FieldISP, FieldOrg}

// FieldSpec maps a canonical field to a raw key of the source object.
type FieldSpec struct {
	Name string `json:"name"`
	Key  string `json:"key"`
}

// SecuritySpec declares paths to security flags within the source
// object. Empty path means that the source does not report this flag.
type SecuritySpec struct {
	VPN        []string `json:"vpn"`
	Proxy      []string `json:"proxy"`
	Tor        []string `json:"tor"`
	Datacenter []string `json:"datacenter"`
	Anonymous  []string `json:"anonymous"`
	VPNService []string `json:"vpn_service"`
}

// Source is a declaration of the upstream geolocation data source.
//
// If URL is empty, source is queried through iplocation.net aggregator
// by its name. Otherwise URL is requested directly with GET and {ip}
// placeholder is replaced with an IP address.
type Source struct {
	Name     string        `json:"name"`
	URL      string        `json:"url,omitempty"`
	DataPath []string      `json:"data_path"`
	Fields   []FieldSpec   `json:"fields"`
	Security *SecuritySpec `json:"security,omitempty"`
}

// Direct checks if source has to be requested bypassing the
// aggregator.
func (s Source) Direct() bool {
	return s.URL != ""
}

// RequestURL returns URL for direct sources.
func (s Source) RequestURL(ip string) string {
	return strings.ReplaceAll(s.URL, "{ip}", ip)
}

func fields(country, region, city, isp, org string) []FieldSpec {
	return []FieldSpec{
		{Name: FieldCountry, Key: country},
		{Name: FieldRegion, Key: region},
		{Name: FieldCity, Key: city},
		{Name: FieldISP, Key: isp},
		{Name: FieldOrg, Key: org},
	}
}

// DefaultSources returns a built-in registry of sources. Each call
// returns a fresh copy so callers are free to modify it.
func DefaultSources() []Source {
	return []Source{
		{
			Name:     "ip2location",
			DataPath: []string{"res"},
			Fields:   fields("countryCode", "regionName", "cityName", "isp", "as"),
			Security: &SecuritySpec{
				Proxy: []string{"isProxy"},
			},
		},
		{
			Name:     "ipinfo",
			DataPath: []string{"res"},
			Fields:   fields("country", "region", "city", "isp", "org"),
		},
		{
			Name:     "dbip",
			DataPath: []string{"res"},
			Fields:   fields("country", "stateprov", "city", "isp", "organization"),
		},
		{
			Name:     "ipregistry",
			DataPath: []string{"res"},
			Fields:   fields("country_code", "region", "city", "isp", "organization"),
			Security: &SecuritySpec{
				VPN:        []string{"security", "is_vpn"},
				Proxy:      []string{"security", "is_proxy"},
				Tor:        []string{"security", "is_tor"},
				Datacenter: []string{"security", "is_cloud_provider"},
				Anonymous:  []string{"security", "is_anonymous"},
			},
		},
		{
			Name:     "ipgeolocation",
			DataPath: []string{"res", "data"},
			Fields:   fields("country_code2", "state_prov", "city", "isp", "organization"),
		},
		{
			Name:     "ipapico",
			DataPath: []string{"res"},
			Fields:   fields("country", "region", "city", "isp", "org"),
		},
		{
			Name:     "ipbase",
			DataPath: []string{"res", "data", "location"},
			Fields:   fields("country_code", "region", "city", "isp", "organization"),
		},
		{
			Name:     "criminalip",
			DataPath: []string{"res"},
			Fields:   fields("country_code", "region", "city", "isp", "org_name"),
			Security: &SecuritySpec{
				VPN:        []string{"is_vpn"},
				Proxy:      []string{"is_proxy"},
				Tor:        []string{"is_tor"},
				Datacenter: []string{"is_hosting"},
				Anonymous:  []string{"is_anonymous"},
				VPNService: []string{"vpn_name"},
			},
		},
		{
			Name:     "keycdn",
			URL:      "https://tools.keycdn.com/geo.json?host={ip}",
			DataPath: []string{"data", "geo"},
			Fields:   fields("country_code", "region_name", "city", "isp", "isp"),
		},
	}
}
