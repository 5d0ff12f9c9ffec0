package lookerlib

// Payload is a raw decoded JSON response of some source. Its shape is
// different for each source so it is navigated with Source.DataPath.
type Payload map[string]interface{}

// Security is a set of flags some sources report about an IP address.
type Security struct {
	IsVPN        bool   `json:"is_vpn"`
	IsProxy      bool   `json:"is_proxy"`
	IsTor        bool   `json:"is_tor"`
	IsDatacenter bool   `json:"is_datacenter"`
	IsAnonymous  bool   `json:"is_anonymous"`
	VPNService   string `json:"vpn_service,omitempty"`
}

// Record is an answer of a single source after field extraction. This
// is what FormatRecord consumes.
type Record struct {
	Source   string
	Country  string
	Region   string
	City     string
	ISP      string
	Org      string
	Security *Security
}

// Result is a canonical, display-ready answer of a single source.
//
// ISPOrg and Security are optional: empty string means that there is no
// such data.
type Result struct {
	Source   string `json:"source"`
	Location string `json:"location"`
	ISPOrg   string `json:"isp_org,omitempty"`
	Security string `json:"security,omitempty"`
}

func (r Result) HasISPOrg() bool {
	return r.ISPOrg != ""
}

func (r Result) HasSecurity() bool {
	return r.Security != ""
}

// DisplayLine is a line which is used to group sources which say the
// same thing.
func (r Result) DisplayLine() string {
	if r.HasISPOrg() {
		return r.Location + " (" + r.ISPOrg + ")"
	}

	return r.Location
}

// DisplayGroup is a set of sources which have reported the same
// display line. Source is set only if Count is 1.
type DisplayGroup struct {
	Line     string   `json:"line"`
	Count    int      `json:"count"`
	Source   string   `json:"source,omitempty"`
	Security []string `json:"security,omitempty"`
}

// Verdict is an answer most of the sources agree on.
type Verdict struct {
	Country struct {
		Alpha2Code   string `json:"alpha2_code"`
		CommonName   string `json:"common_name"`
		OfficialName string `json:"official_name"`
	} `json:"country"`
	City string `json:"city"`
}

func (v Verdict) OK() bool {
	return v.Country.CommonName != ""
}

// Report is a result of the IP lookup.
type Report struct {
	IP             string         `json:"ip"`
	Results        []Result       `json:"results"`
	MissingSources []string       `json:"missing_sources"`
	Groups         []DisplayGroup `json:"groups"`
	Verdict        Verdict        `json:"verdict"`
}

// OK returns false if no source has returned any data. Usually it
// means that upstream is rate limiting or blocking us.
func (r *Report) OK() bool {
	return len(r.Results) > 0
}

// Lines returns a rendered consolidated report.
func (r *Report) Lines() []string {
	return Render(r.Results)
}
